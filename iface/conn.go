package iface

// Conn abstracts a single, feature-minimal connection to the backend.
// A connection is owned by exactly one unit of work at a time.
type Conn interface {
	// Close the connection to the remote server.
	Close() error

	// Do performs a command on the remote server and returns its
	// raw reply.
	Do(command string, args ...interface{}) (interface{}, error)
}
