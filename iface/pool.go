package iface

import "time"

// Pool abstracts a bounded connection pool.
type Pool interface {
	// Close will drain all connections from the pool. Every live
	// connection is closed. This method blocks until every borrowed
	// connection has been released.
	Close()

	// Borrow will block until a connection is available. If the pool
	// holds a dial token instead of a live connection, a new connection
	// is dialed in its place.
	Borrow() (Conn, error)

	// BorrowTimeout is like Borrow, but fails with ErrPoolExhausted if
	// nothing is returned to the pool before the timeout elapses.
	BorrowTimeout(timeout time.Duration) (Conn, error)

	// Release returns a connection to the pool. This method must be
	// called exactly once for each successful call to a Borrow method.
	// An unhealthy connection is closed and replaced by a dial token.
	Release(conn Conn, healthy bool)

	// Stats returns a point-in-time snapshot of the pool.
	Stats() PoolStats
}

// PoolStats describes the connections owned by a pool.
type PoolStats struct {
	// Live is the number of open connections, idle or borrowed.
	Live int

	// Idle is the number of open connections waiting in the pool.
	Idle int
}
