package deepcache

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// newTestClient starts an in-memory server and a client connected to it.
// The server should be closed after the client.
func newTestClient(t *testing.T, configs ...ConfigFunc) (*miniredis.Miniredis, *Client) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start server: %v", err)
	}

	client := NewClient(server.Addr(), append([]ConfigFunc{WithLogger(testLogger)}, configs...)...)
	return server, client
}

func parsePort(port string) (int, error) {
	return strconv.Atoi(port)
}
