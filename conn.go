package deepcache

import (
	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/iface"
)

type (
	// Conn abstracts a single, feature-minimal connection to the backend.
	Conn = iface.Conn

	redigoShim struct {
		conn redis.Conn
	}

	connErr struct{ error }

	// DialFunc creates a connection to the backend or returns an error.
	DialFunc func() (Conn, error)
)

func makeDialer(addr string, config *clientConfig) DialFunc {
	return func() (Conn, error) {
		conn, err := redis.Dial(
			"tcp",
			addr,
			redis.DialPassword(config.password),
			redis.DialDatabase(config.database),
			redis.DialConnectTimeout(connectTimeout),
			redis.DialReadTimeout(config.readTimeout),
			redis.DialWriteTimeout(config.writeTimeout),
		)

		if err != nil {
			return nil, err
		}

		return &redigoShim{conn}, nil
	}
}

func (s *redigoShim) Close() error {
	return s.conn.Close()
}

func (s *redigoShim) Do(command string, args ...interface{}) (interface{}, error) {
	result, err := s.conn.Do(command, args...)
	return result, s.wrapError(err)
}

func (s *redigoShim) wrapError(err error) error {
	// A fatal error on the underlying connection is reported instead of
	// the reply error so the caller can tell transport failures apart
	// from error replies sent by the server.

	if s.conn.Err() != nil {
		return connErr{s.conn.Err()}
	}

	return err
}

func (e connErr) Unwrap() error {
	return e.error
}
