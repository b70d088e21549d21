package deepcache

import (
	"github.com/gomodule/redigo/redis"
)

// Exists returns true if key exists. It returns false on failure.
func (c *Client) Exists(key string) (bool, error) {
	return Execute(c, "exists", key, false, func(conn Conn) (bool, error) {
		return redis.Bool(conn.Do("EXISTS", key))
	})
}

// Keys returns the keys matching pattern. It returns nil on failure.
func (c *Client) Keys(pattern string) ([]string, error) {
	return Execute(c, "keys", pattern, []string(nil), func(conn Conn) ([]string, error) {
		return redis.Strings(conn.Do("KEYS", pattern))
	})
}

// Del removes key.
func (c *Client) Del(key string) error {
	_, err := Execute(c, "del", key, 0, func(conn Conn) (int, error) {
		return redis.Int(conn.Do("DEL", key))
	})

	return err
}

// Type returns the type of the value stored at key ("string", "list",
// "set", "hash", or "none"). It returns "" on failure.
func (c *Client) Type(key string) (string, error) {
	return Execute(c, "type", key, "", func(conn Conn) (string, error) {
		return redis.String(conn.Do("TYPE", key))
	})
}

// Incr atomically increments the counter at key and returns its new
// value. It returns -1 on failure.
func (c *Client) Incr(key string) (int64, error) {
	return Execute(c, "incr", key, int64(-1), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("INCR", key))
	})
}

// Get returns the string stored at key. A missing key and a failure both
// read as the empty string; use Exists to tell a missing key from an
// empty value.
func (c *Client) Get(key string) (string, error) {
	return Execute(c, "get", key, "", func(conn Conn) (string, error) {
		return emptyOnNil(redis.String(conn.Do("GET", key)))
	})
}

// SetNX stores value at key only if key does not exist and returns true
// if the write happened. When ttlSeconds is positive it is applied to a
// newly created key, and also to an existing key which has no TTL.
func (c *Client) SetNX(key, value string, ttlSeconds int) (bool, error) {
	return Execute(c, "setnx", key, false, func(conn Conn) (bool, error) {
		created, err := redis.Bool(conn.Do("SETNX", key, value))
		if err != nil {
			return false, err
		}

		if ttlSeconds <= 0 {
			return created, nil
		}

		if !created {
			remaining, err := redis.Int64(conn.Do("PTTL", key))
			if err != nil || remaining >= 0 {
				return false, err
			}
		}

		if _, err := conn.Do("EXPIRE", key, ttlSeconds); err != nil {
			return false, err
		}

		return created, nil
	})
}

// Reads a nil bulk reply as an empty string instead of an error.
func emptyOnNil(s string, err error) (string, error) {
	if err == redis.ErrNil {
		return "", nil
	}

	return s, err
}
