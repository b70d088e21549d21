package deepcache

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/codec"
)

const (
	// DefaultExpireSeconds is a TTL callers may use for data that has no
	// natural lifetime of its own (3 days).
	DefaultExpireSeconds = 3 * 24 * 60 * 60

	// DeadlineLayout is the format of deadline strings accepted by the
	// *Until and ExpireAt operations. Deadlines are in local time.
	DeadlineLayout = "2006-01-02 15:04:05"

	// TTL sentinels returned by Client.TTL.
	TTLNoExpiry = -1
	TTLNoKey    = -2
	TTLError    = -3

	flagSuffix = "_flag"
)

// FlagKey returns the key of the existence marker paired with key.
func FlagKey(key string) string {
	return key + flagSuffix
}

// TTL returns the remaining time to live of key in seconds. It returns
// TTLNoExpiry if the key exists without a TTL, TTLNoKey if it does not
// exist, and TTLError if the backend could not be reached.
func (c *Client) TTL(key string) (int64, error) {
	return Execute(c, "ttl", key, int64(TTLError), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("TTL", key))
	})
}

// Expire sets the TTL of key in seconds. A non-positive TTL leaves the
// key untouched.
func (c *Client) Expire(key string, seconds int) error {
	if seconds <= 0 {
		return nil
	}

	_, err := Execute(c, "expire", key, false, func(conn Conn) (bool, error) {
		return redis.Bool(conn.Do("EXPIRE", key, seconds))
	})

	return err
}

// ExpireAt sets the TTL of key so that it expires at the given deadline
// (see DeadlineLayout). A deadline that has already passed yields a
// non-positive TTL and so leaves the key untouched.
func (c *Client) ExpireAt(key, deadline string) error {
	seconds, err := c.secondsUntil(deadline)
	if err != nil {
		return &OpError{Op: "expire", Key: key, Err: err}
	}

	return c.Expire(key, seconds)
}

// Set stores value at key. A positive ttlSeconds sets the TTL of the key.
// A non-positive ttlSeconds does NOT clear or expire the key: the TTL the
// key had before the overwrite (if any) is re-applied, rounded up to whole
// seconds.
func (c *Client) Set(key, value string, ttlSeconds int) error {
	return c.set("set", key, value, ttlSeconds, false)
}

// SetWithFlag is like Set, but also writes the flag key of key and keeps
// its TTL identical to the TTL of key. The two keys are written by
// sequential commands and are not updated atomically.
func (c *Client) SetWithFlag(key, value string, ttlSeconds int) error {
	return c.set("set", key, value, ttlSeconds, true)
}

// SetUntil is like Set with a TTL that ends at the given deadline (see
// DeadlineLayout). A deadline in the past is treated as a non-positive
// TTL and keeps the previous TTL of the key rather than expiring it.
func (c *Client) SetUntil(key, value, deadline string) error {
	seconds, err := c.secondsUntil(deadline)
	if err != nil {
		return &OpError{Op: "set", Key: key, Err: err}
	}

	return c.Set(key, value, seconds)
}

// DelFlagKey deletes the flag key paired with key.
func (c *Client) DelFlagKey(key string) error {
	return c.Del(FlagKey(key))
}

// DelKeyAndFlagKey deletes the flag key and then key. The deletes are not
// atomic: if the second one fails the flag key stays deleted.
func (c *Client) DelKeyAndFlagKey(key string) error {
	_, err := Execute(c, "del", key, false, func(conn Conn) (bool, error) {
		if _, err := conn.Do("DEL", FlagKey(key)); err != nil {
			return false, err
		}

		_, err := conn.Do("DEL", key)
		return err == nil, err
	})

	return err
}

func (c *Client) set(op, key, value string, ttlSeconds int, setFlag bool) error {
	_, err := Execute(c, op, key, false, func(conn Conn) (bool, error) {
		return true, setWithExpiry(conn, key, value, ttlSeconds, setFlag)
	})

	return err
}

func (c *Client) secondsUntil(deadline string) (int, error) {
	t, err := time.ParseInLocation(DeadlineLayout, deadline, time.Local)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
	}

	return int(t.Sub(c.clock.Now()) / time.Second), nil
}

// Write key (and its flag key) on a single connection. SET clears the
// TTL of a key, so the remaining TTL is read before the overwrite when
// the caller did not ask for a new one.
func setWithExpiry(conn Conn, key, value string, ttlSeconds int, setFlag bool) error {
	if ttlSeconds <= 0 {
		remaining, err := redis.Int64(conn.Do("PTTL", key))
		if err != nil {
			return err
		}

		ttlSeconds = ceilSeconds(remaining)
	}

	if _, err := conn.Do("SET", key, value); err != nil {
		return err
	}

	if setFlag {
		if _, err := conn.Do("SET", FlagKey(key), flagValue); err != nil {
			return err
		}
	}

	if ttlSeconds <= 0 {
		return nil
	}

	if setFlag {
		if _, err := conn.Do("EXPIRE", FlagKey(key), ttlSeconds); err != nil {
			return err
		}
	}

	_, err := conn.Do("EXPIRE", key, ttlSeconds)
	return err
}

// Converts a PTTL reply to whole seconds, rounding up. Sentinel replies
// (no key, no TTL) map to zero.
func ceilSeconds(millis int64) int {
	if millis <= 0 {
		return 0
	}

	return int((millis + 999) / 1000)
}

var flagValue = mustEncode[bool](codec.JSON[bool]{}, true)

func mustEncode[V any](c codec.Codec[V], v V) string {
	s, err := c.Encode(v)
	if err != nil {
		panic(err)
	}

	return s
}
