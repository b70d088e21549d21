package deepcache

import (
	"strings"

	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/codec"
)

// Set interprets the value stored at a key as an unordered set of encoded
// members. Members are compared by their encoded form, so the codec must
// encode equal values identically.
type Set[T comparable] struct {
	client *Client
	codec  codec.Codec[T]
}

// NewSet creates a typed view over the sets of c. A nil codec defaults
// to JSON.
func NewSet[T comparable](c *Client, cd codec.Codec[T]) *Set[T] {
	return &Set[T]{client: c, codec: orJSON(cd)}
}

// Add adds values to the set at key and returns the number of members
// that were not already present. A blank key or an empty list of values
// is rejected with -1 without contacting the backend.
func (s *Set[T]) Add(key string, values ...T) (int64, error) {
	return s.modify("set.add", "SADD", key, values)
}

// Remove removes values from the set at key and returns the number of
// members removed. A blank key or an empty list of values is rejected
// with -1 without contacting the backend.
func (s *Set[T]) Remove(key string, values ...T) (int64, error) {
	return s.modify("set.remove", "SREM", key, values)
}

// Len returns the number of members of the set at key. It returns 0 on
// failure.
func (s *Set[T]) Len(key string) (int64, error) {
	return Execute(s.client, "set.len", key, int64(0), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("SCARD", key))
	})
}

// Members returns the members of the set at key. The result is never
// nil: a missing key or a failure yields an empty set.
func (s *Set[T]) Members(key string) (map[T]struct{}, error) {
	raws, err := Execute(s.client, "set.members", key, []string(nil), func(conn Conn) ([]string, error) {
		return redis.Strings(conn.Do("SMEMBERS", key))
	})

	members := make(map[T]struct{}, len(raws))
	if err != nil {
		return members, err
	}

	for _, raw := range raws {
		value, _, err := decodeOne(s.codec, key, raw)
		if err != nil {
			return map[T]struct{}{}, err
		}

		members[value] = struct{}{}
	}

	return members, nil
}

// Contains returns true if value is a member of the set at key. A blank
// key is never contacted and reads as false.
func (s *Set[T]) Contains(key string, value T) (bool, error) {
	if isBlank(key) {
		return false, &OpError{Op: "set.contains", Key: key, Err: ErrEmptyKey}
	}

	raw, err := s.codec.Encode(value)
	if err != nil {
		return false, &OpError{Op: "set.contains", Key: key, Err: err}
	}

	return Execute(s.client, "set.contains", key, false, func(conn Conn) (bool, error) {
		return redis.Bool(conn.Do("SISMEMBER", key, raw))
	})
}

// Delete removes the set at key.
func (s *Set[T]) Delete(key string) error {
	return s.client.Del(key)
}

func (s *Set[T]) modify(op, command, key string, values []T) (int64, error) {
	if isBlank(key) {
		return -1, &OpError{Op: op, Key: key, Err: ErrEmptyKey}
	}

	if len(values) == 0 {
		return -1, &OpError{Op: op, Key: key, Err: ErrNoValues}
	}

	raws, err := encodeAll(s.codec, op, key, values)
	if err != nil {
		return -1, err
	}

	return Execute(s.client, op, key, int64(-1), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do(command, redis.Args{}.Add(key).AddFlat(raws)...))
	})
}

func isBlank(key string) bool {
	return strings.TrimSpace(key) == ""
}
