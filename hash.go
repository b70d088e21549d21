package deepcache

import (
	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/codec"
)

// Hash interprets the value stored at a key as a map from field names to
// encoded values.
type Hash[T any] struct {
	client *Client
	codec  codec.Codec[T]
}

// NewHash creates a typed view over the hashes of c. A nil codec defaults
// to JSON.
func NewHash[T any](c *Client, cd codec.Codec[T]) *Hash[T] {
	return &Hash[T]{client: c, codec: orJSON(cd)}
}

// PutAll stores every entry of values in the hash at key with a single
// command. Nothing is sent when values is empty.
func (h *Hash[T]) PutAll(key string, values map[string]T) error {
	if len(values) == 0 {
		return nil
	}

	raws := make(map[string]string, len(values))
	for field, value := range values {
		raw, err := h.codec.Encode(value)
		if err != nil {
			return &OpError{Op: "hash.put_all", Key: key, Err: err}
		}

		raws[field] = raw
	}

	_, err := Execute(h.client, "hash.put_all", key, false, func(conn Conn) (bool, error) {
		_, err := conn.Do("HSET", redis.Args{}.Add(key).AddFlat(raws)...)
		return err == nil, err
	})

	return err
}

// Put stores value under field in the hash at key.
func (h *Hash[T]) Put(key, field string, value T) error {
	raw, err := h.codec.Encode(value)
	if err != nil {
		return &OpError{Op: "hash.put", Key: key, Err: err}
	}

	_, err = Execute(h.client, "hash.put", key, false, func(conn Conn) (bool, error) {
		_, err := conn.Do("HSET", key, field, raw)
		return err == nil, err
	})

	return err
}

// Get decodes the value of field in the hash at key. The boolean is false
// if the field is missing (or holds the empty string).
func (h *Hash[T]) Get(key, field string) (T, bool, error) {
	raw, err := Execute(h.client, "hash.get", key, "", func(conn Conn) (string, error) {
		return emptyOnNil(redis.String(conn.Do("HGET", key, field)))
	})
	if err != nil || !codec.Present(raw) {
		var zero T
		return zero, false, err
	}

	return decodeOne(h.codec, key, raw)
}

// GetAll returns a snapshot of the hash at key. A missing key yields an
// empty map. It returns nil on failure.
func (h *Hash[T]) GetAll(key string) (map[string]T, error) {
	raws, err := Execute(h.client, "hash.get_all", key, map[string]string(nil), func(conn Conn) (map[string]string, error) {
		return redis.StringMap(conn.Do("HGETALL", key))
	})
	if err != nil {
		return nil, err
	}

	values := make(map[string]T, len(raws))
	for field, raw := range raws {
		value, _, err := decodeOne(h.codec, key, raw)
		if err != nil {
			return nil, err
		}

		values[field] = value
	}

	return values, nil
}

// Len returns the number of fields in the hash at key. It returns 0 on
// failure.
func (h *Hash[T]) Len(key string) (int64, error) {
	return Execute(h.client, "hash.len", key, int64(0), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("HLEN", key))
	})
}

// Remove removes fields from the hash at key and returns the number of
// fields removed. It returns 0 on failure.
func (h *Hash[T]) Remove(key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	return Execute(h.client, "hash.remove", key, int64(0), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("HDEL", redis.Args{}.Add(key).AddFlat(fields)...))
	})
}

// Fields returns the field names of the hash at key. It returns nil on
// failure.
func (h *Hash[T]) Fields(key string) ([]string, error) {
	return Execute(h.client, "hash.fields", key, []string(nil), func(conn Conn) ([]string, error) {
		return redis.Strings(conn.Do("HKEYS", key))
	})
}

// Contains returns true if field exists in the hash at key.
func (h *Hash[T]) Contains(key, field string) (bool, error) {
	return Execute(h.client, "hash.contains", key, false, func(conn Conn) (bool, error) {
		return redis.Bool(conn.Do("HEXISTS", key, field))
	})
}

// Delete removes the hash at key.
func (h *Hash[T]) Delete(key string) error {
	return h.client.Del(key)
}
