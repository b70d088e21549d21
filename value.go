package deepcache

import (
	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/codec"
)

// Value stores typed scalar values, encoding them with a codec.
type Value[T any] struct {
	client *Client
	codec  codec.Codec[T]
}

// NewValue creates a typed view over the scalar values of c. A nil codec
// defaults to JSON.
func NewValue[T any](c *Client, cd codec.Codec[T]) *Value[T] {
	return &Value[T]{client: c, codec: orJSON(cd)}
}

// Get decodes the value stored at key. The boolean is false if the key
// is missing (or holds the empty string).
func (v *Value[T]) Get(key string) (T, bool, error) {
	raw, err := v.client.Get(key)
	if err != nil || !codec.Present(raw) {
		var zero T
		return zero, false, err
	}

	return decodeOne(v.codec, key, raw)
}

// GetMulti decodes the values stored at keys. The result is aligned with
// keys: missing keys are represented by a nil entry. It returns nil on
// failure.
func (v *Value[T]) GetMulti(keys ...string) ([]*T, error) {
	if len(keys) == 0 {
		return []*T{}, nil
	}

	raws, err := Execute(v.client, "mget", keys[0], []string(nil), func(conn Conn) ([]string, error) {
		return redis.Strings(conn.Do("MGET", redis.Args{}.AddFlat(keys)...))
	})
	if err != nil {
		return nil, err
	}

	values := make([]*T, len(raws))
	for i, raw := range raws {
		if !codec.Present(raw) {
			continue
		}

		value, _, err := decodeOne(v.codec, keys[i], raw)
		if err != nil {
			return nil, err
		}

		values[i] = &value
	}

	return values, nil
}

// Set encodes and stores value at key. See Client.Set for the meaning of
// ttlSeconds.
func (v *Value[T]) Set(key string, value T, ttlSeconds int) error {
	raw, err := v.encode("set", key, value)
	if err != nil {
		return err
	}

	return v.client.Set(key, raw, ttlSeconds)
}

// SetWithFlag encodes and stores value at key along with its flag key.
// See Client.SetWithFlag.
func (v *Value[T]) SetWithFlag(key string, value T, ttlSeconds int) error {
	raw, err := v.encode("set", key, value)
	if err != nil {
		return err
	}

	return v.client.SetWithFlag(key, raw, ttlSeconds)
}

// SetUntil encodes and stores value at key until the given deadline. See
// Client.SetUntil.
func (v *Value[T]) SetUntil(key string, value T, deadline string) error {
	raw, err := v.encode("set", key, value)
	if err != nil {
		return err
	}

	return v.client.SetUntil(key, raw, deadline)
}

// SetIfAbsent encodes and stores value at key only if key does not exist.
// See Client.SetNX.
func (v *Value[T]) SetIfAbsent(key string, value T, ttlSeconds int) (bool, error) {
	raw, err := v.encode("setnx", key, value)
	if err != nil {
		return false, err
	}

	return v.client.SetNX(key, raw, ttlSeconds)
}

func (v *Value[T]) encode(op, key string, value T) (string, error) {
	raw, err := v.codec.Encode(value)
	if err != nil {
		return "", &OpError{Op: op, Key: key, Err: err}
	}

	return raw, nil
}

//
// Codec Helpers

func orJSON[T any](cd codec.Codec[T]) codec.Codec[T] {
	if cd == nil {
		return codec.JSON[T]{}
	}

	return cd
}

func decodeOne[T any](cd codec.Codec[T], key, raw string) (T, bool, error) {
	value, err := cd.Decode(raw)
	if err != nil {
		var zero T
		return zero, false, &DecodeError{Key: key, Raw: raw, Err: err}
	}

	return value, true, nil
}

func decodeAll[T any](cd codec.Codec[T], key string, raws []string) ([]T, error) {
	values := make([]T, 0, len(raws))
	for _, raw := range raws {
		value, _, err := decodeOne(cd, key, raw)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, nil
}

func encodeAll[T any](cd codec.Codec[T], op, key string, values []T) ([]string, error) {
	raws, err := codec.EncodeAll(cd, values)
	if err != nil {
		return nil, &OpError{Op: op, Key: key, Err: err}
	}

	return raws, nil
}
