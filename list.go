package deepcache

import (
	"github.com/gomodule/redigo/redis"

	"github.com/efritz/deepcache/codec"
)

// List interprets the value stored at a key as an ordered sequence of
// encoded elements.
type List[T any] struct {
	client *Client
	codec  codec.Codec[T]
}

// NewList creates a typed view over the lists of c. A nil codec defaults
// to JSON.
func NewList[T any](c *Client, cd codec.Codec[T]) *List[T] {
	return &List[T]{client: c, codec: orJSON(cd)}
}

// PushTail appends values to the list at key, in order, and returns the
// new length of the list. Nothing is sent when values is empty.
func (l *List[T]) PushTail(key string, values ...T) (int64, error) {
	return l.push("list.push_tail", "RPUSH", key, values, false)
}

// PushHead prepends values to the list at key and returns the new length
// of the list. The values keep their given order at the head of the list:
// pushing [a b c] onto [x] yields [a b c x].
func (l *List[T]) PushHead(key string, values ...T) (int64, error) {
	return l.push("list.push_head", "LPUSH", key, values, true)
}

// Set replaces the element at index of the list at key.
func (l *List[T]) Set(key string, index int, value T) error {
	raw, err := l.codec.Encode(value)
	if err != nil {
		return &OpError{Op: "list.set", Key: key, Err: err}
	}

	_, err = Execute(l.client, "list.set", key, "", func(conn Conn) (string, error) {
		return redis.String(conn.Do("LSET", key, index, raw))
	})

	return err
}

// Range returns the elements of the list at key between start and end,
// inclusive. An end of -1 means the tail of the list. It returns nil on
// failure.
func (l *List[T]) Range(key string, start, end int) ([]T, error) {
	raws, err := Execute(l.client, "list.range", key, []string(nil), func(conn Conn) ([]string, error) {
		return redis.Strings(conn.Do("LRANGE", key, start, end))
	})
	if err != nil {
		return nil, err
	}

	return decodeAll(l.codec, key, raws)
}

// All returns every element of the list at key.
func (l *List[T]) All(key string) ([]T, error) {
	return l.Range(key, 0, -1)
}

// Page returns the elements of the given 1-based page of the list at key.
func (l *List[T]) Page(key string, page, size int) ([]T, error) {
	return l.Range(key, (page-1)*size, page*size-1)
}

// PopHead removes and returns the first element of the list at key. The
// boolean is false if the list is empty or missing.
func (l *List[T]) PopHead(key string) (T, bool, error) {
	return l.single("list.pop_head", key, "LPOP", key)
}

// First returns the first element of the list at key without removing it.
func (l *List[T]) First(key string) (T, bool, error) {
	return l.single("list.first", key, "LINDEX", key, 0)
}

// Last returns the last element of the list at key without removing it.
func (l *List[T]) Last(key string) (T, bool, error) {
	return l.single("list.last", key, "LINDEX", key, -1)
}

// Len returns the length of the list at key. It returns 0 on failure.
func (l *List[T]) Len(key string) (int64, error) {
	return Execute(l.client, "list.len", key, int64(0), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do("LLEN", key))
	})
}

// Remove removes every occurrence of each of values from the list at key
// and returns the total number of elements removed. It returns 0 on
// failure.
func (l *List[T]) Remove(key string, values ...T) (int64, error) {
	raws, err := encodeAll(l.codec, "list.remove", key, values)
	if err != nil {
		return 0, err
	}

	return Execute(l.client, "list.remove", key, int64(0), func(conn Conn) (int64, error) {
		var removed int64
		for _, raw := range raws {
			n, err := redis.Int64(conn.Do("LREM", key, 0, raw))
			if err != nil {
				return 0, err
			}

			removed += n
		}

		return removed, nil
	})
}

// Delete removes the list at key.
func (l *List[T]) Delete(key string) error {
	return l.client.Del(key)
}

func (l *List[T]) push(op, command, key string, values []T, reverse bool) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}

	raws, err := encodeAll(l.codec, op, key, values)
	if err != nil {
		return 0, err
	}

	if reverse {
		// LPUSH inserts its arguments one after another at the head,
		// so the last argument ends up first.
		for i, j := 0, len(raws)-1; i < j; i, j = i+1, j-1 {
			raws[i], raws[j] = raws[j], raws[i]
		}
	}

	return Execute(l.client, op, key, int64(0), func(conn Conn) (int64, error) {
		return redis.Int64(conn.Do(command, redis.Args{}.Add(key).AddFlat(raws)...))
	})
}

func (l *List[T]) single(op, key, command string, args ...interface{}) (T, bool, error) {
	raw, err := Execute(l.client, op, key, "", func(conn Conn) (string, error) {
		return emptyOnNil(redis.String(conn.Do(command, args...)))
	})
	if err != nil || !codec.Present(raw) {
		var zero T
		return zero, false, err
	}

	return decodeOne(l.codec, key, raw)
}
