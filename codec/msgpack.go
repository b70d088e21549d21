package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Stored strings are binary and not human readable. Use `msgpack:"name"`
// tags for explicit control over field names.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) (string, error) {
	b, err := msgpack.Marshal(v)
	return string(b), err
}

func (Msgpack[V]) Decode(s string) (V, error) {
	var v V
	err := msgpack.Unmarshal([]byte(s), &v)
	return v, err
}
