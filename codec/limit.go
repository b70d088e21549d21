package codec

import "fmt"

// Limit wraps another codec to enforce a maximum allowed payload size at
// Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]

	// MaxDecode is the maximum permitted length (in bytes) of a stored
	// value passed to Decode.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) (string, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(s string) (V, error) {
	if c.MaxDecode > 0 && len(s) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(s), c.MaxDecode)
	}
	return c.Inner.Decode(s)
}
