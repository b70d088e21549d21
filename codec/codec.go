// Package codec converts typed values to and from the string form stored
// in the backend. Every stored scalar, list element, set member and hash
// field value goes through a Codec.
package codec

// Codec encodes/decodes values V to strings for storage.
type Codec[V any] interface {
	Encode(V) (string, error)
	Decode(string) (V, error)
}

// Present reports whether a raw value read from the backend holds
// something that should be handed to a codec. Missing keys are read
// back as the empty string.
func Present(raw string) bool {
	return raw != ""
}

// EncodeAll encodes each value in order.
func EncodeAll[V any](c Codec[V], values []V) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, err := c.Encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
