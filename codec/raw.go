package codec

// String is an identity codec for values that are already strings. Unlike
// JSON[string], values are stored without quoting.
type String struct{}

func (String) Encode(s string) (string, error) { return s, nil }
func (String) Decode(s string) (string, error) { return s, nil }
