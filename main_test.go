package deepcache

//go:generate go-mockgen github.com/efritz/deepcache/iface -o mock_test.go -i Conn -i Pool

var testLogger = NewNilLogger()
