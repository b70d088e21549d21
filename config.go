package deepcache

import (
	"net"
	"strconv"
	"time"
)

// Config is the construction-time configuration of a client. It is read
// once by NewClientFromConfig and never consulted again.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	MaxIdle  int    `mapstructure:"max_idle"`
	MaxTotal int    `mapstructure:"max_total"`

	// MaxWaitMillis bounds the time spent waiting for a connection. A
	// negative value waits indefinitely; zero means the default.
	MaxWaitMillis int `mapstructure:"max_wait_millis"`
}

// DefaultConfig returns a configuration pointing at a local server
// with the default pool limits.
func DefaultConfig() Config {
	return Config{
		Host:          "127.0.0.1",
		Port:          6379,
		MaxIdle:       DefaultMaxIdle,
		MaxTotal:      DefaultMaxTotal,
		MaxWaitMillis: int(DefaultBorrowTimeout / time.Millisecond),
	}
}

// Addr returns the host:port pair of the configured server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Options converts the configuration into the equivalent ConfigFuncs.
// Zero pool limits and a zero wait are replaced by their defaults.
func (c Config) Options() []ConfigFunc {
	return []ConfigFunc{
		WithPassword(c.Password),
		WithDatabase(c.Database),
		WithMaxIdle(orDefault(c.MaxIdle, DefaultMaxIdle)),
		WithMaxTotal(orDefault(c.MaxTotal, DefaultMaxTotal)),
		WithBorrowTimeout(time.Duration(orDefault(c.MaxWaitMillis, int(DefaultBorrowTimeout/time.Millisecond))) * time.Millisecond),
	}
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}

// NewClientFromConfig creates a client from the given configuration.
// Additional ConfigFuncs are applied after the configuration and may
// override it.
func NewClientFromConfig(config Config, configs ...ConfigFunc) *Client {
	return NewClient(config.Addr(), append(config.Options(), configs...)...)
}
