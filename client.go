package deepcache

import (
	"fmt"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
)

type (
	// Client is a goroutine-safe, pooled client for the remote key-value
	// store. Every operation borrows a connection for the duration of a
	// single unit of work and always gives it back (or discards it) before
	// returning. Operations never panic and never leak backend errors as
	// anything other than a returned *OpError; the value returned with an
	// error is the neutral value documented for that operation.
	Client struct {
		pool          Pool
		borrowTimeout *time.Duration
		logger        Logger
		hooks         Hooks
		clock         glock.Clock
	}

	clientConfig struct {
		password      string
		database      int
		readTimeout   time.Duration
		writeTimeout  time.Duration
		maxTotal      int
		maxIdle       int
		breakerFunc   BreakerFunc
		clock         glock.Clock
		borrowTimeout *time.Duration
		logger        Logger
		hooks         Hooks
	}

	// ConfigFunc is a function used to initialize a new client.
	ConfigFunc func(*clientConfig)

	// UnitOfWork runs against a borrowed connection. The connection must
	// not be retained after the function returns.
	UnitOfWork[T any] func(conn Conn) (T, error)
)

const (
	// DefaultMaxIdle is the default number of idle connections kept open.
	DefaultMaxIdle = 8

	// DefaultMaxTotal is the default maximum number of open connections.
	DefaultMaxTotal = 50

	// DefaultBorrowTimeout is the default maximum time to wait for a
	// connection before failing with ErrPoolExhausted.
	DefaultBorrowTimeout = 5000 * time.Millisecond

	connectTimeout = 5000 * time.Millisecond
)

// NewClient creates a new Client for the server at addr (host:port).
func NewClient(addr string, configs ...ConfigFunc) *Client {
	defaultBorrowTimeout := DefaultBorrowTimeout

	config := &clientConfig{
		password:      "",
		database:      0,
		readTimeout:   time.Second * 5,
		writeTimeout:  time.Second * 5,
		maxTotal:      DefaultMaxTotal,
		maxIdle:       DefaultMaxIdle,
		breakerFunc:   noopBreakerFunc,
		clock:         glock.NewRealClock(),
		borrowTimeout: &defaultBorrowTimeout,
		logger:        &defaultLogger{},
		hooks:         NopHooks{},
	}

	for _, f := range configs {
		f(config)
	}

	return &Client{
		pool: NewPool(
			makeDialer(addr, config),
			config.maxTotal,
			config.maxIdle,
			config.logger,
			config.breakerFunc,
			config.clock,
		),
		borrowTimeout: config.borrowTimeout,
		logger:        config.logger,
		hooks:         config.hooks,
		clock:         config.clock,
	}
}

// WithPassword sets the password (default is "", unauthenticated).
func WithPassword(password string) ConfigFunc {
	return func(c *clientConfig) { c.password = password }
}

// WithDatabase sets the database index (default is 0).
func WithDatabase(database int) ConfigFunc {
	return func(c *clientConfig) { c.database = database }
}

// WithReadTimeout sets the read timeout for all connections in the
// pool (default is 5 seconds).
func WithReadTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.readTimeout = timeout }
}

// WithWriteTimeout sets the write timeout for all connections in the
// pool (default is 5 seconds).
func WithWriteTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.writeTimeout = timeout }
}

// WithMaxTotal sets the maximum number of connections that can be open
// at once (default is 50).
func WithMaxTotal(maxTotal int) ConfigFunc {
	return func(c *clientConfig) { c.maxTotal = maxTotal }
}

// WithMaxIdle sets the maximum number of open connections kept in the
// pool while unused (default is 8).
func WithMaxIdle(maxIdle int) ConfigFunc {
	return func(c *clientConfig) { c.maxIdle = maxIdle }
}

// WithBreaker sets the circuit breaker instance to use around new
// connections. The default uses a no-op circuit breaker.
func WithBreaker(breaker overcurrent.CircuitBreaker) ConfigFunc {
	return func(c *clientConfig) { c.breakerFunc = breaker.Call }
}

// WithBreakerRegistry sets the overcurrent registry to use and the
// name of the circuit breaker config to use around new connections.
// The default uses a no-op circuit breaker.
func WithBreakerRegistry(registry overcurrent.Registry, name string) ConfigFunc {
	return func(c *clientConfig) {
		c.breakerFunc = func(f overcurrent.BreakerFunc) error {
			return registry.Call(name, f, nil)
		}
	}
}

// WithBorrowTimeout sets the maximum time to wait for a connection
// (default is 5 seconds). A negative timeout waits indefinitely.
func WithBorrowTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) {
		if timeout < 0 {
			c.borrowTimeout = nil
			return
		}

		c.borrowTimeout = &timeout
	}
}

// WithLogger sets the logger instance (the default will use Go's
// builtin logging library).
func WithLogger(logger Logger) ConfigFunc {
	return func(c *clientConfig) { c.logger = logger }
}

// WithHooks sets the hooks invoked on each borrow and unit of work.
func WithHooks(hooks Hooks) ConfigFunc {
	return func(c *clientConfig) { c.hooks = hooks }
}

func withClock(clock glock.Clock) ConfigFunc {
	return func(c *clientConfig) { c.clock = clock }
}

//
// Client Implementation

// Close will close all open connections to the remote server. It blocks
// until every borrowed connection has been released.
func (c *Client) Close() {
	c.pool.Close()
}

// Stats returns a snapshot of the client's connection pool.
func (c *Client) Stats() PoolStats {
	return c.pool.Stats()
}

// Do runs the command on the remote server and returns its raw reply.
// On failure the reply is nil.
func (c *Client) Do(command string, args ...interface{}) (interface{}, error) {
	return Execute(c, "do", command, nil, func(conn Conn) (interface{}, error) {
		return conn.Do(command, args...)
	})
}

// Execute borrows a connection, runs the unit of work against it, and
// returns the connection to the pool. If the unit fails (or panics), the
// connection is discarded, the failure is logged, and fallback is returned
// together with an *OpError. This is the only path by which any operation
// touches a connection.
func Execute[T any](c *Client, op, key string, fallback T, f UnitOfWork[T]) (T, error) {
	conn, err := c.timedBorrow()
	if err != nil {
		c.hooks.CommandObserved(op, 0, err)
		return fallback, &OpError{Op: op, Key: key, Err: err}
	}

	start := c.clock.Now()
	result, err := runUnit(conn, f)
	elapsed := c.clock.Now().Sub(start)

	c.pool.Release(conn, err == nil)
	c.hooks.CommandObserved(op, elapsed, err)

	if err != nil {
		c.logger.Printf("Operation %s on %q failed, discarding connection (%s)", op, key, err.Error())
		return fallback, &OpError{Op: op, Key: key, Err: err}
	}

	return result, nil
}

//
// Client Helper Functions

// Invoke the unit of work, converting a panic into an error so that the
// connection is still released exactly once.
func runUnit[T any](conn Conn, f UnitOfWork[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in unit of work: %v", r)
		}
	}()

	return f(conn)
}

// Borrows and logs the time it took to return from blocking on the
// pool's borrow method.
func (c *Client) timedBorrow() (Conn, error) {
	watch := stopwatch.Start()
	start := c.clock.Now()
	conn, err := c.borrow()
	elapsed := c.clock.Now().Sub(start)
	millis := watch.Stop().Milliseconds()

	if err == nil {
		c.logger.Printf("Received connection after %vms", millis)
	} else {
		c.logger.Printf("Could not borrow connection after %vms (%s)", millis, err.Error())
	}

	c.hooks.BorrowObserved(elapsed, err)
	return conn, err
}

// Borrows from the pool using the correct method (depending on if
// a borrow timeout was configured on this client).
func (c *Client) borrow() (Conn, error) {
	if c.borrowTimeout == nil {
		return c.pool.Borrow()
	}

	return c.pool.BorrowTimeout(*c.borrowTimeout)
}
