package deepcache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"

	"github.com/efritz/deepcache/iface"
)

type (
	// Pool abstracts a bounded connection pool.
	Pool = iface.Pool

	// PoolStats describes the connections owned by a pool.
	PoolStats = iface.PoolStats

	pool struct {
		dialer         DialFunc
		maxTotal       int
		maxIdle        int
		logger         Logger
		breakerFunc    BreakerFunc
		clock          glock.Clock
		connections    chan Conn
		nilConnections chan Conn
		live           int64
		initOnce       sync.Once
		closeOnce      sync.Once
	}

	// BreakerFunc bridges the interface between the Call function of
	// an overcurrent breaker and an overcurrent registry.
	BreakerFunc func(overcurrent.BreakerFunc) error
)

func noopBreakerFunc(f overcurrent.BreakerFunc) error {
	return f(context.Background())
}

// NewPool creates a pool that holds at most maxTotal connections, of
// which at most maxIdle may sit unused in the pool. No connection is
// dialed until one is borrowed.
func NewPool(
	dialer DialFunc,
	maxTotal int,
	maxIdle int,
	logger Logger,
	breakerFunc BreakerFunc,
	clock glock.Clock,
) Pool {
	if maxTotal < 1 {
		maxTotal = 1
	}

	if maxIdle < 0 {
		maxIdle = 0
	}

	if maxIdle > maxTotal {
		maxIdle = maxTotal
	}

	if logger == nil {
		logger = NilLogger
	}

	if breakerFunc == nil {
		breakerFunc = noopBreakerFunc
	}

	if clock == nil {
		clock = glock.NewRealClock()
	}

	p := &pool{
		dialer:      dialer,
		maxTotal:    maxTotal,
		maxIdle:     maxIdle,
		logger:      logger,
		breakerFunc: breakerFunc,
		clock:       clock,
	}

	p.init()
	return p
}

// Fill the pool with dial tokens. Each time a nil value is borrowed, a
// new connection is established and used in its place. The number of
// idle connections plus tokens plus borrowed connections is always equal
// to maxTotal. Calling init more than once has no effect.
func (p *pool) init() {
	p.initOnce.Do(func() {
		p.connections = make(chan Conn, p.maxIdle)
		p.nilConnections = make(chan Conn, p.maxTotal)

		for i := 0; i < p.maxTotal; i++ {
			p.nilConnections <- nil
		}
	})
}

func (p *pool) Close() {
	p.closeOnce.Do(func() {
		for i := 0; i < p.maxTotal; i++ {
			if conn, _ := p.get(nil); conn != nil {
				p.discard(conn)
			}
		}

		close(p.connections)
		close(p.nilConnections)
	})
}

func (p *pool) Borrow() (Conn, error) {
	return p.borrow(nil)
}

func (p *pool) BorrowTimeout(timeout time.Duration) (Conn, error) {
	return p.borrow(&timeout)
}

func (p *pool) Release(conn Conn, healthy bool) {
	if conn == nil {
		p.nilConnections <- nil
		return
	}

	if !healthy {
		p.discard(conn)
		p.nilConnections <- nil
		return
	}

	select {
	case p.connections <- conn:
	default:
		// Already holding maxIdle idle connections. Close this one
		// and keep its slot as a dial token.
		p.discard(conn)
		p.nilConnections <- nil
	}
}

func (p *pool) Stats() PoolStats {
	return PoolStats{
		Live: int(atomic.LoadInt64(&p.live)),
		Idle: len(p.connections),
	}
}

//
// Pool Helper Functions

func (p *pool) borrow(timeout *time.Duration) (Conn, error) {
	conn, err := p.get(timeout)
	if err != nil || conn != nil {
		return conn, err
	}

	return p.dial()
}

// Get a value from the pool. If timeout is nil, no timeout is applied.
// This method attempts to read from the live connection channel first
// in order to minimize the number of open connections when the pool is
// not under heavy concurrent load. A value that is already available is
// always preferred over the timeout, even when the timeout is zero.
func (p *pool) get(timeout *time.Duration) (Conn, error) {
	select {
	case conn, ok := <-p.connections:
		return checkOpen(conn, ok)
	default:
	}

	select {
	case conn, ok := <-p.nilConnections:
		return checkOpen(conn, ok)
	default:
	}

	select {
	case conn, ok := <-p.connections:
		return checkOpen(conn, ok)

	case conn, ok := <-p.nilConnections:
		return checkOpen(conn, ok)

	case <-makeTimeoutChan(timeout, p.clock):
		return nil, ErrPoolExhausted
	}
}

func checkOpen(conn Conn, ok bool) (Conn, error) {
	if !ok {
		return nil, ErrPoolClosed
	}

	return conn, nil
}

// Dial a new connection. The call to the dialer function is wrapped in
// a circuit breaker so that if the remote end is down we are not going
// to hammer it. Dials run concurrently; each one holds a token, so at
// most maxTotal are in flight.
func (p *pool) dial() (Conn, error) {
	var conn Conn
	err := p.breakerFunc(func(ctx context.Context) error {
		temp, err := p.dialer()
		conn = temp
		return err
	})

	if err != nil {
		// We were dialing a nil connection, put this back in the pool
		// so that we're not draining our pool on connection errors.
		p.nilConnections <- nil

		p.logger.Printf("Could not connect to backend (%s)", err.Error())
		return nil, err
	}

	atomic.AddInt64(&p.live, 1)
	p.logger.Printf("Established a new connection with backend")
	return conn, nil
}

func (p *pool) discard(conn Conn) {
	atomic.AddInt64(&p.live, -1)

	if err := conn.Close(); err != nil {
		p.logger.Printf("Could not close connection (%s)", err.Error())
	}
}

var blockingChan = make(chan time.Time)

// Wraps clock.After around a possibly nil-timeout. When timeout is nil this
// method will return a channel which is always open but never written to.
func makeTimeoutChan(timeout *time.Duration, clock glock.Clock) <-chan time.Time {
	if timeout == nil {
		return blockingChan
	}

	return clock.After(*timeout)
}
