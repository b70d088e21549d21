// Package prometheus exports client borrow and command metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/efritz/deepcache"
)

// Hooks implements deepcache.Hooks on top of prometheus collectors.
type Hooks struct {
	borrowDuration  prometheus.Histogram
	borrowFailures  prometheus.Counter
	commandDuration *prometheus.HistogramVec
	commandFailures *prometheus.CounterVec
}

var _ deepcache.Hooks = (*Hooks)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	h := &Hooks{
		borrowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "borrow_duration_seconds",
			Help:      "Time spent waiting for a pooled connection.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		borrowFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "borrow_failures_total",
			Help:      "Number of borrows that did not yield a connection.",
		}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of units of work run on a borrowed connection.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"}),
		commandFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_failures_total",
			Help:      "Number of operations that returned their neutral value due to an error.",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{
		h.borrowDuration,
		h.borrowFailures,
		h.commandDuration,
		h.commandFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func (h *Hooks) BorrowObserved(elapsed time.Duration, err error) {
	h.borrowDuration.Observe(elapsed.Seconds())

	if err != nil {
		h.borrowFailures.Inc()
	}
}

func (h *Hooks) CommandObserved(op string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		h.commandFailures.WithLabelValues(op).Inc()
	}

	h.commandDuration.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

// StatsSource is implemented by *deepcache.Client.
type StatsSource interface {
	Stats() deepcache.PoolStats
}

// RegisterPoolStats exports the live and idle connection counts of src
// as gauges.
func RegisterPoolStats(reg prometheus.Registerer, namespace string, src StatsSource) error {
	live := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_live_connections",
		Help:      "Number of open connections, idle or borrowed.",
	}, func() float64 { return float64(src.Stats().Live) })

	idle := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_idle_connections",
		Help:      "Number of open connections waiting in the pool.",
	}, func() float64 { return float64(src.Stats().Idle) })

	if err := reg.Register(live); err != nil {
		return err
	}

	return reg.Register(idle)
}
