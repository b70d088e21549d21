package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/efritz/deepcache"
)

type staticStats deepcache.PoolStats

func (s staticStats) Stats() deepcache.PoolStats {
	return deepcache.PoolStats(s)
}

func TestHooks(t *testing.T) {
	var (
		g   = gomega.NewGomegaWithT(t)
		reg = prometheus.NewRegistry()
	)

	hooks, err := New(reg, "cache")
	g.Expect(err).To(gomega.BeNil())

	hooks.BorrowObserved(time.Millisecond, nil)
	hooks.BorrowObserved(5*time.Second, deepcache.ErrPoolExhausted)
	hooks.CommandObserved("get", time.Millisecond, nil)
	hooks.CommandObserved("get", time.Millisecond, errors.New("utoh"))
	hooks.CommandObserved("set", time.Millisecond, errors.New("utoh"))

	g.Expect(testutil.ToFloat64(hooks.borrowFailures)).To(gomega.Equal(1.0))
	g.Expect(testutil.ToFloat64(hooks.commandFailures.WithLabelValues("get"))).To(gomega.Equal(1.0))
	g.Expect(testutil.ToFloat64(hooks.commandFailures.WithLabelValues("set"))).To(gomega.Equal(1.0))
	g.Expect(testutil.CollectAndCount(hooks.borrowDuration)).To(gomega.Equal(1))
	g.Expect(testutil.CollectAndCount(hooks.commandDuration)).To(gomega.Equal(3))
}

func TestHooksDuplicateRegistration(t *testing.T) {
	var (
		g   = gomega.NewGomegaWithT(t)
		reg = prometheus.NewRegistry()
	)

	_, err := New(reg, "cache")
	g.Expect(err).To(gomega.BeNil())

	_, err = New(reg, "cache")
	g.Expect(err).NotTo(gomega.BeNil())
}

func TestRegisterPoolStats(t *testing.T) {
	var (
		g   = gomega.NewGomegaWithT(t)
		reg = prometheus.NewRegistry()
	)

	g.Expect(RegisterPoolStats(reg, "cache", staticStats{Live: 3, Idle: 2})).To(gomega.BeNil())

	families, err := reg.Gather()
	g.Expect(err).To(gomega.BeNil())

	values := map[string]float64{}
	for _, family := range families {
		values[family.GetName()] = family.GetMetric()[0].GetGauge().GetValue()
	}

	g.Expect(values).To(gomega.Equal(map[string]float64{
		"cache_pool_live_connections": 3,
		"cache_pool_idle_connections": 2,
	}))
}
