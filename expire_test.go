package deepcache

import (
	"errors"
	"testing"
	"time"

	"github.com/efritz/glock"
	. "github.com/onsi/gomega"
)

func TestExpireSetWithTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 100)).To(BeNil())
	g.Expect(server.Get("foo")).To(Equal("bar"))

	ttl, err := client.TTL("foo")
	g.Expect(err).To(BeNil())
	g.Expect(ttl).To(BeNumerically(">=", 1))
	g.Expect(ttl).To(BeNumerically("<=", 100))
}

func TestExpireSetWithoutTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 0)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(TTLNoExpiry)))
}

func TestExpireOverwritePreservesTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 100)).To(BeNil())
	server.FastForward(time.Second)

	g.Expect(client.Set("foo", "baz", 0)).To(BeNil())
	g.Expect(client.Get("foo")).To(Equal("baz"))
	g.Expect(client.TTL("foo")).To(Equal(int64(99)))
}

func TestExpireOverwritePreservesPartialSecond(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 10)).To(BeNil())
	server.FastForward(9500 * time.Millisecond)

	// The remaining half second rounds up instead of clearing the TTL
	g.Expect(client.Set("foo", "baz", -1)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(1)))
}

func TestExpireOverwriteReplacesTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 100)).To(BeNil())
	g.Expect(client.Set("foo", "baz", 20)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(20)))
}

func TestExpireSetWithFlag(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.SetWithFlag("foo", "bar", 100)).To(BeNil())
	g.Expect(server.Get("foo")).To(Equal("bar"))
	g.Expect(server.Get("foo_flag")).To(Equal("true"))
	g.Expect(client.TTL("foo_flag")).To(Equal(int64(100)))
	g.Expect(client.TTL("foo")).To(Equal(int64(100)))

	server.FastForward(30 * time.Second)
	g.Expect(client.SetWithFlag("foo", "baz", 0)).To(BeNil())
	g.Expect(client.TTL("foo_flag")).To(Equal(int64(70)))
	g.Expect(client.TTL("foo")).To(Equal(int64(70)))

	server.FastForward(70 * time.Second)
	g.Expect(server.Exists("foo")).To(BeFalse())
	g.Expect(server.Exists("foo_flag")).To(BeFalse())
}

func TestExpireSetWithFlagNoTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.SetWithFlag("foo", "bar", 0)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(TTLNoExpiry)))
	g.Expect(client.TTL("foo_flag")).To(Equal(int64(TTLNoExpiry)))
}

func TestExpireTTLSentinels(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.TTL("missing")).To(Equal(int64(TTLNoKey)))

	server.Close()
	ttl, err := client.TTL("missing")
	g.Expect(ttl).To(Equal(int64(TTLError)))
	g.Expect(err).NotTo(BeNil())
}

func TestExpire(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	server.Set("foo", "bar")

	g.Expect(client.Expire("foo", 0)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(TTLNoExpiry)))

	g.Expect(client.Expire("foo", 30)).To(BeNil())
	g.Expect(client.TTL("foo")).To(Equal(int64(30)))
}

func TestExpireSetUntil(t *testing.T) {
	g := NewGomegaWithT(t)

	clock := glock.NewMockClock()
	server, client := newTestClient(t, withClock(clock))
	defer server.Close()
	defer client.Close()

	deadline := clock.Now().Local().Truncate(time.Second).Add(100 * time.Second).Format(DeadlineLayout)
	g.Expect(client.SetUntil("foo", "bar", deadline)).To(BeNil())

	ttl, err := client.TTL("foo")
	g.Expect(err).To(BeNil())
	g.Expect(ttl).To(BeNumerically(">=", 99))
	g.Expect(ttl).To(BeNumerically("<=", 100))
}

func TestExpireSetUntilPastDeadlineKeepsTTL(t *testing.T) {
	g := NewGomegaWithT(t)

	clock := glock.NewMockClock()
	server, client := newTestClient(t, withClock(clock))
	defer server.Close()
	defer client.Close()

	g.Expect(client.Set("foo", "bar", 50)).To(BeNil())

	deadline := clock.Now().Local().Add(-time.Hour).Format(DeadlineLayout)
	g.Expect(client.SetUntil("foo", "baz", deadline)).To(BeNil())
	g.Expect(client.Get("foo")).To(Equal("baz"))
	g.Expect(client.TTL("foo")).To(Equal(int64(50)))
}

func TestExpireSetUntilInvalidDeadline(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	err := client.SetUntil("foo", "bar", "tomorrow")
	g.Expect(errors.Is(err, ErrInvalidDeadline)).To(BeTrue())
	g.Expect(server.Exists("foo")).To(BeFalse())
}

func TestExpireAt(t *testing.T) {
	g := NewGomegaWithT(t)

	clock := glock.NewMockClock()
	server, client := newTestClient(t, withClock(clock))
	defer server.Close()
	defer client.Close()

	server.Set("foo", "bar")

	deadline := clock.Now().Local().Truncate(time.Second).Add(time.Minute).Format(DeadlineLayout)
	g.Expect(client.ExpireAt("foo", deadline)).To(BeNil())

	ttl, _ := client.TTL("foo")
	g.Expect(ttl).To(BeNumerically(">=", 59))
	g.Expect(ttl).To(BeNumerically("<=", 60))

	g.Expect(errors.Is(client.ExpireAt("foo", "2020-13-45 99:00:00"), ErrInvalidDeadline)).To(BeTrue())
}

func TestExpireDelFlagKey(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.SetWithFlag("foo", "bar", 0)).To(BeNil())
	g.Expect(client.DelFlagKey("foo")).To(BeNil())
	g.Expect(server.Exists("foo")).To(BeTrue())
	g.Expect(server.Exists("foo_flag")).To(BeFalse())
}

func TestExpireDelKeyAndFlagKey(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	g.Expect(client.SetWithFlag("foo", "bar", 0)).To(BeNil())
	g.Expect(client.DelKeyAndFlagKey("foo")).To(BeNil())
	g.Expect(server.Exists("foo")).To(BeFalse())
	g.Expect(server.Exists("foo_flag")).To(BeFalse())
}

func TestExpireSetServerError(t *testing.T) {
	g := NewGomegaWithT(t)

	server, client := newTestClient(t)
	defer server.Close()
	defer client.Close()

	server.SetError("LOADING")
	g.Expect(client.Set("foo", "bar", 10)).NotTo(BeNil())
	g.Expect(client.Stats().Live).To(Equal(0))

	server.SetError("")
	g.Expect(client.Set("foo", "bar", 10)).To(BeNil())
}

func TestExpireFlagKey(t *testing.T) {
	g := NewGomegaWithT(t)

	g.Expect(FlagKey("user:1")).To(Equal("user:1_flag"))
}

func TestExpireCeilSeconds(t *testing.T) {
	g := NewGomegaWithT(t)

	g.Expect(ceilSeconds(-2)).To(Equal(0))
	g.Expect(ceilSeconds(-1)).To(Equal(0))
	g.Expect(ceilSeconds(0)).To(Equal(0))
	g.Expect(ceilSeconds(1)).To(Equal(1))
	g.Expect(ceilSeconds(1000)).To(Equal(1))
	g.Expect(ceilSeconds(1001)).To(Equal(2))
	g.Expect(ceilSeconds(99000)).To(Equal(99))
}
