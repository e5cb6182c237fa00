package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-palette/internal/colorutil"
	"color-palette/internal/ui"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestRateLimiterBurstAndRefill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := NewRateLimiter(60) // 1/s, burst 10
	rl.now = clock.Now

	for i := 0; i < 10; i++ {
		require.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients have separate buckets")

	clock.t = clock.t.Add(2 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterPrunesIdleBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := NewRateLimiter(600)
	rl.now = clock.Now

	rl.buckets["idle"] = &tokenBucket{tokens: 0, lastRefill: clock.t.Add(-time.Hour)}
	for len(rl.buckets) < maxBuckets {
		rl.buckets[time.Duration(len(rl.buckets)).String()] = &tokenBucket{tokens: 0, lastRefill: clock.t}
	}

	assert.True(t, rl.Allow("new"))
	_, kept := rl.buckets["idle"]
	assert.False(t, kept)
	assert.Contains(t, rl.buckets, "new")
}

func TestClientIPIgnoresHeadersFromUntrustedPeers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(r, nil))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.1", clientIP(r, nil))
	assert.Equal(t, "10.0.0.1", clientIP(r, trustedSet([]string{"192.168.1.1"})))
}

func TestClientIPBehindTrustedProxy(t *testing.T) {
	trusted := trustedSet([]string{"10.0.0.1", "10.0.0.4"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(r, trusted))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", clientIP(r, trusted))

	// the spoofable left-most entry is skipped in favor of the last untrusted hop
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", clientIP(r, trusted))
}

func TestServerRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	ui.SetOutput(io.Discard)

	cfg := testConfig()
	cfg.RateLimitRPM = 6
	ts := httptest.NewServer(NewServer(cfg, colorutil.NewSeededSource(1), nil).Handler())
	defer ts.Close()

	var last int
	for i := 0; i < 11; i++ {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/random", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestServerRateLimits(t *testing.T) {
	ui.SetOutput(io.Discard)

	cfg := testConfig()
	cfg.RateLimitRPM = 6 // burst floor of 10
	ts := httptest.NewServer(NewServer(cfg, colorutil.NewSeededSource(1), nil).Handler())
	defer ts.Close()

	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/random")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/api/random")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "https://palette.test", resp.Header.Get("Access-Control-Allow-Origin"))
}
