package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"color-palette/internal/ui"
)

// maxBuckets bounds memory; idle buckets are pruned past this size.
const maxBuckets = 10000

// RateLimiter is a token bucket per client, all sharing one rate.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*tokenBucket
	maxTokens  float64
	refillRate float64 // tokens per second
	now        func() time.Time
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter allows rpm requests per minute per client, with a burst of
// about ten seconds worth (at least 10).
func NewRateLimiter(rpm int) *RateLimiter {
	maxTokens := float64(rpm) / 6
	if maxTokens < 10 {
		maxTokens = 10
	}
	return &RateLimiter{
		buckets:    make(map[string]*tokenBucket),
		maxTokens:  maxTokens,
		refillRate: float64(rpm) / 60.0,
		now:        time.Now,
	}
}

// Allow reports whether the client may make another request now.
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.buckets[client]
	if !exists {
		if len(r.buckets) >= maxBuckets {
			r.prune(now)
		}
		bucket = &tokenBucket{tokens: r.maxTokens, lastRefill: now}
		r.buckets[client] = bucket
	}

	bucket.tokens += now.Sub(bucket.lastRefill).Seconds() * r.refillRate
	if bucket.tokens > r.maxTokens {
		bucket.tokens = r.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}
	return false
}

// prune drops buckets that would be full again by now. Callers hold mu.
func (r *RateLimiter) prune(now time.Time) {
	for k, b := range r.buckets {
		if b.tokens+now.Sub(b.lastRefill).Seconds()*r.refillRate >= r.maxTokens {
			delete(r.buckets, k)
		}
	}
}

// limit rejects clients over their budget with 429.
func limit(rl *RateLimiter, trusted map[string]bool, next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, trusted)
		if !rl.Allow(ip) {
			ui.LogStatus("warn", "Rate limited: "+ip)
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// trustedSet normalizes proxy IPs for lookup by clientIP.
func trustedSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, s := range ips {
		if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
			set[ip.String()] = true
		}
	}
	return set
}

// clientIP is the peer address, unless the peer is a trusted proxy. Then it
// is the right-most X-Forwarded-For hop that is not itself trusted, falling
// back to X-Real-IP.
func clientIP(r *http.Request, trusted map[string]bool) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !trusted[normalizeIP(peer)] {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !trusted[normalizeIP(hop)] {
				return hop
			}
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	return peer
}

func normalizeIP(s string) string {
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return s
}
