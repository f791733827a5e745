package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/signup/api/internal/model"
)

// RateLimiter budgets roster changes per client host. Every client owns a
// bucket holding up to Rate+Burst tokens that refills continuously at Rate
// tokens per Window.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	window   time.Duration
	burst    int
	cleanup  time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int              // Tokens refilled per Window (default 100)
	Window  time.Duration    // Refill period (default 1 minute)
	Burst   int              // Capacity above Rate
	Cleanup time.Duration    // Sweep interval for idle buckets (default 5 minutes)
	Now     func() time.Time // Clock (default time.Now)
}

// Decision is the outcome of taking one token
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // until the next token; zero when allowed
	Reset      time.Time     // when the bucket is full again
}

// NewRateLimiter creates a rate limiter and starts its sweeper. Call Stop
// when done.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst < 0 {
		cfg.Burst = 0
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		cleanup:  cfg.Cleanup,
		now:      cfg.Now,
		stopChan: make(chan struct{}),
	}

	go rl.sweepLoop()

	return rl
}

// Capacity is the most tokens a bucket can hold
func (rl *RateLimiter) Capacity() int {
	return rl.rate + rl.burst
}

// Stop stops the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// Take spends one token from key's bucket if one is available
func (rl *RateLimiter) Take(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b := rl.refill(key, now)

	if b.tokens >= 1 {
		b.tokens--
		return Decision{
			Allowed:   true,
			Remaining: int(b.tokens),
			Reset:     rl.fullAt(b),
		}
	}

	return Decision{
		RetryAfter: time.Duration((1 - b.tokens) * float64(rl.perToken())),
		Reset:      rl.fullAt(b),
	}
}

// refill returns key's bucket topped up to now. Callers hold mu.
func (rl *RateLimiter) refill(key string, now time.Time) *bucket {
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.Capacity()), updated: now}
		rl.buckets[key] = b
		return b
	}

	if elapsed := now.Sub(b.updated); elapsed > 0 {
		gained := float64(elapsed) / float64(rl.perToken())
		b.tokens = math.Min(float64(rl.Capacity()), b.tokens+gained)
		b.updated = now
	}
	return b
}

// perToken is how long one token takes to come back
func (rl *RateLimiter) perToken() time.Duration {
	return rl.window / time.Duration(rl.rate)
}

func (rl *RateLimiter) fullAt(b *bucket) time.Time {
	missing := float64(rl.Capacity()) - b.tokens
	return b.updated.Add(time.Duration(missing * float64(rl.perToken())))
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopChan:
			return
		}
	}
}

// sweep drops buckets that have refilled completely; a new bucket starts full
// anyway
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if !rl.fullAt(b).After(now) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit spends one token per request from the client's bucket and
// answers 429 when it is empty
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Take(clientKey(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Capacity()))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if !d.Allowed {
				retryAfter := int(math.Ceil(d.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey buckets requests by remote host, so every connection from one
// client shares a budget regardless of source port
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
