package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"petshop-be/internal/auth"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// login, register and order placement
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

type tier struct {
	name  string
	limit rate.Limit
	burst int
}

var (
	tierStrict  = tier{name: "strict", limit: limitStrict, burst: burstStrict}
	tierGeneral = tier{name: "general", limit: limitGeneral, burst: burstGeneral}
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller and tier.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idleTTL  time.Duration
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		idleTTL:  3 * time.Minute,
	}
}

// Run evicts idle visitors until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup(time.Now())
		}
	}
}

func (l *RateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *RateLimiter) get(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r, b)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware applies the general tier to every request.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(r, tierGeneral) {
			writeJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AllowStrict takes a token from the caller's strict bucket. Resolvers for
// login, register and order placement call it on top of the general tier.
func (l *RateLimiter) AllowStrict(r *http.Request) bool {
	return l.allow(r, tierStrict)
}

func (l *RateLimiter) allow(r *http.Request, t tier) bool {
	key := fmt.Sprintf("%s:%s", identity(r), t.name)
	return l.get(key, t.limit, t.burst).Allow()
}

func identity(r *http.Request) string {
	if s, ok := auth.SessionFrom(r.Context()); ok {
		return "user:" + s.UserID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
