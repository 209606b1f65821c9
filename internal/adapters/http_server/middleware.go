package httpserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/auth"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.ObserveHTTP(route, r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Bearer auth middleware ----

type claimsKey struct{}

// Auth rejects requests without a valid admin bearer token and stores the
// token claims in the request context.
func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			claims, err := tokens.Parse(strings.TrimSpace(h[len("Bearer "):]))
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}

// ---- Per-IP rate limit middleware ----

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu    sync.Mutex
	m     map[string]*visitor
	rps   int
	burst int
	ttl   time.Duration
	sweep time.Time
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	// evict idle visitors lazily, at most once per ttl
	if now.Sub(v.sweep) > v.ttl {
		for k, vis := range v.m {
			if now.Sub(vis.lastSeen) > v.ttl {
				delete(v.m, k)
			}
		}
		v.sweep = now
	}
	vis, ok := v.m[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(rate.Limit(v.rps), v.burst)}
		v.m[ip] = vis
	}
	vis.lastSeen = now
	return vis.limiter
}

// RateLimit answers 429 once a client IP exceeds rps requests per second.
func RateLimit(rps, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = rps
	}
	store := &visitors{m: map[string]*visitor{}, rps: rps, burst: burst, ttl: 3 * time.Minute}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)
			if !store.get(ip, time.Now()).Allow() {
				log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
