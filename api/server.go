// Package api assembles the HTTP surface of the judging engine.
package api

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/hack-arena/hackarena-judging/api/handlers"
	judgeservice "github.com/hack-arena/hackarena-judging/app/modules/judge/application"
	rankingservice "github.com/hack-arena/hackarena-judging/app/modules/ranking/application"
	scoreservice "github.com/hack-arena/hackarena-judging/app/modules/score/application"
	"github.com/hack-arena/hackarena-judging/config"
)

// NewRouter builds the chi router with all module endpoints mounted under /api/v1.
func NewRouter(
	cfg config.HTTPConfig,
	logger *slog.Logger,
	judges judgeservice.Service,
	scores scoreservice.Service,
	rankings rankingservice.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if cfg.RateLimitRPS > 0 {
		r.Use(rateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		handlers.NewJudgeHandler(judges, logger).Routes(r)
		handlers.NewScoreHandler(scores, logger).Routes(r)
		handlers.NewRankingHandler(rankings, logger).Routes(r)
	})

	return r
}

// NewMetricsHandler serves the Prometheus scrape endpoint.
func NewMetricsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// rateLimiter throttles per client IP. Limiters for idle clients are dropped
// after a few minutes so the map cannot grow without bound.
func rateLimiter(rps float64, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}

	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			allowed := c.limiter.Allow()
			mu.Unlock()

			if !allowed {
				logger.WarnContext(r.Context(), "Request rate limited", slog.String("ip", ip))
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
