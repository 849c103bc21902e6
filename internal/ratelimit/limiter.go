package ratelimit

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/dharmasatrya/flightscheduler/internal/models"
)

// ClientLimiter keeps one token bucket per client key, normally the
// client's IP address.
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewClientLimiter(config Config) *ClientLimiter {
	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewClientLimiterWithDefaults() *ClientLimiter {
	return NewClientLimiter(DefaultConfig())
}

func (l *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[client] = limiter
	return limiter
}

// SetClientLimit overrides the default rate for one client.
func (l *ClientLimiter) SetClientLimit(client string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[client] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *ClientLimiter) Allow(client string) bool {
	return l.GetLimiter(client).Allow()
}

func (l *ClientLimiter) Wait(ctx context.Context, client string) error {
	return l.GetLimiter(client).Wait(ctx)
}

// Middleware rejects requests over the client's rate with 429.
func (l *ClientLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests, slow down",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
