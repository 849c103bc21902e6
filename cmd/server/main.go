package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flightscheduler/internal/cache"
	"github.com/dharmasatrya/flightscheduler/internal/csvio"
	"github.com/dharmasatrya/flightscheduler/internal/handler"
	"github.com/dharmasatrya/flightscheduler/internal/network"
	"github.com/dharmasatrya/flightscheduler/internal/ratelimit"
)

type Config struct {
	Port           string
	CacheEnabled   bool
	RedisHost      string
	RedisPort      string
	RedisTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	SearchTimeout  time.Duration
	LocationsFile  string
	FlightsFile    string
}

func main() {
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	limiter := ratelimit.NewClientLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	})

	var routeCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		routeCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		routeCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}
	defer routeCache.Close()

	netConfig := network.DefaultConfig()
	netConfig.Cache = routeCache
	netConfig.SearchTimeout = cfg.SearchTimeout
	flightNet := network.New(netConfig)
	log.Printf("Network %s created", flightNet.ID())

	seed(flightNet, cfg)

	networkHandler := handler.NewNetworkHandler(flightNet)

	api := e.Group("/api/v1", limiter.Middleware())
	networkHandler.Register(api)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting flight scheduler server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seed loads the optional location and flight files, locations first so
// flights can refer to them.
func seed(flightNet *network.Network, cfg Config) {
	if cfg.LocationsFile != "" {
		res, err := csvio.ImportLocationsFile(cfg.LocationsFile, flightNet)
		if err != nil {
			log.Fatalf("Failed to import locations: %v", err)
		}
		log.Printf("Imported %d locations from %s (%d invalid lines)", res.Imported, cfg.LocationsFile, res.Invalid)
	}

	if cfg.FlightsFile != "" {
		res, err := csvio.ImportFlightsFile(cfg.FlightsFile, flightNet)
		if err != nil {
			log.Fatalf("Failed to import flights: %v", err)
		}
		log.Printf("Imported %d flights from %s (%d invalid lines)", res.Imported, cfg.FlightsFile, res.Invalid)
	}
}

func loadConfig() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", false),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisTTL:       getEnvDuration("REDIS_TTL", 5*time.Minute),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT", 10*time.Second),
		LocationsFile:  getEnv("LOCATIONS_FILE", ""),
		FlightsFile:    getEnv("FLIGHTS_FILE", ""),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
