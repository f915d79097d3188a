package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"road-snap-service/internal/adapters/cache"
	"road-snap-service/internal/adapters/roads"
	"road-snap-service/internal/api"
	"road-snap-service/internal/config"
	"road-snap-service/internal/platform/db"
	"road-snap-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Roads API client, Postgres or Redis speed limit
// cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	roadsKey := os.Getenv("ROADS_API_KEY")
	if strings.TrimSpace(roadsKey) == "" {
		log.Fatal("ROADS_API_KEY is required")
	}

	provider, err := roads.NewClient(roadsKey)
	if err != nil {
		log.Fatal(err)
	}

	// Speed limit cache backend: Postgres when DATABASE_URL is set, Redis
	// when REDIS_ADDR is set, otherwise no caching.
	var limitCache ports.SpeedLimitCache
	switch {
	case os.Getenv("DATABASE_URL") != "":
		pg, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(pg); err != nil {
			log.Fatal(err)
		}

		limitCache = cache.NewSQLSpeedLimitCache(pg)
		log.Println("speed limit cache: postgres")

	case os.Getenv("REDIS_ADDR") != "":
		client := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})
		defer client.Close()

		// Posted limits change rarely; a week-long TTL keeps entries warm
		// without letting stale data live forever.
		limitCache = cache.NewRedisSpeedLimitCache(client, 7*24*time.Hour)
		log.Println("speed limit cache: redis")

	default:
		log.Println("speed limit cache: disabled")
	}

	router := api.NewRouter(provider, limitCache)

	// Timeouts are tuned for uncached annotation requests (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
