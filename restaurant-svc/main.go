package main

import (
	"log"

	"lunch-vote/config"
	"lunch-vote/database"
	httpapi "lunch-vote/restaurant-svc/internal/api/http"
	"lunch-vote/restaurant-svc/internal/metrics"
	"lunch-vote/restaurant-svc/internal/service"
	"lunch-vote/restaurant-svc/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.MustLoad()
	loc := cfg.Location()

	if err := database.RunMigrations(cfg.PostgresURL()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	repo := storage.NewPostgresRepository(db, loc)
	cache := storage.NewRedisCache(rdb, 0, collector)

	aggregator := service.NewVoteAggregator(repo, cache)
	restaurants := service.NewRestaurantService(repo, repo, aggregator, cache,
		service.WithLocation(loc),
		service.WithTallies(cache),
		service.WithQRGenerator(service.DefaultQRGenerator{BaseURL: cfg.BaseURL}),
	)

	handler := httpapi.NewHandler(restaurants, loc)
	router := httpapi.NewRouter(handler, metrics.Handler(reg), collector.Middleware)

	httpapi.StartServer(cfg.RestaurantAddr, router)
}
