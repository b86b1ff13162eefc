package main

import (
	"log"

	"lunch-vote/config"
	"lunch-vote/database"
	httpapi "lunch-vote/vote-svc/internal/api/http"
	"lunch-vote/vote-svc/internal/service"
	"lunch-vote/vote-svc/internal/storage"
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

	writer := config.NewKafkaWriter(cfg)
	defer writer.Close()

	votes := service.NewVoteService(
		storage.NewPostgresRepository(db, loc),
		storage.NewRedisCache(rdb),
		storage.NewKafkaPublisher(writer),
		service.WithLocation(loc),
	)

	router := httpapi.NewRouter(httpapi.NewHandler(votes, loc))
	httpapi.StartServer(cfg.VoteAddr, router)
}
