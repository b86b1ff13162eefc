package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"lunch-vote/agg-svc/internal/service"
	"lunch-vote/agg-svc/internal/storage"
	"lunch-vote/config"
)

func main() {
	cfg := config.MustLoad()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, "agg-svc")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), cfg.Location())
	consumer.Start(ctx)
	log.Println("Aggregation Service exited")
}
