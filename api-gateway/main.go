package main

import (
	"log"
	"net/http"
	"time"

	"lunch-vote/api-gateway/internal/gateway"
	"lunch-vote/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.MustLoad()

	gw := gateway.NewGateway(gateway.Config{
		RestaurantSvcURL: cfg.RestaurantSvcURL,
		VoteSvcURL:       cfg.VoteSvcURL,
	}, &http.Client{Timeout: 30 * time.Second})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Printf("API Gateway starting on %s", cfg.GatewayAddr)
	log.Fatal(http.ListenAndServe(cfg.GatewayAddr, handler))
}
