package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"olcmelab/internal/config"
	"olcmelab/internal/database"
	"olcmelab/internal/handlers"
	"olcmelab/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT secret key not found in config")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	var broker *queue.Broker
	if cfg.RedisURL != "" {
		broker, err = queue.New(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Could not configure task queue broker: %v", err)
		}
		defer broker.Close()
	}

	h := handlers.New(db, cfg, broker)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))
	h.RegisterRoutes(router)

	log.Printf("Starting server on %s...", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
