package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"poemnames/internal"
	"poemnames/internal/config"
	"poemnames/internal/container"
	"poemnames/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()

	var db *sqlx.DB
	if cfg.Database.URL != "" {
		db, err = sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
	}

	c, err := container.New(cfg, db, logger)
	if err != nil {
		log.Fatalf("container initialization failed: %v", err)
	}
	defer c.Close()

	admin := ui.NewApp(c, logger)
	go func() {
		logger.Info("admin server listening on :%s", cfg.Server.AdminPort)
		if err := admin.Run(); err != nil {
			logger.Error("admin server stopped: %v", err)
		}
	}()

	server := ui.NewServer(c, logger)
	logger.Info("api server listening on :%s", cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
