package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"recipebook/internal/config"
	"recipebook/internal/db"
	applog "recipebook/internal/log"
	"recipebook/internal/recipes"
	"recipebook/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}
	if err := applog.SetLevel(cfg.Log.Level); err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	srv := server.New(server.Config{
		Addr:    cfg.Server.Addr,
		Gateway: recipes.NewGateway(database),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server encountered an error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	if err := srv.Stop(); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	applog.Info(context.Background(), "server stopped")
}
