package main

import (
	"context"
	"log"

	"contractvault-be/internal/bootstrap"
	"contractvault-be/internal/config"
	"contractvault-be/internal/server"
	"contractvault-be/internal/tracer"
	"contractvault-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Audit pipeline runs in the background for the process lifetime.
	go func() {
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background audit consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
