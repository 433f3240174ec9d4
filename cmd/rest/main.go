package main

import (
	"context"
	"log"

	"ai-coaching-be/internal/bootstrap"
	"ai-coaching-be/internal/config"
	"ai-coaching-be/internal/server"
	"ai-coaching-be/internal/tracer"
	"ai-coaching-be/pkg/database"
)

func main() {
	// 1. Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Configuration
	cfg := config.Load()

	// 3. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.SysLogger.Sync()

	// 5. Background services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	if err := container.MonitorService.Start(); err != nil {
		log.Printf("Background Monitor Error: %v", err)
	}

	// 6. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
