package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"edu-assist-be/internal/bootstrap"
	"edu-assist-be/internal/config"
	"edu-assist-be/internal/server"
	"edu-assist-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Ensure data directory exists (vector index, learner profiles)
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Panicf("Unable to create data directory %s: %v", cfg.App.DataDir, err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 7. Wait for shutdown signal, then flush shared state
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := srv.GetApp().Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := container.Close(); err != nil {
		log.Printf("Container close error: %v", err)
	}
}
