package main

import (
	"context"
	"log"

	"nex-terminal-be/internal/bootstrap"
	"nex-terminal-be/internal/config"
	"nex-terminal-be/internal/server"
	"nex-terminal-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Memory Consumer...")
		if err := container.MemoryConsumer.Consume(context.Background()); err != nil {
			log.Printf("Background Memory Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
