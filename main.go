package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"globemesh/config"
)

func main() {
	// Parse command line flags
	var (
		configPath = flag.String("config", "settings.json", "Path to the settings file")
		addr       = flag.String("addr", "", "Listen address (overrides the configured port)")
	)
	flag.Parse()

	fmt.Println("=== Ellipsoid Mesh Preview Server ===")

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	server, err := newMeshServer(settings)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	start := time.Now()
	count, err := server.warm(context.Background())
	if err != nil {
		log.Fatalf("Failed to precompute meshes: %v", err)
	}
	fmt.Printf("Precomputed %d meshes in %v (default: %s)\n", count, time.Since(start), server.defaults.Key())

	listen := *addr
	if listen == "" {
		listen = fmt.Sprintf(":%d", settings.Server.Port)
	}
	fmt.Printf("Server starting on http://localhost%s\n", listen)
	log.Fatal(http.ListenAndServe(listen, server.routes()))
}
