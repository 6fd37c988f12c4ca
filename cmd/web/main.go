package main

import (
	"fmt"
	"log"
	"net/http"

	"doctrack/internal/client"
	"doctrack/internal/config"
	"doctrack/internal/web"
)

func main() {
	cfg := config.LoadWeb()

	store := client.New(cfg.StoreURL)

	server, err := web.NewServer(store)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	fmt.Printf("Web client starting on http://%s (store: %s)\n", addr, cfg.StoreURL)
	log.Fatal(http.ListenAndServe(addr, server.Handler()))
}
