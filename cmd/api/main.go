package main

import (
	"fmt"
	"log"
	"net/http"

	"doctrack/internal/blob"
	"doctrack/internal/config"
	"doctrack/internal/database"
	"doctrack/internal/handlers"
	"doctrack/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	blobs := blob.NewLocalStorage(cfg.UploadDir)

	rowHandler := handlers.NewRowHandler(services.NewRowService(db, blobs))
	fileHandler := handlers.NewFileHandler(services.NewFileService(db, blobs))

	router := http.NewServeMux()

	router.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	router.HandleFunc("GET /api/rows", rowHandler.ListRows)
	router.HandleFunc("POST /api/rows", rowHandler.CreateRow)
	router.HandleFunc("DELETE /api/rows/{id}", rowHandler.DeleteRow)

	router.HandleFunc("POST /api/upload", fileHandler.UploadFile)
	router.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)
	router.HandleFunc("GET /api/download/{id}", fileHandler.DownloadFile)

	handler := corsMiddleware(router)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	fmt.Printf("Store server starting on http://%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
