package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Host        string
	Port        string
	DatabaseURL string
	UploadDir   string
}

type WebConfig struct {
	Host     string
	Port     string
	StoreURL string
}

// Load reads the store server configuration from the environment,
// with .env as a fallback for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getDatabaseURL(),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}
}

// LoadWeb reads the web client configuration.
func LoadWeb() *WebConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &WebConfig{
		Host:     getEnv("WEB_HOST", "0.0.0.0"),
		Port:     getEnv("WEB_PORT", "8090"),
		StoreURL: getEnv("STORE_URL", "http://localhost:8080"),
	}
}

func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "postgres")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
