// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DispatchConfig struct {
	// MaxAge is the presence staleness window for matching.
	MaxAge time.Duration
	// NearbyRadiusKm bounds the redis GEO nearby listing.
	NearbyRadiusKm float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Realtime struct {
		// Driver selects the realtime store backend: "firebase" or "memory".
		Driver string
	}
	Firebase FirebaseConfig
	Maps     struct {
		APIKey string
	}
	Dispatch DispatchConfig
}

func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("QB_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("QB_DB_DSN")
	cfg.Redis.Addr = os.Getenv("QB_REDIS_ADDR")
	cfg.Realtime.Driver = envOrDefault("QB_REALTIME_DRIVER", "firebase")
	cfg.Maps.APIKey = os.Getenv("QB_MAPS_API_KEY")
	cfg.Dispatch.MaxAge = time.Duration(envOrDefaultInt("QB_DISPATCH_MAX_AGE_MS", 120_000)) * time.Millisecond
	cfg.Dispatch.NearbyRadiusKm = envOrDefaultFloat("QB_DISPATCH_NEARBY_RADIUS_KM", 5.0)

	cfg.Firebase = FirebaseConfig{
		ProjectID:       os.Getenv("QB_FIREBASE_PROJECT_ID"),
		ClientEmail:     os.Getenv("QB_FIREBASE_CLIENT_EMAIL"),
		PrivateKey:      os.Getenv("QB_FIREBASE_PRIVATE_KEY"),
		CredentialsFile: envOrDefault("QB_FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		DatabaseURL:     os.Getenv("QB_FIREBASE_DATABASE_URL"),
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
