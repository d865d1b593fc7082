package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	Storage    string // memory | sqlite
	DBDSN      string
	LogFile    string
	SessionTTL time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	backend := os.Getenv("STORAGE")
	if backend == "" {
		backend = "memory"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopfront.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	ttl := 7 * 24 * time.Hour
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	cfg := Config{Port: port, Storage: backend, DBDSN: dsn, LogFile: logFile, SessionTTL: ttl}
	log.Printf("[config] PORT=%s STORAGE=%s DB_DSN=%s LOG_FILE=%s SESSION_TTL=%s",
		cfg.Port, cfg.Storage, cfg.DBDSN, cfg.LogFile, cfg.SessionTTL)
	return cfg
}
