package config

import (
	"log"
	"os"
)

type Config struct {
	Port       string
	APIBaseURL string
	SessionDSN string
	LogFile    string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	api := os.Getenv("API_BASE_URL")
	if api == "" {
		api = "http://localhost:9090/api"
	}
	dsn := os.Getenv("SESSION_DB")
	if dsn == "" {
		dsn = "petspa-sessions.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./petspa.log"
	}

	cfg := Config{Port: port, APIBaseURL: api, SessionDSN: dsn, LogFile: logFile}
	log.Printf("[config] PORT=%s API_BASE_URL=%s SESSION_DB=%s LOG_FILE=%s", cfg.Port, cfg.APIBaseURL, cfg.SessionDSN, cfg.LogFile)
	return cfg
}
