package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresConn  string
	ServerAddress string
	Environment   string
	BackupDir     string
	UploadDir     string
	TelegramToken string
}

// Load читает .env (если есть) и переменные окружения, проставляет дефолты
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		PostgresConn:  os.Getenv("POSTGRES_CONN"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		Environment:   os.Getenv("ENV"),
		BackupDir:     os.Getenv("BACKUP_DIR"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = "0.0.0.0:8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN is required but not set")
	}

	return cfg, nil
}
