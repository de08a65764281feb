package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	AppName     string
	Debug       bool
	JWTSecret   string
	ServerPort  int
	ServerHost  string
	FrameRate   int // engine ticks per second for the web driver
}

// ListenAddr returns the host:port the API server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFilePath string) (*Config, error) {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("[INFO] No .env file found, reading from environment")
	}

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://notris.db"),
		AppName:     getEnv("APP_NAME", "Notris"),
		Debug:       getEnvAsBool("DEBUG", false),
		ServerPort:  getEnvAsInt("SERVER_PORT", 8080),
		ServerHost:  getEnv("SERVER_HOST", "localhost"),
		FrameRate:   getEnvAsInt("FRAME_RATE", 60),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("FRAME_RATE must be positive, got %d", cfg.FrameRate)
	}

	if cfg.JWTSecret == "" {
		newKey := make([]byte, 32)
		if _, err := rand.Read(newKey); err != nil {
			return nil, fmt.Errorf("failed to generate a new JWT key: %w", err)
		}
		encodedKey := base64.StdEncoding.EncodeToString(newKey)

		f, err := os.OpenFile(envFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf(`JWT_SECRET is not set and %s could not be written: %w

Please add the following line to your .env file:

JWT_SECRET=%s`, envFilePath, err, encodedKey)
		}
		defer f.Close()

		if _, err := f.WriteString(fmt.Sprintf("\nJWT_SECRET=%s\n", encodedKey)); err != nil {
			return nil, fmt.Errorf(`failed to write JWT_SECRET to %s: %w

Please add the following line to your .env file:

JWT_SECRET=%s`, envFilePath, err, encodedKey)
		}

		return nil, fmt.Errorf("[SETUP] JWT_SECRET was missing. A new secret has been generated and saved to %s. Please restart the application", envFilePath)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
