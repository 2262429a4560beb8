package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI         string
	DBName           string
	JWTSecret        string
	Port             string
	PaymentAPIBase   string
	PaymentAPISecret string
	NotifyAPIURL     string
	NotifyAPIKey     string
	NotifySender     string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:         getEnvOrDefault("MONGO_URI", ""),
		DBName:           getEnvOrDefault("DB_NAME", "shopadmin"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		Port:             getEnvOrDefault("PORT", "8080"),
		PaymentAPIBase:   getEnvOrDefault("PAYMENT_API_BASE", ""),
		PaymentAPISecret: getEnvOrDefault("PAYMENT_API_SECRET", ""),
		NotifyAPIURL:     getEnvOrDefault("NOTIFY_API_URL", ""),
		NotifyAPIKey:     getEnvOrDefault("NOTIFY_API_KEY", ""),
		NotifySender:     getEnvOrDefault("NOTIFY_SENDER", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
