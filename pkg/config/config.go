package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	SessionSecret           string
	CacheTTL                time.Duration
	RedisAddr               string
	MediaRoot               string
	AWSBucketName           string
	AWSRegion               string
	FirebaseCredentialsPath string
}

func Load() *Config {
	// Missing .env is fine, plain environment variables also work.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		SessionSecret:           getEnv("SESSION_SECRET", "supersecretsessionkey"),
		CacheTTL:                time.Duration(getEnvInt("CACHE_TTL_SECONDS", 20)) * time.Second,
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		MediaRoot:               getEnv("MEDIA_ROOT", "media"),
		AWSBucketName:           getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:               getEnv("AWS_REGION", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
