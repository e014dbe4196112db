package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

// Enabled reports whether R2 storage is configured; otherwise uploads go
// to the local uploads directory.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type Config struct {
	Port        string
	Environment string
	JWTSecret   string
	// DBURL selects the Postgres record store when set; empty keeps the
	// flat-JSON-file store under DataDir.
	DBURL      string
	DataDir    string
	UploadDir  string
	CorsConfig cors.Options
	R2         R2Config
}

// Load reads .env (or ENV_FILE) and the process environment.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		JWTSecret:   jwtSecret(),
		DBURL:       getEnv("DB_URL", ""),
		DataDir:     getEnv("DATA_DIR", "data"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		CorsConfig:  CorsConfig(),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
		},
	}
}

// jwtSecret reads JWT_SECRET, generating an ephemeral one when unset.
// Sessions then stop surviving restarts, which is the safe failure mode.
func jwtSecret() string {
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		return v
	}
	secret, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Fatal("Failed to generate session secret: ", err)
	}
	log.Println("JWT_SECRET not set, using an ephemeral session secret")
	return secret
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
