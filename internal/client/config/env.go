package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is read before the process environment when it exists. Variables
// already set in the environment win over the file.
var envFile = ".env"

// parseEnv overlays cfg with GOOWI_* environment variables. Empty or
// malformed values are ignored.
func parseEnv(cfg *Config) {
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	setString(&cfg.APIBaseURL, "GOOWI_API_URL")
	setString(&cfg.DataFile, "GOOWI_DATA_FILE")
	setString(&cfg.LogLevel, "GOOWI_LOG_LEVEL")
	setString(&cfg.Media.Endpoint, "GOOWI_MEDIA_ENDPOINT")
	setString(&cfg.Media.Region, "GOOWI_MEDIA_REGION")
	setString(&cfg.Media.Bucket, "GOOWI_MEDIA_BUCKET")
	setString(&cfg.Media.AccessKey, "GOOWI_MEDIA_ACCESS_KEY")
	setString(&cfg.Media.SecretKey, "GOOWI_MEDIA_SECRET_KEY")
	setString(&cfg.Media.PublicBaseURL, "GOOWI_MEDIA_PUBLIC_URL")

	if v, ok := os.LookupEnv("GOOWI_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := os.LookupEnv("GOOWI_PAGE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
