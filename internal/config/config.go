package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Mongo Mongo `validate:"required"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Mongo struct {
	// URI may be empty: the app still serves, store-backed endpoints answer 503.
	URI        string
	Database   string `validate:"required"`
	Collection string `validate:"required"`

	ConnectTimeout time.Duration `validate:"gte=0"`
	PingAttempts   int           `validate:"gte=1"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS",
				"https://www.buchetul-simonei.com,https://buchetul-simonei.com,http://localhost:3000,http://localhost:5173"), ","),
		},

		Mongo: Mongo{
			URI:        env("MONGO_URI", ""),
			Database:   env("DB_NAME", "flowershop"),
			Collection: env("COLLECTION_NAME", "orders"),

			ConnectTimeout: envDuration("MONGO_CONNECT_TIMEOUT", 5*time.Second),
			PingAttempts:   envInt("MONGO_PING_ATTEMPTS", 3),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if len(fallback) == 0 {
		return ""
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
