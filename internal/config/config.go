package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type MongoConfig struct {
	URI            string
	Database       string
	RequestTimeout time.Duration
	MaxPoolSize    uint64
}

type AuthConfig struct {
	AccessSecret string
}

type SeedConfig struct {
	OnBoot       bool
	BaselineTime string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Mongo       MongoConfig
	Auth        AuthConfig
	Seed        SeedConfig
	CORSOrigins []string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("MONGO_DATABASE"),
			RequestTimeout: v.GetDuration("MONGO_REQUEST_TIMEOUT"),
			MaxPoolSize:    v.GetUint64("MONGO_MAX_POOL_SIZE"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Seed: SeedConfig{
			OnBoot:       v.GetBool("SEED_ON_BOOT"),
			BaselineTime: v.GetString("SEED_BASELINE_TIME"),
		},
		CORSOrigins: parseList(v.GetString("CORS_ORIGINS")),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8000
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "runsheet"
	}
	if cfg.Mongo.RequestTimeout == 0 {
		cfg.Mongo.RequestTimeout = 30 * time.Second
	}
	if cfg.Mongo.MaxPoolSize == 0 {
		cfg.Mongo.MaxPoolSize = 50
	}
	if cfg.Seed.BaselineTime == "" {
		cfg.Seed.BaselineTime = "09:00"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
