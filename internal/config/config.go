package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Gateway   GatewayConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Address string
}

type MongoConfig struct {
	URI      string
	Database string
}

type GatewayConfig struct {
	URL        string
	AccountSID string
	AuthToken  string
	FromNumber string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type SchedulerConfig struct {
	// Cron specs, evaluated in UTC.
	ReminderSpec  string
	EducationSpec string
}

func LoadAll() (*Config, error) {
	var errs []error

	mongoURI, err := requireEnv("MONGO_URI")
	if err != nil {
		errs = append(errs, err)
	}
	gatewayURL, err := requireEnv("SMS_GATEWAY_URL")
	if err != nil {
		errs = append(errs, err)
	}
	accountSID, err := requireEnv("SMS_ACCOUNT_SID")
	if err != nil {
		errs = append(errs, err)
	}
	authToken, err := requireEnv("SMS_AUTH_TOKEN")
	if err != nil {
		errs = append(errs, err)
	}
	fromNumber, err := requireEnv("SMS_FROM_NUMBER")
	if err != nil {
		errs = append(errs, err)
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		errs = append(errs, err)
	}

	if err := joinErrors(errs); err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Mongo: MongoConfig{
			URI:      mongoURI,
			Database: getEnv("MONGO_DATABASE", "maternalcare"),
		},
		Gateway: GatewayConfig{
			URL:        gatewayURL,
			AccountSID: accountSID,
			AuthToken:  authToken,
			FromNumber: fromNumber,
		},
		Redis: redisCfg,
		Scheduler: SchedulerConfig{
			ReminderSpec:  getEnv("REMINDER_CRON", "0 9 * * *"),
			EducationSpec: getEnv("EDUCATION_CRON", "0 10 * * 1"),
		},
	}, nil
}

func loadRedisConfig() (RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}, nil
	}

	db, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return RedisConfig{}, err
	}
	ttlSeconds, err := getEnvInt("REDIS_TTL_SECONDS", 86400)
	if err != nil {
		return RedisConfig{}, err
	}

	return RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		TTL:      time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func requireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return val, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for env %s: %s", key, v)
	}
	return i, nil
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
