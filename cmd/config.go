package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"logistics/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	KafkaEnabled          bool     `mapstructure:"KAFKA_ENABLED"`
	KafkaBrokers          []string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderEventsTopic string   `mapstructure:"KAFKA_ORDER_EVENTS_TOPIC"`

	S3Bucket    string        `mapstructure:"S3_BUCKET"`
	S3Region    string        `mapstructure:"S3_REGION"`
	S3Endpoint  string        `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string        `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string        `mapstructure:"S3_SECRET_KEY"`
	ProofURLTTL time.Duration `mapstructure:"PROOF_URL_TTL"`

	PaystackSecretKey   string        `mapstructure:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL     string        `mapstructure:"PAYSTACK_BASE_URL"`
	PaymentAbandonAfter time.Duration `mapstructure:"PAYMENT_ABANDON_AFTER"`

	JobsEnabled bool `mapstructure:"JOBS_ENABLED"`
}

var defaults = map[string]any{
	"HTTP_PORT":                "8080",
	"LOG_LEVEL":                "info",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "postgres",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "logistics",
	"DB_SSLMODE":               "disable",
	"JWT_SECRET":               "",
	"KAFKA_ENABLED":            false,
	"KAFKA_BROKERS":            "localhost:9092",
	"KAFKA_ORDER_EVENTS_TOPIC": "order-events",
	"S3_BUCKET":                "delivery-proofs",
	"S3_REGION":                "us-east-1",
	"S3_ENDPOINT":              "",
	"S3_ACCESS_KEY":            "",
	"S3_SECRET_KEY":            "",
	"PROOF_URL_TTL":            "15m",
	"PAYSTACK_SECRET_KEY":      "",
	"PAYSTACK_BASE_URL":        "",
	"PAYMENT_ABANDON_AFTER":    "24h",
	"JOBS_ENABLED":             true,
}

// LoadConfig reads .env (when present), then an optional config file, then the
// environment. Later sources win.
func LoadConfig(cfgFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errList []error
	if c.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errList = append(errList, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.PaymentAbandonAfter <= 0 {
		errList = append(errList, errors.New("PAYMENT_ABANDON_AFTER must be positive"))
	}
	return errors.Join(errList...)
}

func (c Config) Postgres() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}
