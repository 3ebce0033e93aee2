package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

type (
	Tasks struct {
		OrderReconcileInterval time.Duration
		OrderStaleAfter        time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Store struct {
		Driver       string // file or postgres
		Dir          string
		ArtifactsDir string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Checkout struct {
		UnitPrice         int64
		Currency          string
		ShippingCountries []string
		SuccessURL        string
		CancelURL         string
	}

	Stripe struct {
		APIKey        string
		WebhookSecret string
	}

	SMTP struct {
		Host          string
		Port          int
		Username      string
		Password      string
		From          string
		OperatorEmail string
	}

	OpenAI struct {
		APIKey      string
		BaseURL     string
		VisionModel string
		ImageModel  string
		ImageCount  int
	}

	Kafka struct {
		Enabled       bool
		Brokers       string
		Topic         string
		SaramaVersion string
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Store    Store
		Database Database
		Checkout Checkout
		Stripe   Stripe
		SMTP     SMTP
		OpenAI   OpenAI
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	reconcileInterval, err := osGetEnvDuration("TASKS_ORDER_RECONCILE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	staleAfter, err := osGetEnvDuration("TASKS_ORDER_STALE_AFTER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	unitPrice, err := osGetInt64("CHECKOUT_UNIT_PRICE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	smtpPort, err := osGetInt("SMTP_PORT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	imageCount, err := osGetInt("OPENAI_IMAGE_COUNT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kafkaEnabled, err := osGetBool("KAFKA_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			OrderReconcileInterval: reconcileInterval,
			OrderStaleAfter:        staleAfter,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Store: Store{
			Driver:       os.Getenv("STORE_DRIVER"),
			Dir:          os.Getenv("STORE_DIR"),
			ArtifactsDir: os.Getenv("ARTIFACTS_DIR"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Checkout: Checkout{
			UnitPrice:         unitPrice,
			Currency:          os.Getenv("CHECKOUT_CURRENCY"),
			ShippingCountries: splitList(os.Getenv("CHECKOUT_SHIPPING_COUNTRIES")),
			SuccessURL:        os.Getenv("CHECKOUT_SUCCESS_URL"),
			CancelURL:         os.Getenv("CHECKOUT_CANCEL_URL"),
		},
		Stripe: Stripe{
			APIKey:        os.Getenv("STRIPE_API_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		SMTP: SMTP{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          smtpPort,
			Username:      os.Getenv("SMTP_USERNAME"),
			Password:      os.Getenv("SMTP_PASSWORD"),
			From:          os.Getenv("SMTP_FROM"),
			OperatorEmail: os.Getenv("OPERATOR_EMAIL"),
		},
		OpenAI: OpenAI{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     os.Getenv("OPENAI_BASE_URL"),
			VisionModel: os.Getenv("OPENAI_VISION_MODEL"),
			ImageModel:  os.Getenv("OPENAI_IMAGE_MODEL"),
			ImageCount:  imageCount,
		},
		Kafka: Kafka{
			Enabled:       kafkaEnabled,
			Brokers:       os.Getenv("KAFKA_BROKERS"),
			Topic:         os.Getenv("KAFKA_TOPIC"),
			SaramaVersion: os.Getenv("KAFKA_SARAMA_VERSION"),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	switch cfg.Store.Driver {
	case StoreDriverFile:
		if cfg.Store.Dir == "" {
			return errors.New("STORE_DIR is required for the file driver")
		}
	case StoreDriverPostgres:
		if cfg.Database.Host == "" {
			return errors.New("POSTGRES_HOST is required for the postgres driver")
		}
		if cfg.Database.Port == "" {
			return errors.New("POSTGRES_PORT is required for the postgres driver")
		}
		if cfg.Database.User == "" {
			return errors.New("POSTGRES_USER is required for the postgres driver")
		}
		if cfg.Database.Password == "" {
			return errors.New("POSTGRES_PASSWORD is required for the postgres driver")
		}
		if cfg.Database.DBName == "" {
			return errors.New("POSTGRES_DB is required for the postgres driver")
		}
		if cfg.Database.SSLMode == "" {
			return errors.New("POSTGRES_SSLMODE is required for the postgres driver")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverFile, StoreDriverPostgres, cfg.Store.Driver)
	}

	if cfg.Store.ArtifactsDir == "" {
		return errors.New("ARTIFACTS_DIR is required")
	}

	if cfg.Checkout.UnitPrice == 0 {
		return errors.New("CHECKOUT_UNIT_PRICE is required")
	}
	if cfg.Checkout.Currency == "" {
		return errors.New("CHECKOUT_CURRENCY is required")
	}
	if len(cfg.Checkout.ShippingCountries) == 0 {
		return errors.New("CHECKOUT_SHIPPING_COUNTRIES is required")
	}
	if cfg.Checkout.SuccessURL == "" {
		return errors.New("CHECKOUT_SUCCESS_URL is required")
	}
	if cfg.Checkout.CancelURL == "" {
		return errors.New("CHECKOUT_CANCEL_URL is required")
	}

	if cfg.Stripe.APIKey == "" {
		return errors.New("STRIPE_API_KEY is required")
	}
	if cfg.Stripe.WebhookSecret == "" {
		return errors.New("STRIPE_WEBHOOK_SECRET is required")
	}

	if cfg.SMTP.Host == "" {
		return errors.New("SMTP_HOST is required")
	}
	if cfg.SMTP.Port == 0 {
		return errors.New("SMTP_PORT is required")
	}
	if cfg.SMTP.From == "" {
		return errors.New("SMTP_FROM is required")
	}
	if cfg.SMTP.OperatorEmail == "" {
		return errors.New("OPERATOR_EMAIL is required")
	}

	if cfg.OpenAI.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if cfg.OpenAI.ImageCount == 0 {
		return errors.New("OPENAI_IMAGE_COUNT is required")
	}

	if cfg.Kafka.Enabled {
		if cfg.Kafka.Brokers == "" {
			return errors.New("KAFKA_BROKERS is required when Kafka is enabled")
		}
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required when Kafka is enabled")
		}
		if cfg.Kafka.SaramaVersion == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when Kafka is enabled")
		}
	}

	if cfg.Tasks.OrderReconcileInterval == time.Duration(0) {
		return errors.New("TASKS_ORDER_RECONCILE_INTERVAL is required")
	}
	if cfg.Tasks.OrderStaleAfter == time.Duration(0) {
		return errors.New("TASKS_ORDER_STALE_AFTER is required")
	}

	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetInt64(s string) (int64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
