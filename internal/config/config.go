package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Stock policies applied when an order is placed.
const (
	StockPolicyStrict = "strict"
	StockPolicyClamp  = "clamp"
)

var (
	ErrMissingDBHost    = errors.New("DB_HOST is required unless DEMO_MODE is enabled")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
)

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	ShopName     string
	ShopPhone    string
	ShopEmail    string
	ShopTimezone string

	StockPolicy      string
	CartEnforceStock bool
	DemoMode         bool

	// Seeded into the in-memory store when both are set.
	DemoAdminEmail    string
	DemoAdminPassword string

	TraceExporter string
	OTLPEndpoint  string

	// Optional catalog cache, e.g. redis://localhost:6379/0.
	RedisURL string

	EmailAPIURL     string
	EmailServiceID  string
	EmailTemplateID string
	EmailPublicKey  string
	EmailPrivateKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:  os.Getenv("APP_ENV"),
		AppPort: getEnv("APP_PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		ShopName:     getEnv("SHOP_NAME", "Catzo Pet Shop"),
		ShopPhone:    os.Getenv("SHOP_PHONE"),
		ShopEmail:    os.Getenv("SHOP_EMAIL"),
		ShopTimezone: getEnv("SHOP_TIMEZONE", "Asia/Kolkata"),

		StockPolicy:      strings.ToLower(getEnv("STOCK_POLICY", StockPolicyStrict)),
		CartEnforceStock: getBool("CART_ENFORCE_STOCK", false),
		DemoMode:         getBool("DEMO_MODE", false),

		DemoAdminEmail:    os.Getenv("DEMO_ADMIN_EMAIL"),
		DemoAdminPassword: os.Getenv("DEMO_ADMIN_PASSWORD"),

		TraceExporter: getEnv("OTEL_TRACES_EXPORTER", "none"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		RedisURL: os.Getenv("REDIS_URL"),

		EmailAPIURL:     getEnv("EMAIL_API_URL", "https://api.emailjs.com/api/v1.0/email/send"),
		EmailServiceID:  os.Getenv("EMAIL_SERVICE_ID"),
		EmailTemplateID: os.Getenv("EMAIL_TEMPLATE_ID"),
		EmailPublicKey:  os.Getenv("EMAIL_PUBLIC_KEY"),
		EmailPrivateKey: os.Getenv("EMAIL_PRIVATE_KEY"),
	}

	if cfg.StockPolicy != StockPolicyStrict && cfg.StockPolicy != StockPolicyClamp {
		log.Printf("unknown STOCK_POLICY %q, falling back to %s", cfg.StockPolicy, StockPolicyStrict)
		cfg.StockPolicy = StockPolicyStrict
	}

	return cfg
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if !c.DemoMode && c.DBHost == "" {
		return ErrMissingDBHost
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// EmailEnabled is true when enough of the email API is configured to attempt a send.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) EmailEnabled() bool {
	return c.EmailServiceID != "" && c.EmailTemplateID != "" && c.EmailPublicKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
