package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application settings. Values come from the environment,
// optionally seeded from a .env file, with platform policy defaults matching
// the marketplace's standard fee schedule.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// AdminID is the platform operator account. Sale reports and withdrawal
	// requests are routed to it.
	AdminID string `env:"ADMIN_ID,required"`

	PlatformFeePercent   float64       `env:"PLATFORM_FEE_PERCENT" envDefault:"5"`
	DeliveryFee          float64       `env:"DELIVERY_FEE" envDefault:"10"`
	WashingFee           float64       `env:"WASHING_FEE" envDefault:"100"`
	RefundWindow         time.Duration `env:"REFUND_WINDOW" envDefault:"72h"`
	MinTopUpAmount       float64       `env:"MIN_TOPUP_AMOUNT" envDefault:"10"`
	MinWithdrawalAmount  float64       `env:"MIN_WITHDRAWAL_AMOUNT" envDefault:"50"`
	MaxWithdrawalAmount  float64       `env:"MAX_WITHDRAWAL_AMOUNT" envDefault:"5000"`
	WithdrawalFeePercent float64       `env:"WITHDRAWAL_FEE_PERCENT" envDefault:"2"`

	PushGatewayURL        string        `env:"PUSH_GATEWAY_URL,required"`
	PushTimeout           time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`
	NotificationBatchSize int           `env:"NOTIFICATION_BATCH_SIZE" envDefault:"50"`
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return config, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
