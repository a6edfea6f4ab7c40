package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// QueryTimeout applies to each individual backing-store query issued by
	// the hybrid view; a timed-out fetch degrades that entity to zero.
	QueryTimeout time.Duration
	// BalanceWorkers bounds the concurrent per-entity voucher queries.
	BalanceWorkers int

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// Anchor codes under which each dynamic source's virtual accounts hang.
	StudentsAnchorCode    string
	InstructorsAnchorCode string
	ExpensesAnchorCode    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("QUERY_TIMEOUT", "5s")
	viper.SetDefault("BALANCE_WORKERS", 8)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("STUDENTS_ANCHOR_CODE", "102")
	viper.SetDefault("INSTRUCTORS_ANCHOR_CODE", "202")
	viper.SetDefault("EXPENSES_ANCHOR_CODE", "502")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	queryTimeoutStr := viper.GetString("QUERY_TIMEOUT")
	queryTimeout, err := time.ParseDuration(queryTimeoutStr)
	if err != nil {
		queryTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for QUERY_TIMEOUT ('%s'). Defaulting to %s.\n", queryTimeoutStr, queryTimeout)
	}
	cfg.QueryTimeout = queryTimeout

	cfg.BalanceWorkers = viper.GetInt("BALANCE_WORKERS")
	if cfg.BalanceWorkers < 1 {
		cfg.BalanceWorkers = 1
		log.Println("Warning: BALANCE_WORKERS must be at least 1. Defaulting to 1.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.StudentsAnchorCode = viper.GetString("STUDENTS_ANCHOR_CODE")
	cfg.InstructorsAnchorCode = viper.GetString("INSTRUCTORS_ANCHOR_CODE")
	cfg.ExpensesAnchorCode = viper.GetString("EXPENSES_ANCHOR_CODE")

	return cfg, nil
}
