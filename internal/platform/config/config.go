package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Default offset accounts for statement import. A bank statement only
	// carries one leg of each transaction; these supply the other.
	ImportIncomeAccount  string
	ImportExpenseAccount string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("IMPORT_INCOME_ACCOUNT", "4300")  // Other Income
	viper.SetDefault("IMPORT_EXPENSE_ACCOUNT", "5240") // Office Supplies

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("DATABASE_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		ImportIncomeAccount:  viper.GetString("IMPORT_INCOME_ACCOUNT"),
		ImportExpenseAccount: viper.GetString("IMPORT_EXPENSE_ACCOUNT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	return cfg, nil
}
