package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Indicators struct {
		RSIPeriod int `yaml:"rsi_period"`
		RVIPeriod int `yaml:"rvi_period"`
	} `yaml:"indicators"`
	Output struct {
		CSVDir string `yaml:"csv_dir"`
	} `yaml:"output"`
	Schedule struct {
		Cron         string `yaml:"cron"`
		Symbol       string `yaml:"symbol"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.Output.CSVDir = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("SCHEDULE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SCHEDULE_SYMBOL"); v != "" {
		cfg.Schedule.Symbol = v
	}
	if v := os.Getenv("RSI_PERIOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse RSI_PERIOD: %w", err)
		}
		cfg.Indicators.RSIPeriod = n
	}
	if v := os.Getenv("RVI_PERIOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse RVI_PERIOD: %w", err)
		}
		cfg.Indicators.RVIPeriod = n
	}

	// Defaults
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.RVIPeriod == 0 {
		cfg.Indicators.RVIPeriod = 14
	}
	if cfg.Output.CSVDir == "" {
		cfg.Output.CSVDir = "."
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 30 16 * * 1-5"
	}
	if cfg.Schedule.LookbackDays == 0 {
		cfg.Schedule.LookbackDays = 90
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockpulse.db"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "stock_data.log"
	}

	return cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if c.Indicators.RSIPeriod <= 0 {
		return fmt.Errorf("indicators.rsi_period must be positive")
	}
	if c.Indicators.RVIPeriod <= 0 {
		return fmt.Errorf("indicators.rvi_period must be positive")
	}
	return nil
}

// ValidateSchedule checks the settings required by the scheduled runner.
func (c *Config) ValidateSchedule() error {
	if c.Schedule.Symbol == "" {
		return fmt.Errorf("schedule.symbol is required")
	}
	if c.Schedule.LookbackDays <= 0 {
		return fmt.Errorf("schedule.lookback_days must be positive")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.Cron); err != nil {
		return fmt.Errorf("schedule.cron: %w", err)
	}
	return nil
}
