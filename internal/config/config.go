package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	// Backend API server.
	ListenAddr     string   `yaml:"listen_addr"`
	DatabaseURL    string   `yaml:"database_url"`
	CSVPath        string   `yaml:"csv_path"`
	SeedFromCSV    bool     `yaml:"seed_from_csv"`
	MaxConns       int      `yaml:"max_conns"`
	DBMaxConns     int      `yaml:"db_max_conns"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Dashboard client.
	APIBaseURL      string        `yaml:"api_base_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ComparisonCount int           `yaml:"comparison_count"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	ClientRPS       float64       `yaml:"client_rps"`
}

func defaults() Config {
	return Config{
		Env:             "development",
		LogLevel:        "info",
		ListenAddr:      ":8000",
		MaxConns:        0,
		DBMaxConns:      10,
		AllowedOrigins:  []string{"http://localhost:3000"},
		APIBaseURL:      "http://localhost:8000",
		RequestTimeout:  10 * time.Second,
		ComparisonCount: 5,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment variables. Later sources win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return defaults(), fmt.Errorf("load .env: %w", err)
	}
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.CSVPath = getenv("CSV_PATH", cfg.CSVPath)
	cfg.APIBaseURL = strings.TrimRight(getenv("API_BASE_URL", cfg.APIBaseURL), "/")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	var errs []error
	var err error
	if cfg.SeedFromCSV, err = getenvBool("SEED_FROM_CSV", cfg.SeedFromCSV); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxConns, err = getenvInt("MAX_CONNS", cfg.MaxConns); err != nil {
		errs = append(errs, err)
	}
	if cfg.DBMaxConns, err = getenvInt("DB_MAX_CONNS", cfg.DBMaxConns); err != nil {
		errs = append(errs, err)
	}
	if cfg.ComparisonCount, err = getenvInt("COMPARISON_COUNT", cfg.ComparisonCount); err != nil {
		errs = append(errs, err)
	}
	if cfg.RequestTimeout, err = getenvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		errs = append(errs, err)
	}
	if cfg.ClientRPS, err = getenvFloat("CLIENT_RPS", cfg.ClientRPS); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateServer checks the settings cmd/server needs.
func (c Config) ValidateServer() error {
	if c.DatabaseURL == "" && c.CSVPath == "" {
		return fmt.Errorf("one of DATABASE_URL or CSV_PATH is required")
	}
	if c.SeedFromCSV && (c.DatabaseURL == "" || c.CSVPath == "") {
		return fmt.Errorf("SEED_FROM_CSV needs both DATABASE_URL and CSV_PATH")
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("MAX_CONNS must not be negative")
	}
	if c.DatabaseURL != "" && c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	out, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
