package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Policy sources
const (
	PolicySourceDefault  = "default"
	PolicySourceFile     = "file"
	PolicySourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port         string
	LogLevel     string
	PolicySource string
	PolicyFile   string
	PolicyName   string
	DBConn       string
	JWTSecret    string
	CBRURL       string
	RateSchedule string
	CORSOrigins  []string
}

// NewConfig loads configuration from environment variables, reading a .env file first if present
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		PolicySource: strings.ToLower(getEnv("POLICY_SOURCE", "")),
		PolicyFile:   getEnv("POLICY_FILE", ""),
		PolicyName:   getEnv("POLICY_NAME", "default"),
		DBConn:       getEnv("DB_CONN", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CBRURL:       getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		RateSchedule: getEnv("RATE_REFRESH_SCHEDULE", "@every 1h"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.PolicySource == "" {
		cfg.PolicySource = PolicySourceDefault
		if cfg.PolicyFile != "" {
			cfg.PolicySource = PolicySourceFile
		}
	}

	switch cfg.PolicySource {
	case PolicySourceDefault:
	case PolicySourceFile:
		if cfg.PolicyFile == "" {
			return nil, fmt.Errorf("POLICY_FILE is required when POLICY_SOURCE=file")
		}
	case PolicySourcePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required when POLICY_SOURCE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown POLICY_SOURCE %q", cfg.PolicySource)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
