package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	LogLevel        string
	QuizOptionCount int
	CaseSensitive   bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:          envOr("DB_PATH", "file:spancards.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		QuizOptionCount: envIntOr("QUIZ_OPTION_COUNT", 4),
		CaseSensitive:   envBoolOr("CASE_SENSITIVE", false),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.QuizOptionCount < 2 || c.QuizOptionCount > 8 {
		problems = append(problems, fmt.Sprintf("QUIZ_OPTION_COUNT must be between 2 and 8, got %d", c.QuizOptionCount))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
