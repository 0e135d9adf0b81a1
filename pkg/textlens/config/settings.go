package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Settings is the process configuration read from the environment. A .env
// file in the working directory is loaded first when present.
type Settings struct {
	Env                Environment
	LogLevel           string
	LogFormat          string
	LogOutput          string
	ServerPort         string
	Lexicon            string
	LexiconDB          string
	LexiconRoutes      bool
	MaxBodyBytes       int64
	HTTPTimeoutSeconds int
}

// LoadSettings reads TEXTLENS_* variables.
func LoadSettings() (*Settings, error) {
	_ = godotenv.Load()

	env := parseEnvironment(getEnv("TEXTLENS_ENV", "development"))

	s := &Settings{
		Env:                env,
		LogLevel:           getLogLevel(env),
		LogFormat:          getEnv("TEXTLENS_LOG_FORMAT", defaultLogFormat(env)),
		LogOutput:          getEnv("TEXTLENS_LOG_OUTPUT", "stderr"),
		ServerPort:         getEnv("TEXTLENS_PORT", "8080"),
		Lexicon:            getEnv("TEXTLENS_LEXICON", ""),
		LexiconDB:          getEnv("TEXTLENS_LEXICON_DB", ""),
		LexiconRoutes:      getEnvBool("TEXTLENS_LEXICON_ROUTES", true),
		MaxBodyBytes:       int64(getEnvInt("TEXTLENS_MAX_BODY_BYTES", 1<<20)),
		HTTPTimeoutSeconds: getEnvInt("TEXTLENS_HTTP_TIMEOUT_SECONDS", 30),
	}
	return s, s.Validate()
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: TEXTLENS_MAX_BODY_BYTES must be positive", internalerr.ErrInvalidConfig)
	}
	if s.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: TEXTLENS_HTTP_TIMEOUT_SECONDS must be positive", internalerr.ErrInvalidConfig)
	}
	if _, err := strconv.Atoi(s.ServerPort); err != nil {
		return fmt.Errorf("%w: TEXTLENS_PORT %q is not a number", internalerr.ErrInvalidConfig, s.ServerPort)
	}
	return nil
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("TEXTLENS_LOG_LEVEL", "info")
	}

	return getEnv("TEXTLENS_LOG_LEVEL", "debug")
}

func defaultLogFormat(env Environment) string {
	if env == Production {
		return "json"
	}
	return "text"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
