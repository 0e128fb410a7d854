package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables; a set variable wins over the stored preference
const (
	EnvAPIURL         = "DONATION_API_URL"
	EnvAPITimeout     = "DONATION_API_TIMEOUT"
	EnvStrictContact  = "DONATION_STRICT_CONTACT"
	EnvSentryDSN      = "SENTRY_DSN"
	EnvAppEnvironment = "APP_ENV"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// DefaultEnvironment is reported to error tracking when APP_ENV is unset
const DefaultEnvironment = "development"

// LoadEnv loads env files into the process environment. Variables already
// set are not overridden and missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", file, err)
		}
		log.Printf("Loaded environment from %s", file)
	}
	return nil
}

// SentryDSN returns the error tracking DSN, empty when reporting is off
func SentryDSN() string {
	return getEnv(EnvSentryDSN, "")
}

// Environment returns the deployment environment name
func Environment() string {
	return getEnv(EnvAppEnvironment, DefaultEnvironment)
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func getEnv(key, defaultValue string) string {
	if value, ok := lookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string) (int, bool) {
	value, ok := lookupEnv(key)
	if !ok {
		return 0, false
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring %s=%q: not an integer", key, value)
		return 0, false
	}
	return intVal, true
}

func getEnvBool(key string) (bool, bool) {
	value, ok := lookupEnv(key)
	if !ok {
		return false, false
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Ignoring %s=%q: not a boolean", key, value)
		return false, false
	}
	return boolVal, true
}
