package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/amaumene/personal-backend/internal/domain"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAPIKey   = "your-secure-api-key-here"
	defaultHost     = "0.0.0.0"
	defaultPort     = "8000"
	defaultLogLevel = "info"
	defaultEnvFile  = ".env"

	maxPort = 65535
)

// Level names logrus does not know but LOG_LEVEL commonly carries.
var levelAliases = map[string]log.Level{
	"critical": log.FatalLevel,
	"notset":   log.TraceLevel,
}

type Config struct {
	APIKey   string
	Host     string
	Port     int
	LogLevel string
}

// Load reads the .env file when present, then resolves every setting from
// the environment. Variables already set in the environment win over .env.
// Defaults apply only to unset variables; a variable set to "" keeps "".
func Load() (*Config, error) {
	if err := loadEnvFile(defaultEnvFile); err != nil {
		return nil, err
	}

	port, err := getEnvInt("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:   getEnvOrDefault("API_KEY", defaultAPIKey),
		Host:     getEnvOrDefault("HOST", defaultHost),
		Port:     port,
		LogLevel: getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > maxPort {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidConfig, c.Port)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// ValidateAPIKey reports whether key is present and equal to the configured secret.
func (c *Config) ValidateAPIKey(key string) bool {
	return key != "" && key == c.APIKey
}

func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level returns the logrus level for LogLevel, falling back to info.
func (c *Config) Level() log.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func parseLevel(name string) (log.Level, error) {
	if level, ok := levelAliases[strings.ToLower(name)]; ok {
		return level, nil
	}
	return log.ParseLevel(name)
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		log.WithField("file", path).Debug("loaded environment file")
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) (int, error) {
	value := getEnvOrDefault(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: environment variable %s must be a valid integer, got %q", domain.ErrInvalidConfig, key, value)
	}
	return intValue, nil
}
