// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookfinder/bookfinder-server/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Neo4j  Neo4jConfig
	Data   DataConfig
	Server ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// Neo4jConfig holds graph database connection configuration.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// DataConfig holds corpus and data-loading configuration.
type DataConfig struct {
	// Dir is the directory holding the corpus files and local indexes.
	Dir string
	// AuthorsFile is the author-metadata corpus, shared across genres.
	AuthorsFile string
	// Genres lists the per-genre corpus file sets to load.
	Genres []GenreConfig
	// SubsetSize caps the number of books selected per genre.
	SubsetSize int
	// MaxInteractions caps INTERACTED edges written per genre.
	MaxInteractions int
	// MaxReviews caps REVIEWED edges written per genre.
	MaxReviews int
	// BatchSize is the number of records per graph write transaction.
	BatchSize int
}

// GenreConfig names one genre's corpus files.
type GenreConfig struct {
	Key              string `validate:"required"`
	Name             string `validate:"required"`
	BooksFile        string `validate:"required"`
	InteractionsFile string
	ReviewsFile      string
}

// BooksPath returns the absolute path of the genre's book corpus.
func (g GenreConfig) BooksPath(dir string) string {
	return filepath.Join(dir, g.BooksFile)
}

// InteractionsPath returns the absolute path of the genre's interaction corpus.
func (g GenreConfig) InteractionsPath(dir string) string {
	return filepath.Join(dir, g.InteractionsFile)
}

// ReviewsPath returns the absolute path of the genre's review corpus.
func (g GenreConfig) ReviewsPath(dir string) string {
	return filepath.Join(dir, g.ReviewsFile)
}

// AuthorsPath returns the absolute path of the author-metadata corpus.
func (d DataConfig) AuthorsPath() string {
	return filepath.Join(d.Dir, d.AuthorsFile)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
	// RateLimitRPS caps requests per second per client IP. 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	neo4jURI := flag.String("neo4j-uri", "", "Neo4j connection URI (default: neo4j://localhost:7687)")
	neo4jUser := flag.String("neo4j-user", "", "Neo4j username (default: neo4j)")
	neo4jPassword := flag.String("neo4j-password", "", "Neo4j password")
	neo4jDatabase := flag.String("neo4j-database", "", "Neo4j database name (default: neo4j)")

	dataDir := flag.String("data-dir", "", "Directory holding corpus files (default: ./data)")
	authorsFile := flag.String("authors-file", "", "Author metadata corpus file name")
	genres := flag.String("genres", "", "Comma-separated genre keys to load (default: young_adult)")
	subsetSize := flag.String("subset-size", "", "Books selected per genre (default: 10000)")
	maxInteractions := flag.String("max-interactions", "", "Interaction cap per genre (default: 50000)")
	maxReviews := flag.String("max-reviews", "", "Review cap per genre (default: 50000)")
	batchSize := flag.String("batch-size", "", "Records per write transaction (default: 500)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Neo4j: Neo4jConfig{
			URI:      getConfigValue(*neo4jURI, "NEO4J_URI", "neo4j://localhost:7687"),
			Username: getConfigValue(*neo4jUser, "NEO4J_USER", "neo4j"),
			Password: getConfigValue(*neo4jPassword, "NEO4J_PASSWORD", ""),
			Database: getConfigValue(*neo4jDatabase, "NEO4J_DATABASE", "neo4j"),
		},
		Data: DataConfig{
			Dir:             getConfigValue(*dataDir, "DATA_DIR", "./data"),
			AuthorsFile:     getConfigValue(*authorsFile, "AUTHORS_FILE", "goodreads_book_authors.json"),
			SubsetSize:      getIntConfigValue(*subsetSize, "SUBSET_SIZE", 10000),
			MaxInteractions: getIntConfigValue(*maxInteractions, "MAX_INTERACTIONS", 50000),
			MaxReviews:      getIntConfigValue(*maxReviews, "MAX_REVIEWS", 50000),
			BatchSize:       getIntConfigValue(*batchSize, "BATCH_SIZE", 500),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins:    splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
			RateLimitRPS:   float64(getIntConfigValue("", "RATE_LIMIT_RPS", 25)),
			RateLimitBurst: getIntConfigValue("", "RATE_LIMIT_BURST", 50),
		},
	}

	cfg.Data.Genres = genresFromKeys(splitList(getConfigValue(*genres, "GENRES", "young_adult")))

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationConfig(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationConfig(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationConfig(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// genresFromKeys expands genre keys into the conventional Goodreads corpus file names.
// Key "young_adult" maps to goodreads_books_young_adult.json and friends.
func genresFromKeys(keys []string) []GenreConfig {
	genres := make([]GenreConfig, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		genres = append(genres, GenreConfig{
			Key:              key,
			Name:             displayName(key),
			BooksFile:        "goodreads_books_" + key + ".json",
			InteractionsFile: "goodreads_interactions_" + key + ".json",
			ReviewsFile:      "goodreads_reviews_" + key + ".json",
		})
	}
	return genres
}

// displayName turns a genre key like "young_adult" into "Young Adult".
func displayName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", "_"), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Neo4j.URI == "" {
		return errors.New("NEO4J_URI is required")
	}
	if c.Neo4j.Database == "" {
		return errors.New("NEO4J_DATABASE cannot be empty")
	}

	if len(c.Data.Genres) == 0 {
		return errors.New("at least one genre must be configured")
	}
	v := validation.New()
	for _, genre := range c.Data.Genres {
		if err := v.Validate(genre); err != nil {
			return fmt.Errorf("genre %q: %w", genre.Key, err)
		}
	}
	if c.Data.SubsetSize <= 0 {
		return fmt.Errorf("subset size must be positive, got %d", c.Data.SubsetSize)
	}
	if c.Data.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Data.BatchSize)
	}
	if c.Data.MaxInteractions < 0 || c.Data.MaxReviews < 0 {
		return errors.New("interaction and review caps cannot be negative")
	}

	return nil
}

// expandDataDir expands ~ and makes the data dir absolute.
func (c *Config) expandDataDir() error {
	expanded, err := expandPath(c.Data.Dir, "./data")
	if err != nil {
		return err
	}
	c.Data.Dir = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// parseDurationConfig resolves a duration from flag, env var, or default.
func parseDurationConfig(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	return d, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Environment variables take precedence over .env file.
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
