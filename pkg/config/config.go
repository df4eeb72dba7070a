package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the global configuration for the ontograph services
type Config struct {
	// Store configuration for the SPARQL triplestore
	Store struct {
		URL      string
		Dataset  string
		Username string
		Password string
		Timeout  time.Duration
	}

	// Query configuration for the guarded gateway
	Query struct {
		DefaultLimit int
		MaxLimit     int
	}

	// VectorStore configuration
	VectorStore struct {
		Weaviate struct {
			Host   string
			Scheme string
			APIKey string
			Class  string
		}
	}

	// Embedding configuration
	Embedding struct {
		BaseURL string
		Model   string
		Timeout time.Duration
	}

	// Logging configuration
	Logging struct {
		Level string
	}

	// Server configuration for the MCP surface
	Server struct {
		Name    string
		Version string
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	config := &Config{}

	config.Store.URL = getEnv("STORE_URL", "http://localhost:3030")
	config.Store.Dataset = getEnv("STORE_DATASET", "ontology")
	config.Store.Username = getEnv("STORE_USERNAME", "admin")
	config.Store.Password = getEnv("STORE_PASSWORD", "admin")
	config.Store.Timeout = time.Duration(getEnvInt("STORE_TIMEOUT", 30)) * time.Second

	config.Query.DefaultLimit = getEnvInt("QUERY_DEFAULT_LIMIT", 50)
	config.Query.MaxLimit = getEnvInt("QUERY_MAX_LIMIT", 1000)

	config.VectorStore.Weaviate.Host = getEnv("WEAVIATE_HOST", "localhost:8080")
	config.VectorStore.Weaviate.Scheme = getEnv("WEAVIATE_SCHEME", "http")
	config.VectorStore.Weaviate.APIKey = getEnv("WEAVIATE_API_KEY", "")
	config.VectorStore.Weaviate.Class = getEnv("WEAVIATE_CLASS", "OntologyEntity")

	config.Embedding.BaseURL = getEnv("EMBEDDING_BASE_URL", "http://localhost:11434")
	config.Embedding.Model = getEnv("EMBEDDING_MODEL", "nomic-embed-text")
	config.Embedding.Timeout = time.Duration(getEnvInt("EMBEDDING_TIMEOUT", 30)) * time.Second

	config.Logging.Level = getEnv("LOG_LEVEL", "info")

	config.Server.Name = getEnv("SERVER_NAME", "ontograph")
	config.Server.Version = getEnv("SERVER_VERSION", "0.1.0")

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// Global instance of the configuration
var globalConfig *Config

func init() {
	globalConfig = LoadFromEnv()
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Reload reloads the configuration from environment variables
func Reload() *Config {
	globalConfig = LoadFromEnv()
	return globalConfig
}
