// Package config loads service configuration from the environment, with a
// YAML run profile on top for batch jobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string
	Server    ServerConfig
	DB        DBConfig
	Ollama    OllamaConfig
	Reranker  RerankerConfig
	Knowledge KnowledgeConfig
	Retrieval RetrievalConfig
	Answer    AnswerConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MaxConns int32
	MinConns int32
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type OllamaConfig struct {
	URL            string
	ChatModel      string
	EmbeddingModel string
	MaxTokens      int
	Timeout        time.Duration
}

type RerankerConfig struct {
	Enabled bool
	URL     string
	Model   string
	Timeout time.Duration
}

// KnowledgeConfig points at the mock knowledge API that serves the
// finance/music/movie/sports lookups.
type KnowledgeConfig struct {
	URL               string
	RequestsPerSecond float64
	Burst             int
	CacheSize         int
}

type RetrievalConfig struct {
	ExtractWorkers int
	ExtractTimeout time.Duration
	TopK           int
	TopN           int
}

type AnswerConfig struct {
	CompanyTablePath string
	QueryTimeout     time.Duration
}

func Load() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Port: getEnv("PORT", "9010"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "rag-db"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "rag_user"),
			Password: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "rag_password"),
			Name:     getEnv("DB_NAME", "rag_db"),
			MaxConns: getEnvInt32("DB_MAX_CONNS", 20),
			MinConns: getEnvInt32("DB_MIN_CONNS", 5),
		},
		Ollama: OllamaConfig{
			URL:            getEnv("OLLAMA_URL", "http://localhost:11434"),
			ChatModel:      getEnv("CHAT_MODEL", "llama3.1:70b"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "all-minilm"),
			MaxTokens:      getEnvInt("CHAT_MAX_TOKENS", 4096),
			Timeout:        getEnvSeconds("OLLAMA_TIMEOUT_SECONDS", 120),
		},
		Reranker: RerankerConfig{
			Enabled: getEnvBool("RERANKER_ENABLED", true),
			URL:     getEnv("RERANKER_URL", "http://localhost:8787"),
			Model:   getEnv("RERANKER_MODEL", "bge-reranker-base"),
			Timeout: getEnvSeconds("RERANKER_TIMEOUT_SECONDS", 30),
		},
		Knowledge: KnowledgeConfig{
			URL:               getEnv("KG_API_URL", "http://localhost:8000"),
			RequestsPerSecond: getEnvFloat64("KG_API_RPS", 50),
			Burst:             getEnvInt("KG_API_BURST", 10),
			CacheSize:         getEnvInt("KG_API_CACHE_SIZE", 1024),
		},
		Retrieval: RetrievalConfig{
			ExtractWorkers: getEnvInt("EXTRACT_WORKERS", 8),
			ExtractTimeout: getEnvSeconds("EXTRACT_TIMEOUT_SECONDS", 20),
			TopK:           getEnvInt("RETRIEVAL_TOP_K", 10),
			TopN:           getEnvInt("RETRIEVAL_TOP_N", 5),
		},
		Answer: AnswerConfig{
			CompanyTablePath: getEnv("COMPANY_TABLE_PATH", "data/company_names.csv"),
			QueryTimeout:     getEnvSeconds("QUERY_TIMEOUT_SECONDS", 28),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret reads envKey directly, then a file path named by fileEnvKey, so
// the password can come from a mounted secret.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) int32 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(parsed)
		}
	}
	return fallback
}

func getEnvFloat64(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}
