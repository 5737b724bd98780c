package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Knowledge KnowledgeConfig
	Keys      APIKeys
	Ai        AIConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables consultation events
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string // empty selects the in-memory index
}

type SessionConfig struct {
	Store string // "memory" or "redis"
	TTL   time.Duration
}

type KnowledgeConfig struct {
	Path              string
	IndexRebuildTopic string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	EmbeddingProvider    string // "ollama" or "openai"
	OllamaBaseURL        string
	OllamaModel          string
	OpenAIEmbeddingModel string
	LLMProvider          string // "ollama" or "openai"
	LLMModel             string
	GenerationMaxTokens  int
	GenerationTimeout    time.Duration
	DefaultTopK          int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", "memory"),
			TTL:   getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Knowledge: KnowledgeConfig{
			Path:              getEnv("KB_PATH", "data/knowledge_base.json"),
			IndexRebuildTopic: getEnv("INDEX_REBUILD_TOPIC", "REBUILD_CONDITION_INDEX"),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:          getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", ""),
			LLMProvider:          getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
			GenerationMaxTokens:  getEnvAsInt("GENERATION_MAX_TOKENS", 256),
			GenerationTimeout:    getEnvAsDuration("GENERATION_TIMEOUT", 60*time.Second),
			DefaultTopK:          getEnvAsInt("DEFAULT_TOP_K", 3),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "rag-symptom-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts "90s" style values or a plain number of seconds
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
