package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Auth  AuthConfig
	Keys  APIKeys
	Ai    AIConfig
	Rag   RagConfig
	Agent AgentConfig
	Tools ToolsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	DataDir            string
}

type AuthConfig struct {
	JwtSecret string
}

type APIKeys struct {
	GoogleGemini string
	Anthropic    string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "huggingface", "anthropic"
	LLMModel          string
	LLMBaseURL        string
}

type RagConfig struct {
	TopK           int
	ChunkSize      int
	ChunkOverlap   int
	IngestionTopic string
}

type AgentConfig struct {
	MaxIterations int
}

type ToolsConfig struct {
	SearchAPIKey   string
	SerperKey      string
	TavilyKey      string
	BraveKey       string
	YouTubeKey     string
	OpenWeatherKey string
	RizaKey        string
	GitHubToken    string
	ShellEnabled   bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			DataDir:            getEnv("DATA_DIR", "data"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		},
		Rag: RagConfig{
			TopK:           getEnvAsInt("RAG_TOP_K", 5),
			ChunkSize:      getEnvAsInt("RAG_CHUNK_SIZE", 1500),
			ChunkOverlap:   getEnvAsInt("RAG_CHUNK_OVERLAP", 200),
			IngestionTopic: getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Agent: AgentConfig{
			MaxIterations: getEnvAsInt("AGENT_MAX_ITERATIONS", 5),
		},
		Tools: ToolsConfig{
			SearchAPIKey:   getEnv("SEARCHAPI_API_KEY", ""),
			SerperKey:      getEnv("SERPER_API_KEY", ""),
			TavilyKey:      getEnv("TAVILY_API_KEY", ""),
			BraveKey:       getEnv("BRAVE_SEARCH_API_KEY", ""),
			YouTubeKey:     getEnv("YOUTUBE_API_KEY", ""),
			OpenWeatherKey: getEnv("OPENWEATHERMAP_API_KEY", ""),
			RizaKey:        getEnv("RIZA_API_KEY", ""),
			GitHubToken:    getEnv("GITHUB_TOKEN", ""),
			ShellEnabled:   getEnv("SHELL_TOOL_ENABLED", "false") == "true",
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
