package bootstrap

import (
	"fmt"
	"log"
	"path/filepath"

	"edu-assist-be/internal/config"
	"edu-assist-be/internal/controller"
	"edu-assist-be/internal/pkg/logger"
	"edu-assist-be/internal/repository/memory"
	"edu-assist-be/internal/service"
	"edu-assist-be/pkg/agent"
	"edu-assist-be/pkg/embedding"
	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/llm/factory"
	"edu-assist-be/pkg/tools"
	"edu-assist-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	LearningController controller.ILearningController
	AgentController    controller.IAgentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared state flushed on shutdown
	Profiles *learner.ProfileStore
	Logger   logger.ILogger
}

// Close flushes shared state. Called once on shutdown after the server
// stopped accepting requests. Stdout sync errors are harmless; the
// profile flush is the part that must not be lost.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	if err := c.Profiles.Flush(); err != nil {
		return fmt.Errorf("flush learner profiles: %w", err)
	}
	return nil
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmAPIKey := cfg.Keys.HuggingFace
	if cfg.Ai.LLMProvider == "anthropic" {
		llmAPIKey = cfg.Keys.Anthropic
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Persistent state
	indexPath := filepath.Join(cfg.App.DataDir, "vectorstore.idx")
	docsPath := filepath.Join(cfg.App.DataDir, "vectorstore.docs.json")
	index := vectorstore.NewVectorIndex()
	if err := index.Load(indexPath, docsPath); err != nil {
		// A missing snapshot just means a cold start with an empty index
		log.Printf("[WARN] Vector index not loaded (%v), starting empty", err)
	} else {
		log.Printf("[INFO] Vector index loaded with %d chunks", index.Len())
	}

	profiles := learner.NewProfileStore(filepath.Join(cfg.App.DataDir, "learning_profiles.json"))
	sessionRepo := memory.NewSessionRepository()

	// 5. Tool Registry (enabled/disabled derives from credential presence)
	registry := tools.NewRegistry()
	registry.Register(tools.NewSearchAPITool(cfg.Tools.SearchAPIKey))
	registry.Register(tools.NewSerperTool(cfg.Tools.SerperKey))
	registry.Register(tools.NewTavilyTool(cfg.Tools.TavilyKey))
	registry.Register(tools.NewBraveSearchTool(cfg.Tools.BraveKey))
	registry.Register(tools.NewDuckDuckGoTool())
	registry.Register(tools.NewWikipediaTool())
	registry.Register(tools.NewWikidataTool())
	registry.Register(tools.NewArxivTool())
	registry.Register(tools.NewYouTubeTool(cfg.Tools.YouTubeKey))
	registry.Register(tools.NewWeatherTool(cfg.Tools.OpenWeatherKey))
	registry.Register(tools.NewCodeInterpreterTool(cfg.Tools.RizaKey))
	registry.Register(tools.NewGitHubTool(cfg.Tools.GitHubToken))
	registry.Register(tools.NewShellTool(cfg.Tools.ShellEnabled))
	log.Printf("[INFO] Tool registry: %d tools, %d enabled", len(registry.Names()), len(registry.EnabledNames()))

	reasoningAgent := agent.NewAgent(llmProvider, registry, agent.NewMemoryStore())

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Rag.IngestionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Rag.IngestionTopic,
		embeddingProvider,
		index,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		indexPath,
		docsPath,
	)

	ragService := service.NewRagService(
		index,
		embeddingProvider,
		llmProvider,
		profiles,
		sessionRepo,
		reasoningAgent,
		cfg.Rag.TopK,
		cfg.Agent.MaxIterations,
	)
	agentService := service.NewAgentService(
		reasoningAgent,
		registry,
		index,
		embeddingProvider,
		profiles,
		cfg.Rag.TopK,
	)
	documentService := service.NewDocumentService(publisherService, sysLogger)
	learningService := service.NewLearningService(profiles, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(ragService),
		DocumentController: controller.NewDocumentController(documentService),
		LearningController: controller.NewLearningController(learningService),
		AgentController:    controller.NewAgentController(agentService),

		ConsumerService: consumerService,
		Profiles:        profiles,
		Logger:          sysLogger,
	}
}
