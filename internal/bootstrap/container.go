package bootstrap

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"rag-symptom-be/internal/config"
	"rag-symptom-be/internal/controller"
	"rag-symptom-be/internal/handler"
	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/internal/repository/distributed"
	"rag-symptom-be/internal/repository/implementation"
	"rag-symptom-be/internal/repository/memory"
	"rag-symptom-be/internal/service"
	"rag-symptom-be/internal/websocket"
	"rag-symptom-be/pkg/embedding"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/llm/factory"
	"rag-symptom-be/pkg/rag/dialogue"
	ragEvents "rag-symptom-be/pkg/rag/events"
	"rag-symptom-be/pkg/rag/index"
	"rag-symptom-be/pkg/rag/indexer"
	"rag-symptom-be/pkg/rag/response"
	"rag-symptom-be/pkg/rag/search"
	"rag-symptom-be/pkg/rag/session"
	"rag-symptom-be/pkg/rag/state"

	pktNats "rag-symptom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController    controller.IAssistantController
	ConsultationController controller.IConsultationController
	ConditionController    controller.IConditionController
	IndexController        controller.IIndexController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	IndexBuilder    *indexer.Builder

	// WebSockets
	ConsultationHandler *handler.ConsultationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every component. db may be nil, in which case the
// retrieval index lives in memory.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "Knowledge base loaded", map[string]interface{}{
		"path":       cfg.Knowledge.Path,
		"conditions": kb.Len(),
	})

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.OpenAI,
		cfg.Ai.OpenAIEmbeddingModel,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage
	var retrievalIndex index.Index
	if db != nil {
		retrievalIndex = implementation.NewConditionVectorIndex(implementation.NewConditionEmbeddingRepository(db))
	} else {
		retrievalIndex = memory.NewVectorIndex()
	}
	sysLogger.Info("BOOTSTRAP", "Retrieval index selected", map[string]interface{}{"backend": retrievalIndex.Backend()})

	var rdb *redis.Client
	var sessionRepo contract.SessionRepository
	switch cfg.Session.Store {
	case "redis":
		rdb, err = newRedisClient(cfg.App.RedisURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { rdb.Close() })
		sessionRepo = distributed.NewSessionRepository(rdb, cfg.Session.TTL)
	case "memory", "":
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}

	// NATS (optional)
	var sink ragEvents.Sink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	eventPublisher := ragEvents.NewNatsPublisher(sink, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "websocket.log"))
	wsHub := websocket.NewHub(rdb, wsLogger)
	c.WebSocketHub = wsHub

	// 5. Domain Components
	selector := search.NewSelector(embeddingProvider, retrievalIndex, sysLogger)
	generator := response.NewGenerator(llmProvider, response.Config{
		MaxTokens: cfg.Ai.GenerationMaxTokens,
		Timeout:   cfg.Ai.GenerationTimeout,
	}, sysLogger)
	engine := dialogue.NewController(kb, selector, generator, state.NewManager(sysLogger), cfg.Ai.DefaultTopK, sysLogger)
	c.IndexBuilder = indexer.NewBuilder(kb, embeddingProvider, retrievalIndex, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Knowledge.IndexRebuildTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Knowledge.IndexRebuildTopic, c.IndexBuilder, sysLogger)

	assistantService := service.NewAssistantService(
		engine,
		session.NewManager(sessionRepo),
		eventPublisher,
		wsHub,
		sysLogger,
	)
	conditionService := service.NewConditionService(kb)
	indexService := service.NewIndexService(retrievalIndex, kb, publisherService, sysLogger)

	// 7. Controllers
	c.AssistantController = controller.NewAssistantController(assistantService, cfg.Ai.DefaultTopK)
	c.ConsultationController = controller.NewConsultationController(assistantService)
	c.ConditionController = controller.NewConditionController(conditionService)
	c.IndexController = controller.NewIndexController(indexService)
	c.ConsultationHandler = handler.NewConsultationHandler(assistantService, wsHub, wsLogger)

	return c, nil
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}

func newRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}
