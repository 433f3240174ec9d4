package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"ai-coaching-be/internal/config"
	"ai-coaching-be/internal/controller"
	"ai-coaching-be/internal/pkg/logger"
	"ai-coaching-be/internal/pkg/turnlock"
	"ai-coaching-be/internal/repository/memory"
	"ai-coaching-be/internal/repository/unitofwork"
	"ai-coaching-be/internal/service"
	"ai-coaching-be/pkg/doctrine"
	"ai-coaching-be/pkg/embedding"
	"ai-coaching-be/pkg/llm/factory"
	pktNats "ai-coaching-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	CoachController controller.ICoachController
	WantController  controller.IWantController
	TaskController  controller.ITaskController
	NoteController  controller.INoteController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	MonitorService  service.IMonitorService

	// Shared infrastructure (exposed for shutdown)
	SysLogger logger.ILogger
	NatsPub   *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. Doctrine
	spec, err := doctrine.Load(cfg.Agent.DoctrinePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load doctrine spec: %v", err)
	}
	log.Printf("[INFO] Doctrine loaded: version %s, %d events, %d guardrails",
		spec.Version, len(spec.Events), len(spec.Guardrails))

	// 4. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using embedding provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using embedding provider: GEMINI")
	}

	llmProvider, err := factory.NewProvider(factory.Config{
		Provider:           cfg.Ai.LLMProvider,
		OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
		OllamaModel:        cfg.Ai.LLMModel,
		HuggingFaceBaseURL: cfg.Ai.HuggingFaceURL,
		HuggingFaceAPIKey:  cfg.Ai.HuggingFaceAPIKey,
		HuggingFaceModel:   cfg.Ai.LLMModel,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	turnLock := turnlock.New(rdb, time.Duration(cfg.Agent.TurnLockTTLSec)*time.Second)
	gateStates := memory.NewGateStateRepository(time.Duration(cfg.Agent.GateStateTTLMin) * time.Minute)

	agentLogger := log.New(os.Stdout, "[AGENT] ", log.LstdFlags)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Agent.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Agent.EmbedTopicName, uowFactory, embeddingProvider)
	monitorService := service.NewMonitorService(natsSub, sysLogger)

	authService := service.NewAuthService(uowFactory, natsPub)
	coachService := service.NewCoachService(uowFactory, spec, llmProvider, turnLock, gateStates, natsPub, agentLogger, cfg.Agent.MaxCorpusChunks)
	wantService := service.NewWantService(uowFactory)
	taskService := service.NewTaskService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService)

	// 7. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		CoachController: controller.NewCoachController(coachService),
		WantController:  controller.NewWantController(wantService),
		TaskController:  controller.NewTaskController(taskService),
		NoteController:  controller.NewNoteController(noteService),
		ConsumerService: consumerService,
		MonitorService:  monitorService,
		SysLogger:       sysLogger,
		NatsPub:         natsPub,
	}
}
