package bootstrap

import (
	"context"
	"log"

	"nex-terminal-be/internal/config"
	"nex-terminal-be/internal/controller"
	"nex-terminal-be/internal/pkg/logger"
	"nex-terminal-be/internal/service"
	"nex-terminal-be/pkg/contentcache"
	"nex-terminal-be/pkg/events"
	"nex-terminal-be/pkg/fallback"
	"nex-terminal-be/pkg/imagegen/huggingface"
	"nex-terminal-be/pkg/kvstore"
	"nex-terminal-be/pkg/llm/openrouter"
	"nex-terminal-be/pkg/memory"
	"nex-terminal-be/pkg/prompt"
	"nex-terminal-be/pkg/quota"
	"nex-terminal-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	StudioController controller.IStudioController
	SearchController controller.ISearchController

	// Background Services (Exposed for main.go to run)
	MemoryConsumer service.IMemoryConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Key-Value Store (selected by configuration, injected everywhere)
	store, err := kvstore.NewStore(cfg.Store.Driver, cfg.Store.RedisURL)
	if err != nil {
		log.Printf("[WARN] Unknown KV driver %q, falling back to memory", cfg.Store.Driver)
		store = kvstore.NewMemoryStore()
	}
	if redisStore, ok := store.(*kvstore.RedisStore); ok {
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}
	log.Printf("[INFO] Using KV store driver: %s", cfg.Store.Driver)

	// 3. Store-backed components
	tracker := quota.NewTracker(store, cfg.Studio.DailyLimit)
	cache := contentcache.New(store)
	conversation := memory.NewConversation(store)

	// 4. Providers
	chatProvider := openrouter.NewOpenRouterProvider(
		cfg.Keys.OpenRouter,
		"",
		cfg.App.BaseURL,
		"NeX Terminal",
	)
	imageGenerator := huggingface.NewClient(cfg.Keys.HuggingFace, "", "")
	searchClient := search.NewClient(cfg.Keys.Tavily)

	// 5. Fallback Orchestrator (routes resolved once by config.Load)
	orchestrator := fallback.NewOrchestrator(chatProvider, cfg.Models.Routes, sysLogger)

	// 6. Event Bus + memory worker
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	turnPublisher := service.NewTurnPublisherService(events.TopicChatTurns, pubSub)
	memoryLogger := logger.NewIsolatedLogger("logs/memory.log")
	memoryConsumer := service.NewMemoryConsumerService(pubSub, events.TopicChatTurns, conversation, memoryLogger)

	// 7. Services
	improveModel := cfg.Models.Routes.Default.Primary
	promptEngine := prompt.NewEngine(chatProvider, improveModel)

	chatService := service.NewChatService(orchestrator, conversation, turnPublisher, searchClient, sysLogger)
	studioService := service.NewStudioService(tracker, cache, imageGenerator, promptEngine, sysLogger)
	searchService := service.NewSearchService(searchClient)

	// 8. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		StudioController: controller.NewStudioController(studioService),
		SearchController: controller.NewSearchController(searchService),

		MemoryConsumer: memoryConsumer,
	}
}
