package bootstrap

import (
	"context"
	"log"

	"bazaarchat-be/internal/config"
	"bazaarchat-be/internal/controller"
	"bazaarchat-be/internal/pkg/logger"
	"bazaarchat-be/internal/repository/implementation"
	"bazaarchat-be/internal/repository/memory"
	"bazaarchat-be/internal/service"
	"bazaarchat-be/pkg/assistant"
	pkgcatalog "bazaarchat-be/pkg/catalog"
	"bazaarchat-be/pkg/classifier"
	"bazaarchat-be/pkg/database"
	"bazaarchat-be/pkg/llm/factory"
	"bazaarchat-be/pkg/match/seller"
	"bazaarchat-be/pkg/sms"

	pktNats "bazaarchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CatalogController controller.ICatalogController
	AuthController    controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ArchiverService service.IArchiverService
	CatalogService  service.ICatalogService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	var natsSub *pktNats.Subscriber
	if natsPub != nil {
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		}
	}

	rdb, err := database.NewRedisClient(database.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Matching Core
	intentClassifier := classifier.New(llmProvider, sysLogger)
	sellerMatcher := seller.NewMatcher(intentClassifier, intentClassifier)
	orchestrator := assistant.NewOrchestrator(
		intentClassifier,
		sellerMatcher,
		llmProvider,
		sysLogger,
		cfg.App.BaseURL,
	)

	// 5. Repositories
	sessionRepo := memory.NewSessionRepository()
	galleryRepo := implementation.NewGalleryRepository(db)
	sellerRepo := implementation.NewSellerRepository(db)
	productRepo := implementation.NewProductRepository(db)

	// 6. Services
	catalogService := service.NewCatalogService(
		galleryRepo,
		sellerRepo,
		productRepo,
		pkgcatalog.NewCSVLoader(),
		service.CatalogSources{
			GalleriesURL: cfg.Catalog.GalleriesURL,
			SellersURL:   cfg.Catalog.SellersURL,
			ProductsURL:  cfg.Catalog.ProductsURL,
		},
		sysLogger,
	)
	if err := catalogService.Refresh(context.Background()); err != nil {
		log.Printf("[WARN] Initial catalog refresh failed: %v", err)
	}

	publisherService := service.NewPublisherService(pubSub, cfg.App.TranscriptTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.App.TranscriptTopic, natsPub)
	archiverService := service.NewArchiverService(natsSub, sysLogger)

	chatService := service.NewChatService(
		sessionRepo,
		orchestrator,
		catalogService,
		publisherService,
		sysLogger,
	)

	var smsClient sms.ISMSClient
	if cfg.SMS.GatewayURL != "" {
		smsClient = sms.NewClient(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.Sender)
	} else {
		smsClient = sms.ConsoleClient{}
		log.Printf("[INFO] No SMS gateway configured, OTP codes print to console")
	}
	otpService := service.NewOTPService(rdb, smsClient, sessionRepo, natsPub, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		CatalogController: controller.NewCatalogController(catalogService),
		AuthController:    controller.NewAuthController(otpService),

		ConsumerService: consumerService,
		ArchiverService: archiverService,
		CatalogService:  catalogService,
		Logger:          sysLogger,
	}
}
