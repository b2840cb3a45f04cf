package bootstrap

import (
	"context"
	"log"

	"contractvault-be/internal/config"
	"contractvault-be/internal/controller"
	"contractvault-be/internal/handler"
	"contractvault-be/internal/pkg/logger"
	"contractvault-be/internal/pkg/mailer"
	"contractvault-be/internal/repository/implementation"
	"contractvault-be/internal/repository/memory"
	"contractvault-be/internal/repository/unitofwork"
	"contractvault-be/internal/service"
	"contractvault-be/internal/websocket"

	pkgNats "contractvault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopic = "system.audit"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	FileController     controller.IFileController
	UsageController    controller.IUsageController
	ChatController     controller.IChatController
	TemplateController controller.ITemplateController
	PlanController     controller.IPlanController
	AdminController    controller.IAdminController

	// Background services (exposed for main.go to run)
	AuditService service.IAuditService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// In-process audit pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS event bus
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// In-memory chat session storage
	sessionRepo := memory.NewSessionRepository()

	// Services
	auditService := service.NewAuditService(pubSub, auditTopic, uowFactory)

	usageService := service.NewUsageService(uowFactory, rdb)
	authService := service.NewAuthService(uowFactory, emailService, natsPub, auditService, cfg)
	oauthService := service.NewOAuthService(uowFactory, natsPub, auditService, cfg)
	userService := service.NewUserService(uowFactory, usageService)
	fileService := service.NewFileService(uowFactory, usageService, natsPub, auditService)
	planService := service.NewPlanService(uowFactory, usageService, emailService, natsPub, auditService)
	chatService := service.NewChatService(uowFactory, sessionRepo)
	templateService := service.NewTemplateService(uowFactory)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	// Notification domain
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, sysLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, sysLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService),
		UserController:     controller.NewUserController(userService),
		FileController:     controller.NewFileController(fileService),
		UsageController:    controller.NewUsageController(usageService),
		ChatController:     controller.NewChatController(chatService),
		TemplateController: controller.NewTemplateController(templateService),
		PlanController:     controller.NewPlanController(planService),
		AdminController:    controller.NewAdminController(adminService, authService, planService, fileService, templateService),

		AuditService: auditService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
