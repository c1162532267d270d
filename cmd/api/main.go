package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/meiway/mailplus-crm/internal/api/http"
	"github.com/meiway/mailplus-crm/internal/api/http/handlers"
	"github.com/meiway/mailplus-crm/internal/auth"
	"github.com/meiway/mailplus-crm/internal/config"
	"github.com/meiway/mailplus-crm/internal/events"
	"github.com/meiway/mailplus-crm/internal/observability"
	"github.com/meiway/mailplus-crm/internal/persistence"
	"github.com/meiway/mailplus-crm/internal/repository"
	"github.com/meiway/mailplus-crm/internal/service"
	"github.com/meiway/mailplus-crm/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	mailItemRepo := repository.NewMailItemRepository(pool)
	messageRepo := repository.NewOutreachMessageRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo:  contactRepo,
		MailItemRepo: mailItemRepo,
		MessageRepo:  messageRepo,
		Dispatcher:   dispatcher,
	})
	mailItemService := service.NewMailItemService(service.MailItemDependencies{
		MailItemRepo: mailItemRepo,
		ContactRepo:  contactRepo,
		Dispatcher:   dispatcher,
	})
	templateService := service.NewTemplateService(templateRepo)
	outreachService := service.NewOutreachService(service.OutreachDependencies{
		MessageRepo:  messageRepo,
		ContactRepo:  contactRepo,
		MailItemRepo: mailItemRepo,
		Templates:    templateService,
		Dispatcher:   dispatcher,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ContactRepo:  contactRepo,
		MailItemRepo: mailItemRepo,
		MessageRepo:  messageRepo,
		Cache:        redis,
	})
	maintenanceService := service.NewMaintenanceService(contactRepo, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Contacts:       handlers.NewContactsHandler(contactService),
		MailItems:      handlers.NewMailItemsHandler(mailItemService),
		Messages:       handlers.NewMessagesHandler(outreachService),
		Templates:      handlers.NewTemplatesHandler(templateService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
