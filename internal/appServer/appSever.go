package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/eventhub/config"
	repository "github.com/ds124wfegd/eventhub/internal/database/postgres"
	rediscache "github.com/ds124wfegd/eventhub/internal/database/redis"
	"github.com/ds124wfegd/eventhub/internal/email"
	"github.com/ds124wfegd/eventhub/internal/service"
	"github.com/ds124wfegd/eventhub/internal/transport"
	"github.com/ds124wfegd/eventhub/internal/worker"

	"github.com/ds124wfegd/eventhub/pkg/postgres"
	"github.com/ds124wfegd/eventhub/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize event cache
	var eventCache service.EventCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		eventCache = rediscache.NewEventCache(redisClient, cfg.App.CacheTTL)
		logrus.Info("Event cache initialized")
	} else {
		logrus.Warn("Redis disabled, event reads go straight to the database")
	}

	// Initialize notification gateway
	var sender email.Sender
	if cfg.Email.Enabled && cfg.Email.APIKey != "" {
		sender = email.NewResendSender(cfg.Email.APIKey, cfg.Email.From)
		logrus.Info("Resend email transport initialized")
	} else {
		sender = email.NoopSender{}
		logrus.Warn("Email transport not configured, notifications disabled")
	}
	notifier := email.NewService(sender)

	// Initialize services
	userService := service.NewUserService(userRepo, notifier)
	locationService := service.NewLocationService(locationRepo)
	eventService := service.NewEventService(eventRepo, locationRepo, userRepo, notifier, eventCache)
	authService := service.NewAuthService(userService, cfg.JWT.Secret, cfg.JWT.Expiration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize deactivation worker
	deactivationWorker := worker.NewEventDeactivationWorker(eventService, cfg.Worker.DeactivateInterval)
	go deactivationWorker.Start(ctx)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService)
	eventHandler := transport.NewEventHandler(eventService)
	locationHandler := transport.NewLocationHandler(locationService)
	userHandler := transport.NewUserHandler(userService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		routes := transport.InitRoutes(cfg.JWT.Secret, authHandler, eventHandler, locationHandler, userHandler)
		if err := srv.Run(cfg, routes); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
