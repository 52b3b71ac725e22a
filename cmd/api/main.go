// @title DevEvent API
// @version 1.0
// @description Developer conference listings, image ingestion and email bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/auth"
	"devevent/internal/adapters/cache"
	"devevent/internal/adapters/email"
	"devevent/internal/adapters/media"
	"devevent/internal/adapters/revalidate"
	httpdelivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/domain"
	"devevent/internal/repository"
	"devevent/internal/services"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	logger.Info("starting application", "env", cfg.Environment, "port", cfg.Port)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := repository.Open(startCtx, cfg.DBUrl, cfg.DBName)
	cancel()
	if err != nil {
		logger.Error("failed to open store", "err", err)
		os.Exit(1)
	}
	logger.Info("store connected", "kind", store.Kind)

	images, err := newImageResolver(cfg, logger)
	if err != nil {
		logger.Error("failed to configure image storage", "err", err)
		os.Exit(1)
	}

	listCache, redisClient := newListCache(cfg, logger)

	var (
		issuer   domain.TokenIssuer
		verifier domain.TokenVerifier
	)
	if cfg.RevalidateSecret != "" {
		issuer = auth.NewJWTIssuer(cfg.RevalidateSecret)
		verifier = auth.NewJWTVerifier(cfg.RevalidateSecret)
	}
	invalidator := revalidate.NewHTTPInvalidator(&http.Client{Timeout: revalidate.DefaultTimeout}, logger,
		cfg.RevalidateURL, issuer, revalidate.DefaultTimeout)

	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		logger.Error("failed to configure email", "err", err)
		os.Exit(1)
	}

	eventService := services.NewEventService(logger, store.Events, images, listCache, invalidator, cfg.RequestTimeout)
	bookingService := services.NewBookingService(logger, store.Bookings, store.Events, emailService,
		cfg.PublicBaseURL, cfg.RequestTimeout)

	handler := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:               logger,
		EventController:      controllers.NewEventController(logger, eventService),
		BookingController:    controllers.NewBookingController(logger, bookingService),
		RevalidateController: controllers.NewRevalidateController(logger, eventService),
		RevalidateVerifier:   verifier,
		UploadDir:            cfg.UploadDir,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	sig := <-stop
	logger.Info("stopping application", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", "err", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", "err", err)
		}
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("store close", "err", err)
	}
	logger.Info("application stopped")
}

// newImageResolver uses Cloudinary when configured and always keeps the local
// store for file bytes when it is not.
func newImageResolver(cfg *config.Config, logger *slog.Logger) (domain.ImageResolver, error) {
	local, err := media.NewLocalStore(cfg.UploadDir, httpdelivery.UploadsPrefix)
	if err != nil {
		return nil, err
	}
	cld := media.CloudinaryConfig{
		URL:       cfg.CloudinaryURL,
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	}
	if !cld.Configured() {
		logger.Info("media backend not configured, storing uploads locally", "dir", cfg.UploadDir)
		return services.NewImageResolver(nil, local, cfg.HomeDir), nil
	}
	uploader, err := media.NewCloudinaryUploader(cld)
	if err != nil {
		return nil, err
	}
	return services.NewImageResolver(uploader, local, cfg.HomeDir), nil
}

// newListCache returns a nil cache when Redis is not configured. The returned
// interface is left nil in that case rather than wrapping a nil client.
func newListCache(cfg *config.Config, logger *slog.Logger) (domain.EventListCache, *redis.Client) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, event listing is not cached", "addr", cfg.RedisAddr, "err", err)
		_ = client.Close()
		return nil, nil
	}
	return cache.NewRedisEventListCache(client, cfg.EventsCacheTTL), client
}

func newEmailService(cfg *config.Config, logger *slog.Logger) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return services.NewEmailService(logger, mailer, renderer), nil
}
