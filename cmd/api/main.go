package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chandrabharti/restaurant-api/internal/captcha"
	"github.com/chandrabharti/restaurant-api/internal/config"
	"github.com/chandrabharti/restaurant-api/internal/database"
	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/googleauth"
	"github.com/chandrabharti/restaurant-api/internal/http/handlers"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/mailer"
	"github.com/chandrabharti/restaurant-api/internal/metrics"
	"github.com/chandrabharti/restaurant-api/internal/notify"
	"github.com/chandrabharti/restaurant-api/internal/repository"
	"github.com/chandrabharti/restaurant-api/internal/service"
)

func main() {
	cfg := config.Load()
	metrics.Register()

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	mailSvc := buildMailer(cfg)
	go mailer.WarmUp(mailSvc, 3, 5*time.Second)

	var captchaVerifier captcha.Verifier = captcha.NoopVerifier{}
	if cfg.IsProduction() {
		captchaVerifier = captcha.NewGoogleVerifier(cfg.Captcha.SecretKey, cfg.Captcha.MinScore)
	}

	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	googleVerifier := googleauth.NewGoogleVerifier(cfg.Google.ClientID)

	h := &handlers.Handlers{
		Auth:        service.NewAuthService(userRepo, adminRepo, googleVerifier, mailSvc, cfg),
		Admin:       service.NewAdminService(adminRepo, userRepo, bookingRepo, messageRepo, cfg),
		Booking:     service.NewBookingService(bookingRepo, eventBus),
		Menu:        service.NewMenuService(menuRepo),
		Contact:     service.NewContactService(messageRepo, eventBus),
		Captcha:     captchaVerifier,
		RateLimiter: middleware.NewRateLimiter(redisClient, cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow),
		Config:      cfg,
	}

	worker := notify.NewWorker(eventBus, mailSvc)
	if err := worker.Start(); err != nil {
		logger.Error("Failed to start notification worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logger.Info("Starting API server", "port", cfg.Server.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}

// buildMailer picks the outbound mail transport. Dev mode logs instead of
// sending; a MailerSend key wins over plain SMTP.
func buildMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode && !cfg.IsProduction():
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		return mailer.NewSMTPMailer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPass,
			cfg.Email.SMTPUseTLS,
		)
	}
}
