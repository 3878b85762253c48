package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bluesphere-studio/internal/config"
	"bluesphere-studio/internal/contact"
	"bluesphere-studio/internal/content"
	"bluesphere-studio/internal/notify"
	"bluesphere-studio/internal/portfolio"
	"bluesphere-studio/internal/seo"
	"bluesphere-studio/internal/storage"
	"bluesphere-studio/internal/wallart"
	"bluesphere-studio/internal/web"
	"bluesphere-studio/pkg/contentful"
	"bluesphere-studio/pkg/emailjs"
	"bluesphere-studio/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const redisKeyPrefix = "bluesphere"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	site, err := content.Load()
	if err != nil {
		return err
	}
	if cfg.BaseURL != "" {
		site.BaseURL = cfg.BaseURL
	}

	catalog, err := wallart.DefaultCatalog()
	if err != nil {
		return err
	}

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisKeyPrefix)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pgStorage.Close()

	if err := pgStorage.Migrate(ctx); err != nil {
		return err
	}

	cms := contentful.NewClient(
		cfg.Contentful.BaseURL,
		cfg.Contentful.SpaceID,
		cfg.Contentful.Environment,
		cfg.Contentful.AccessToken,
		cfg.HTTPRequestTimeout,
		log,
	)
	if cfg.Contentful.SpaceID == "" || cfg.Contentful.AccessToken == "" {
		log.Warn("Portfolio disabled - no Contentful space or token configured")
	}
	portfolioSvc := portfolio.NewService(cms, redisClient, cfg.Contentful.ContentType, cfg.Contentful.CacheTTL, log)

	mailer := emailjs.NewClient(
		cfg.EmailJS.BaseURL,
		cfg.EmailJS.ServiceID,
		cfg.EmailJS.TemplateID,
		cfg.EmailJS.PublicKey,
		cfg.EmailJS.PrivateKey,
		cfg.HTTPRequestTimeout,
		log,
	)
	if !cfg.EmailJS.Enabled() {
		log.Warn("Contact email disabled - EmailJS service, template or public key missing")
	}

	notifier, err := notify.NewTelegramNotifier(cfg.Admin.TelegramToken, cfg.Admin.ChatIDs, log)
	if err != nil {
		return err
	}

	contactSvc := contact.NewService(pgStorage, mailer, notifier, redisClient, contact.Options{
		RateLimit:       cfg.Contact.RateLimit,
		RateLimitWindow: cfg.Contact.RateLimitWindow,
	}, log)

	advisor, err := seo.NewAdvisor(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	if err != nil {
		return err
	}

	if cfg.Log.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := web.NewServer(web.Deps{
		Site:      site,
		Catalog:   catalog,
		Discount:  cfg.WallArt.DiscountPercent,
		Portfolio: portfolioSvc,
		Contact:   contactSvc,
		SEO:       advisor,
		Health: map[string]web.Pinger{
			"postgres": pgStorage,
			"redis":    redisClient,
		},
		RequestTimeout: cfg.HTTPRequestTimeout,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: cfg.HTTPRequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := contactSvc.Close(shutdownCtx); err != nil {
		log.Warn("Pending admin notifications abandoned", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
	return nil
}
