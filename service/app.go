package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"pressroom/app/config"
	"pressroom/app/mailer"
	"pressroom/app/repositories"
	"pressroom/app/routes"
	"pressroom/app/services"
)

// NewHandler wires the services on top of store and returns the HTTP handler.
func NewHandler(cfg *config.Config, store *repositories.Store, logger *slog.Logger) http.Handler {
	postService := services.NewPostService(store.Posts, store.Comments,
		services.WithLogger(logger),
		services.WithSearchCacheSize(cfg.SearchCacheSize),
	)
	return routes.SetupRoutes(routes.Dependencies{
		Posts:          postService,
		Comments:       services.NewCommentService(store.Comments, store.Posts, logger),
		Shares:         services.NewShareService(store.Posts, newMailer(cfg, logger), cfg.BaseURL, cfg.MailFrom, logger),
		BaseURL:        cfg.BaseURL,
		AdminTokenHash: cfg.AdminTokenHash,
		Logger:         logger,
	})
}

func newMailer(cfg *config.Config, logger *slog.Logger) mailer.Mailer {
	if !cfg.MailEnabled() {
		logger.Warn("SMTP_HOST not set, outgoing mail is logged instead of sent")
		return mailer.NewConsoleMailer(logger)
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
}

// RunServer serves the blog until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func RunServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := repositories.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return serve(ctx, ln, cfg, store, logger)
}

func serve(ctx context.Context, ln net.Listener, cfg *config.Config, store *repositories.Store, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           NewHandler(cfg, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("server started", "addr", ln.Addr().String(), "db", cfg.DBPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
