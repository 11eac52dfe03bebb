package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eisenq/internal/adapter/auth"
	dbadapter "eisenq/internal/adapter/db"
	httpadapter "eisenq/internal/adapter/http"
	"eisenq/internal/adapter/http/handlers"
	httpmiddleware "eisenq/internal/adapter/http/middleware"
	"eisenq/internal/adapter/mongodb"
	appservice "eisenq/internal/app/service"
	"eisenq/internal/config"
	"eisenq/pkg/translator"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}); err != nil {
		logger.Warn("translations unavailable, falling back to message keys", zap.Error(err))
	}

	authenticator, err := auth.NewJWTAuthenticator(cfg.Auth)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	// Embedded and document stores bootstrap themselves; MySQL is migrated
	// explicitly with `api migrate`.
	if st.driver == dbadapter.DriverSQLite || st.driver == mongodb.Driver {
		if err := st.migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", st.driver, err)
		}
	}

	router, err := newRouter(cfg, logger, st, authenticator)
	if err != nil {
		return err
	}

	return listen(ctx, cfg, logger, router)
}

func newRouter(cfg *config.Config, logger *zap.Logger, st *store, authenticator *auth.JWTAuthenticator) (*gin.Engine, error) {
	if cfg.AppEnv != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	clock := func() time.Time { return time.Now().UTC() }
	routineTaskService := appservice.NewRoutineTaskService(st.routineTasks)
	taskService := appservice.NewTaskService(
		st.tasks,
		st.tx,
		appservice.WithRoutineTasks(routineTaskService),
		appservice.WithBulkDeleteConcurrency(cfg.BulkDeleteConcurrency),
		appservice.WithClock(clock),
	)
	calendarService := appservice.NewCalendarService(st.tasks, clock)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(st.pinger, st.driver),
		Tasks:       handlers.NewTaskHandler(taskService, handlers.WithClock(clock)),
		RoutineTask: handlers.NewRoutineTaskHandler(routineTaskService),
		Calendar:    handlers.NewCalendarHandler(calendarService, handlers.WithClock(clock)),
	}, authenticator, cfg.Location())

	return r, nil
}

// listen serves until ctx is cancelled, then drains in-flight requests for
// at most ShutdownTimeout.
func listen(ctx context.Context, cfg *config.Config, logger *zap.Logger, handler http.Handler) error {
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("driver", cfg.DbDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
