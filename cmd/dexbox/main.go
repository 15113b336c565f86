package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/latoulicious/dexbox/internal/api"
	"github.com/latoulicious/dexbox/internal/config"
	"github.com/latoulicious/dexbox/internal/version"
	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/database"
	"github.com/latoulicious/dexbox/pkg/editor"
	"github.com/latoulicious/dexbox/pkg/logging"
	"github.com/latoulicious/dexbox/pkg/notify"
	"github.com/latoulicious/dexbox/pkg/sprite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Initialize application with proper error handling
	if err := initializeApplication(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// initializeApplication wires every component, serves until a termination
// signal arrives and shuts down in reverse order.
func initializeApplication() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.Logger.Level, Format: cfg.Logger.Format}
	logging.SetGlobalLoggerFactory(logging.NewLoggerFactory(logOpts))

	var dm *database.DatabaseManager
	if cfg.Database.URL != "" {
		dm, err = database.Open(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer dm.Close()
	}

	if err := initializeCentralizedLogging(cfg, dm, logOpts); err != nil {
		return fmt.Errorf("failed to initialize centralized logging: %w", err)
	}
	systemLogger := logging.GetGlobalLoggerFactory().CreateLogger("system")
	systemLogger.Info("Starting dexbox", map[string]interface{}{
		"version":     version.Get().String(),
		"config":      cfg.Origin,
		"data_source": cfg.Data.Source,
	})

	source, err := newSource(cfg, dm)
	if err != nil {
		return err
	}
	loader := catalog.NewLoader(source)

	notifier, discord, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	board := notify.NewBoard(cfg.Editor.NotificationTTL)
	fanout := notify.Fanout{board, notifier}
	if discord != nil {
		fanout = append(fanout, discord)
		defer discord.Wait()
	}

	resolver := sprite.NewResolver(newProber(cfg), cfg.Assets.PictureDir)
	defer resolver.Close()

	session := editor.NewSession(editor.Options{
		DefaultHeldItemID:   cfg.Editor.DefaultHeldItemID,
		DefaultHeldItemName: cfg.Editor.DefaultHeldItemName,
		Locale:              language.Make(cfg.Editor.Locale),
	}, resolver, board, fanout)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Data.Timeout)
	if c, err := loader.Load(loadCtx); err != nil {
		// Serve anyway; health reports unhealthy until a reload succeeds.
		systemLogger.Error("Initial catalogue load failed", err, map[string]interface{}{
			"source": loader.SourceName(),
		})
	} else {
		session.SetCatalog(c)
	}
	cancel()

	scheduler, err := startScheduler(cfg, session, loader, dm)
	if err != nil {
		return err
	}

	var pinger api.Pinger
	if dm != nil {
		pinger = dm
	}
	router := api.NewRouter(api.NewHandler(session, pinger), cfg.Server)
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		systemLogger.Info("HTTP server listening", map[string]interface{}{
			"address": cfg.Server.Address,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sc:
		systemLogger.Info("Shutting down gracefully...", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		systemLogger.Error("HTTP server shutdown error", err, nil)
	}
	<-scheduler.Stop().Done()

	systemLogger.Info("Application shutdown complete", nil)
	return runErr
}

// initializeCentralizedLogging swaps in the database-backed logger factory
// when diagnostics are persisted.
func initializeCentralizedLogging(cfg *config.Config, dm *database.DatabaseManager, opts logging.Options) error {
	if !cfg.Logger.SaveToDB {
		return nil
	}
	if dm == nil {
		return errors.New("save_to_db requires a database")
	}

	loggerFactory := logging.NewDatabaseLoggerFactory(dm.Logs, opts)
	logging.SetGlobalLoggerFactory(loggerFactory)

	loggerFactory.CreateLogger("system").Info("Centralized logging system initialized successfully", map[string]interface{}{
		"database_connected": true,
		"logger_type":        "database",
	})
	return nil
}

func newSource(cfg *config.Config, dm *database.DatabaseManager) (catalog.Source, error) {
	paths := cfg.Data.Paths()

	switch cfg.Data.Source {
	case config.SourceHTTP:
		return catalog.NewHTTPSource(cfg.Data.BaseURL, paths, &http.Client{Timeout: cfg.Data.Timeout}), nil
	case config.SourceDatabase:
		if dm == nil {
			return nil, errors.New("database source requires a database")
		}
		return catalog.NewDatabaseSource(dm.Catalog), nil
	default:
		return catalog.NewFileSource(cfg.Data.BaseDir, paths), nil
	}
}

func newProber(cfg *config.Config) sprite.Prober {
	return sprite.SchemeProber{
		File: sprite.FileProber{Root: cfg.Assets.Root},
		HTTP: sprite.HTTPProber{Client: &http.Client{Timeout: cfg.Assets.ProbeTimeout}},
	}
}

func newNotifier(cfg *config.Config) (notify.Notifier, *notify.DiscordNotifier, error) {
	logNotifier := notify.NewLogNotifier(logging.GetGlobalLoggerFactory().CreateLogger("notify"))
	if !cfg.Discord.Enabled() {
		return logNotifier, nil, nil
	}

	discord, err := notify.NewDiscordWebhookNotifier(cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Discord notifier: %w", err)
	}
	return logNotifier, discord, nil
}

// startScheduler registers the catalogue reload and diagnostic log pruning
// jobs. The scheduler always starts so shutdown can stop it.
func startScheduler(cfg *config.Config, session *editor.Session, loader *catalog.Loader, dm *database.DatabaseManager) (*cron.Cron, error) {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("scheduler")
	scheduler := cron.New()

	if cfg.Data.ReloadSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Data.ReloadSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.Timeout)
			defer cancel()
			if err := session.Reload(ctx, loader); err != nil {
				logger.Warn("Scheduled catalogue reload failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule catalogue reload: %w", err)
		}
		logger.Info("Catalogue reload scheduled", map[string]interface{}{
			"schedule": cfg.Data.ReloadSchedule,
		})
	}

	if dm != nil && cfg.Logger.SaveToDB && cfg.Database.LogRetention > 0 {
		_, err := scheduler.AddFunc("@daily", func() {
			if _, err := dm.PruneLogs(context.Background(), cfg.Database.LogRetention); err != nil {
				logger.Warn("Scheduled log pruning failed", map[string]interface{}{
					"error":     err.Error(),
					"retention": cfg.Database.LogRetention.String(),
				})
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule log pruning: %w", err)
		}
	}

	scheduler.Start()
	return scheduler, nil
}
