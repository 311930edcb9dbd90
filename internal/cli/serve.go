package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/config"
	"github.com/buildtall-systems/stockroom/internal/db"
	"github.com/buildtall-systems/stockroom/internal/engine"
	"github.com/buildtall-systems/stockroom/internal/httpapi"
	"github.com/buildtall-systems/stockroom/internal/notify"
	"github.com/buildtall-systems/stockroom/internal/obs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stockroom HTTP service",
	Long:  `Start the stockroom service. Opens the database, runs migrations and serves the product and order endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := obs.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("stockroom starting",
		zap.String("addr", cfg.Server.Addr),
		zap.String("database", cfg.Database.Path))

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready")

	var notifier engine.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		kn := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() { _ = kn.Close() }()
		notifier = kn
		logger.Info("notifications via kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Info("no kafka brokers configured, notifications go to the log")
	}

	eng := engine.New(database, notifier, engine.SystemClock{}, logger)
	api := httpapi.New(database, eng, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Create context that cancels on shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	logger.Info("stockroom stopped")
	return nil
}
