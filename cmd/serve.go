package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qhttp "slicedss/http"
	"slicedss/ml"
)

var port int // Overrides http.port

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the decision support form and API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load config
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port != 0 {
			cfg.Http.Port = port
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		// 2. Load artifacts; nothing is served without them
		recommender, err := newRecommender(cfg, logger)
		if err != nil {
			logger.Error("cannot start without model artifacts", zap.Error(err))
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if cfg.Artifacts.Watch {
			if err := ml.WatchArtifacts(ctx, logger, nil, cfg.Artifacts.Scaler, cfg.Artifacts.Classifier); err != nil {
				logger.Warn("artifact watch disabled", zap.Error(err))
			}
		}

		// 3. Start HTTP server
		handlers := qhttp.NewHandlers(recommender, ml.QoSSchema, logger)
		server := qhttp.NewServer(qhttp.ServerConfig{
			Port:           cfg.Http.Port,
			Timeout:        cfg.Http.Timeout,
			AllowedOrigins: cfg.Http.AllowedOrigins,
			MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		}, handlers, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		// 4. Handle graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		logger.Info("shutting down")

		if err := server.Stop(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}
		logger.Info("exiting")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
}
