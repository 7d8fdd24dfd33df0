package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slicedss/config"
	"slicedss/logging"
	"slicedss/ml"
	"slicedss/slice"
)

var (
	configPath     string // Path to config.yaml
	scalerPath     string // Overrides artifacts.scaler
	classifierPath string // Overrides artifacts.classifier
	logLevel       string // Overrides log.level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "slicedss",
	Short:         "Network slice decision support",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&scalerPath, "scaler", "", "Fitted scaler artifact (overrides config)")
	rootCmd.PersistentFlags().StringVar(&classifierPath, "classifier", "", "Fitted classifier artifact (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
}

// loadConfig reads the config file and applies flag overrides. A missing file
// is tolerated when both artifacts are given on the command line.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || scalerPath == "" || classifierPath == "" {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}
	if scalerPath != "" {
		cfg.Artifacts.Scaler = scalerPath
	}
	if classifierPath != "" {
		cfg.Artifacts.Classifier = classifierPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}

// newRecommender loads the artifacts once and wires the evaluator. Any
// artifact problem surfaces here as ml.ArtifactLoadError, before a listener
// exists.
func newRecommender(cfg *config.Config, logger *zap.Logger) (slice.Recommender, error) {
	artifacts, err := ml.LoadArtifacts(ml.QoSSchema, cfg.Artifacts.Scaler, cfg.Artifacts.Classifier)
	if err != nil {
		return nil, err
	}
	logger.Info("artifacts loaded",
		zap.String("schema", ml.QoSSchema.String()),
		zap.String("scaler", cfg.Artifacts.Scaler),
		zap.String("classifier", cfg.Artifacts.Classifier))

	evaluator, err := slice.NewEvaluator(artifacts)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Size == 0 {
		return evaluator, nil
	}
	return slice.NewCachedEvaluator(evaluator, cfg.Cache.Size, logger)
}
