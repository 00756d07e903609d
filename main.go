package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saqibullah/diabetes-risk-api/api"
	"github.com/saqibullah/diabetes-risk-api/config"
	"github.com/saqibullah/diabetes-risk-api/logging"
	"github.com/saqibullah/diabetes-risk-api/metrics"
	"github.com/saqibullah/diabetes-risk-api/model"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "diabetes-risk-api: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	classifier, err := loadClassifier(cfg, logger)
	if err != nil {
		logger.Error("failed to load model", zap.Error(err))
		return err
	}
	predictor := model.NewPredictor(classifier, model.NewScaler(model.DefaultScalerConfig()))

	var opts []api.Option
	metricsPath := ""
	if cfg.Metrics.Enabled {
		opts = append(opts, api.WithMetrics(metrics.New()))
		metricsPath = cfg.Metrics.Path
	}

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.NewHandler(predictor, logger, opts...), api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		MetricsPath:    metricsPath,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting diabetes prediction API server",
		zap.String("addr", server.Addr),
		zap.String("model_backend", cfg.Model.Backend),
	)
	logger.Info("endpoints",
		zap.String("predict", "POST /predict"),
		zap.String("health", "GET /health"),
		zap.String("extract", "POST /extract"),
		zap.String("metrics", metricsPath),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", zap.Error(err))
			return err
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("exiting")
	return nil
}

func loadClassifier(cfg *config.Config, logger *zap.Logger) (model.Classifier, error) {
	switch cfg.Model.Backend {
	case config.BackendRemote:
		remote := model.NewRemoteClassifier(cfg.Model.RemoteURL, cfg.Model.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Model.Timeout)
		defer cancel()
		if err := remote.Ping(ctx); err != nil {
			return nil, err
		}
		logger.Info("using remote model server", zap.String("url", cfg.Model.RemoteURL))
		return remote, nil
	default:
		path := cfg.ResolveModelPath()
		classifier, err := model.LoadArtifact(path)
		if err != nil {
			return nil, err
		}
		logger.Info("model loaded", zap.String("path", path))
		return classifier, nil
	}
}
