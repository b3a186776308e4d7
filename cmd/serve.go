package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/verdantlab/gardensense/internal/alerting"
	"github.com/verdantlab/gardensense/internal/api"
	"github.com/verdantlab/gardensense/internal/conf"
	"github.com/verdantlab/gardensense/internal/dashboard"
	"github.com/verdantlab/gardensense/internal/datastore"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/ingest"
	"github.com/verdantlab/gardensense/internal/logger"
	"github.com/verdantlab/gardensense/internal/mqtt"
	"github.com/verdantlab/gardensense/internal/notification"
	"github.com/verdantlab/gardensense/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestion and dashboard server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := conf.Load(configFile)
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), settings)
	},
}

func parseLogLevel(s string) logger.LogLevel {
	switch s {
	case "debug":
		return logger.LogLevelDebug
	case "warn":
		return logger.LogLevelWarn
	case "error":
		return logger.LogLevelError
	default:
		return logger.LogLevelInfo
	}
}

func runServe(ctx context.Context, settings *conf.Settings) error {
	log := logger.NewSlogLogger(os.Stderr, parseLogLevel(settings.LogLevel), nil)

	db, err := datastore.Open(&settings.Database)
	if err != nil {
		return err
	}
	if err := datastore.Migrate(db); err != nil {
		return err
	}

	sensors := repository.NewSensorRepository(db)
	readings := repository.NewReadingRepository(db)
	thresholds := repository.NewThresholdRepository(db)
	alerts := repository.NewAlertRepository(db)

	notification.Initialize(notification.DefaultConfig())
	notifier := notification.GetService()

	metrics := observability.NewMetrics()
	evaluator := alerting.NewEvaluator(thresholds, alerts, notifier,
		settings.Alerting.ThresholdCacheTTL.Std(), metrics, log)
	pipeline := ingest.NewPipeline(sensors, readings, evaluator, metrics, log)
	aggregator := dashboard.NewAggregator(readings, thresholds, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	api.New(e, pipeline, aggregator, sensors, thresholds, alerts, evaluator, notifier, metrics, log)

	var mqttClient *mqtt.Client
	if settings.MQTT.Enabled {
		mqttClient = mqtt.NewClient(&settings.MQTT, pipeline, log)
		if err := mqttClient.Connect(ctx); err != nil {
			// The HTTP path still works; the paho client keeps retrying.
			log.Error("MQTT ingest source unavailable", logger.Error(err))
		}
	}

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", logger.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-stop:
		log.Info("shutting down", logger.String("signal", sig.String()))
	}

	if mqttClient != nil {
		mqttClient.Disconnect()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout.Std())
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
