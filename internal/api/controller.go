// Package api exposes the HTTP interface: ingestion, dashboard reads and
// the threshold/alert management endpoints.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/dashboard"
	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
	"github.com/verdantlab/gardensense/internal/ingest"
	"github.com/verdantlab/gardensense/internal/logger"
	"github.com/verdantlab/gardensense/internal/notification"
	"github.com/verdantlab/gardensense/internal/observability"
)

// ThresholdInvalidator purges a cached threshold after an owner edit.
// Implemented by the alerting evaluator.
type ThresholdInvalidator interface {
	InvalidateThreshold(userID string, sensorID uint, sensorType entities.SensorType)
}

// Controller wires HTTP routes to the pipeline, repositories and the
// aggregation engine.
type Controller struct {
	pipeline      *ingest.Pipeline
	aggregator    *dashboard.Aggregator
	sensors       repository.SensorRepository
	thresholds    repository.ThresholdRepository
	alerts        repository.AlertRepository
	invalidator   ThresholdInvalidator
	notifications *notification.Service
	metrics       *observability.Metrics
	log           logger.Logger
}

// New creates the API controller and registers its routes on e.
func New(
	e *echo.Echo,
	pipeline *ingest.Pipeline,
	aggregator *dashboard.Aggregator,
	sensors repository.SensorRepository,
	thresholds repository.ThresholdRepository,
	alerts repository.AlertRepository,
	invalidator ThresholdInvalidator,
	notifications *notification.Service,
	metrics *observability.Metrics,
	log logger.Logger,
) *Controller {
	c := &Controller{
		pipeline:      pipeline,
		aggregator:    aggregator,
		sensors:       sensors,
		thresholds:    thresholds,
		alerts:        alerts,
		invalidator:   invalidator,
		notifications: notifications,
		metrics:       metrics,
		log:           log,
	}
	c.initRoutes(e)
	return c
}

func (c *Controller) initRoutes(e *echo.Echo) {
	e.Use(openCORS)

	group := e.Group("/api/v1")
	group.POST("/ingest", c.HandleIngest)
	group.GET("/dashboard", c.GetDashboard)
	group.GET("/sensors", c.ListSensors)
	group.GET("/thresholds", c.ListThresholds)
	group.PUT("/thresholds", c.UpsertThreshold)
	group.DELETE("/thresholds/:id", c.DeleteThreshold)
	group.GET("/alerts", c.ListAlerts)
	group.POST("/alerts/:id/resolve", c.ResolveAlert)
	group.GET("/notifications", c.ListNotifications)
	group.GET("/health", c.GetHealth)

	e.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
}

// openCORS allows any origin with standard headers; preflight requests get
// an empty 200.
func openCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		h := ctx.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowHeaders, "authorization, x-client-info, apikey, content-type, x-user-id")
		h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		if ctx.Request().Method == http.MethodOptions {
			return ctx.NoContent(http.StatusOK)
		}
		return next(ctx)
	}
}

// HandleError logs err and writes a diagnostic JSON error response.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	c.log.Error(message, logger.Error(err))
	return ctx.JSON(code, map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}

// requestUserID extracts the owner identity the surrounding application's
// auth layer supplies, via header or query parameter.
func requestUserID(ctx echo.Context) string {
	if id := ctx.Request().Header.Get("X-User-ID"); id != "" {
		return id
	}
	return ctx.QueryParam("user_id")
}

// GetHealth reports liveness.
func (c *Controller) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
