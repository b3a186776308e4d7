package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/datastore/repository"
)

const maxAlertLimit = 200

// ListAlerts returns the requesting user's alerts, optionally filtered on
// the resolved flag.
func (c *Controller) ListAlerts(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	filter := repository.AlertFilter{UserID: userID, Limit: 50}
	if resolvedParam := ctx.QueryParam("resolved"); resolvedParam != "" {
		v := resolvedParam == "true"
		filter.Resolved = &v
	}
	if sensorParam := ctx.QueryParam("sensor_id"); sensorParam != "" {
		v, err := strconv.ParseUint(sensorParam, 10, 64)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid sensor_id"})
		}
		filter.SensorID = uint(v)
	}
	if limitParam := ctx.QueryParam("limit"); limitParam != "" {
		v, err := strconv.Atoi(limitParam)
		if err == nil && v > 0 {
			filter.Limit = min(v, maxAlertLimit)
		}
	}

	alerts, err := c.alerts.List(ctx.Request().Context(), filter)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list alerts", http.StatusInternalServerError)
	}

	open, err := c.alerts.CountOpen(ctx.Request().Context(), userID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to count open alerts", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"alerts": alerts,
		"open":   open,
	})
}

// ResolveAlert marks one of the requesting user's alerts as resolved. This
// is the only resolution path; the evaluator never closes alerts on its
// own.
func (c *Controller) ResolveAlert(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid alert ID"})
	}

	if err := c.alerts.Resolve(ctx.Request().Context(), userID, uint(id)); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Alert not found"})
		}
		return c.HandleError(ctx, err, "Failed to resolve alert", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"id": id, "is_resolved": true})
}
