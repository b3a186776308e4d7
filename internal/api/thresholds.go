package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/datastore/entities"
	"github.com/verdantlab/gardensense/internal/datastore/repository"
)

// ListThresholds returns all thresholds the requesting user has configured.
func (c *Controller) ListThresholds(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	thresholds, err := c.thresholds.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list thresholds", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"thresholds": thresholds,
		"count":      len(thresholds),
	})
}

// UpsertThreshold creates or replaces the threshold for a
// (user, sensor, sensor type) key.
func (c *Controller) UpsertThreshold(ctx echo.Context) error {
	var threshold entities.Threshold
	if err := ctx.Bind(&threshold); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if userID := requestUserID(ctx); userID != "" {
		threshold.UserID = userID
	}
	if threshold.UserID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	if threshold.SensorID == 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "sensor_id is required"})
	}
	if _, ok := entities.ParseSensorType(string(threshold.SensorType)); !ok {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid sensor_type"})
	}

	if err := c.thresholds.Upsert(ctx.Request().Context(), &threshold); err != nil {
		return c.HandleError(ctx, err, "Failed to save threshold", http.StatusInternalServerError)
	}

	// Drop the stale cached value so the evaluator sees the edit promptly.
	if c.invalidator != nil {
		c.invalidator.InvalidateThreshold(threshold.UserID, threshold.SensorID, threshold.SensorType)
	}

	return ctx.JSON(http.StatusOK, threshold)
}

// DeleteThreshold deletes one of the requesting user's thresholds.
func (c *Controller) DeleteThreshold(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid threshold ID"})
	}

	if err := c.thresholds.Delete(ctx.Request().Context(), userID, uint(id)); err != nil {
		if errors.Is(err, repository.ErrThresholdNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Threshold not found"})
		}
		return c.HandleError(ctx, err, "Failed to delete threshold", http.StatusInternalServerError)
	}

	return ctx.NoContent(http.StatusNoContent)
}
