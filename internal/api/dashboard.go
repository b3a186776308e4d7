package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/dashboard"
	"github.com/verdantlab/gardensense/internal/logger"
)

// GetDashboard returns per-metric summaries for the owner's readings within
// the requested window preset.
func (c *Controller) GetDashboard(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	windowParam := ctx.QueryParam("window")
	if windowParam == "" {
		windowParam = string(dashboard.WindowDay)
	}
	window, err := dashboard.ParseWindow(windowParam)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var sensorID uint
	if deviceParam := ctx.QueryParam("sensor_id"); deviceParam != "" {
		v, err := strconv.ParseUint(deviceParam, 10, 64)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid sensor_id"})
		}
		sensorID = uint(v)
	}

	summaries, err := c.aggregator.ComputeDashboard(ctx.Request().Context(), userID, sensorID, window)
	if err != nil {
		c.log.Error("dashboard aggregation failed",
			logger.String("user_id", userID), logger.Error(err))
		return c.HandleError(ctx, err, "Failed to compute dashboard", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"window":  string(window),
		"metrics": summaries,
	})
}
