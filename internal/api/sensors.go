package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSensors returns all sensors owned by the requesting user.
func (c *Controller) ListSensors(ctx echo.Context) error {
	userID := requestUserID(ctx)
	if userID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	sensors, err := c.sensors.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list sensors", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"sensors": sensors,
		"count":   len(sensors),
	})
}
