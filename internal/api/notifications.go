package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/notification"
)

// ListNotifications returns the newest entries from the in-app bell feed.
func (c *Controller) ListNotifications(ctx echo.Context) error {
	limit := 50
	if limitParam := ctx.QueryParam("limit"); limitParam != "" {
		if v, err := strconv.Atoi(limitParam); err == nil && v > 0 {
			limit = v
		}
	}

	items := []notification.Notification{}
	if c.notifications != nil {
		items = c.notifications.List(limit)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"notifications": items,
		"count":         len(items),
	})
}
