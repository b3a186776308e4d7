package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verdantlab/gardensense/internal/ingest"
)

// ingestResponse is the success body for one processed message.
type ingestResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DeviceID   string `json:"device_id"`
	SensorType string `json:"sensor_type,omitempty"`
}

// HandleIngest accepts a single-sensor or batched reading payload, persists
// it and evaluates thresholds. Validation failures return 400 with no side
// effects; persistence failures return 500 and the device retries the whole
// request.
func (c *Controller) HandleIngest(ctx echo.Context) error {
	var payload ingest.ReadingPayload
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	result, err := c.pipeline.Ingest(ctx.Request().Context(), &payload, "http")
	if err != nil {
		if errors.Is(err, ingest.ErrValidation) {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.HandleError(ctx, err, "Failed to process sensor data", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, ingestResponse{
		Success:    true,
		Message:    result.Message,
		DeviceID:   result.DeviceID,
		SensorType: result.SensorType,
	})
}
