package controllers

import (
	"net/http"
	"time"

	"eventcatalog/internal/delivery/http/helpers"
)

// HealthResponse is the data payload for GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthController struct {
	now func() time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{now: time.Now}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status OK and the server time"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "OK", Timestamp: c.now().UTC()})
}
