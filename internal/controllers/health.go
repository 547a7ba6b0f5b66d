package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Check probes one backing service.
type Check func(ctx context.Context) error

type HealthController struct {
	checks map[string]Check
	log    log.FieldLogger
}

func NewHealthController(checks map[string]Check, l log.FieldLogger) *HealthController {
	return &HealthController{checks: checks, log: l}
}

func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.WithError(err).WithField("check", name).Warn("health check failed")
			report[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "up"
	}
	c.JSON(status, report)
}
