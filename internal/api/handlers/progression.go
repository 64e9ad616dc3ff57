package handlers

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/chordgen-api/internal/engine"
	"github.com/Conceptual-Machines/chordgen-api/internal/logger"
	"github.com/Conceptual-Machines/chordgen-api/internal/metrics"
	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/gin-gonic/gin"
)

type ProgressionHandler struct {
	engine        *engine.Engine
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewProgressionHandler(e *engine.Engine, cloudwatch *metrics.Client) *ProgressionHandler {
	return &ProgressionHandler{
		engine:        e,
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

// Generate runs the progression engine on the request body.
// Engine failures are returned as 400 with the structured failure body.
func (h *ProgressionHandler) Generate(c *gin.Context) {
	var req models.EngineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid progression request body", withError(logger.WithContext(c), err))
		c.JSON(http.StatusBadRequest, models.EngineResponse{
			OK:      false,
			Error:   errorInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	resp := h.engine.Generate(req)
	duration := time.Since(start)

	fields := logger.WithContext(c)
	fields["key"] = req.Key
	fields["scale"] = req.Scale
	fields["bars"] = req.Bars

	h.sentryMetrics.RecordGeneration(c.Request.Context(), req.Bars, duration, resp.Error)
	h.cloudwatch.RecordGeneration(req.Bars, duration, resp.Error)

	if !resp.OK {
		fields["error_kind"] = resp.Error
		status := http.StatusBadRequest
		if resp.Error == string(engine.KindInternal) {
			status = http.StatusInternalServerError
			logger.Error("Progression generation failed", nil, fields)
		} else {
			logger.Warn("Progression request rejected: "+resp.Message, fields)
		}
		c.JSON(status, resp)
		return
	}

	fields["seed"] = *resp.Seed
	if req.Seed == nil {
		logger.Debug("Seed generated for progression request", logger.Fields{
			"request_id": fields["request_id"],
			"seed":       *resp.Seed,
		})
	}
	logger.LogProgressionRequest(c.Request.Context(), duration, fields)

	c.JSON(http.StatusOK, resp)
}

func withError(fields logger.Fields, err error) logger.Fields {
	fields["error"] = err.Error()
	return fields
}
