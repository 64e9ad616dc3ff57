package handlers

import (
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/chordgen-api/internal/engine"
	"github.com/Conceptual-Machines/chordgen-api/internal/logger"
	"github.com/Conceptual-Machines/chordgen-api/internal/models"
	"github.com/Conceptual-Machines/chordgen-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type TheoryHandler struct{}

func NewTheoryHandler() *TheoryHandler {
	return &TheoryHandler{}
}

// Catalog lists the identifiers accepted by the progression endpoint.
func (h *TheoryHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, models.TheoryCatalog{
		Keys:       theory.PitchClassNames(),
		Scales:     theory.ScaleNames(),
		Cadences:   engine.CadenceNames(),
		Voicings:   engine.VoicingNames(),
		Inversions: engine.InversionNames(),
		Playback:   engine.PlaybackNames(),
	})
}

// Diatonic returns the chord on every degree of ?key= and ?scale=.
func (h *TheoryHandler) Diatonic(c *gin.Context) {
	sevenths, err := strconv.ParseBool(c.DefaultQuery("sevenths", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EngineResponse{
			OK:      false,
			Error:   errorInvalidRequest,
			Message: "sevenths must be a boolean",
		})
		return
	}

	table, err := engine.DiatonicTable(c.DefaultQuery("key", defaultKey), c.DefaultQuery("scale", defaultScale), sevenths)
	if err != nil {
		logger.Warn("Invalid diatonic table request", withError(logger.WithContext(c), err))
		c.JSON(http.StatusBadRequest, engine.AssembleError(err))
		return
	}

	c.JSON(http.StatusOK, table)
}
