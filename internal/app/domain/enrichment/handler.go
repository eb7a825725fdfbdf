package enrichment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
)

type Handler struct {
	logger  *zap.Logger
	service *Service
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// HandleSync runs the activity sync job and returns its report. The body
// is optional; an empty body means default options.
func (h *Handler) HandleSync(c *gin.Context) {
	var opts SyncOptions
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sync options"})
		return
	}

	report, err := h.service.SyncCities(c.Request.Context(), opts)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
