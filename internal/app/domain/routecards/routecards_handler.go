package routecards

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
)

type Handler struct {
	logger *zap.Logger
	repo   Repository
}

func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// HandlePublicList serves the enabled cards for the landing page,
// degrading to an empty list when the store is unconfigured.
func (h *Handler) HandlePublicList(c *gin.Context) {
	enabled := true
	cards, err := h.repo.List(c.Request.Context(), models.RouteCardFilter{Enabled: &enabled})
	if err != nil {
		if common.IsConfiguration(err) {
			h.logger.Warn("Route cards unavailable, store not configured")
			c.JSON(http.StatusOK, []models.RouteCard{})
			return
		}
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handler) HandleList(c *gin.Context) {
	filter := models.RouteCardFilter{Enabled: common.BoolQuery(c, "enabled")}
	cards, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handler) HandleCreate(c *gin.Context) {
	var card models.RouteCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route card payload"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), card)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleGet(c *gin.Context) {
	card, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "route card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	var update models.RouteCardUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	card, err := h.repo.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
