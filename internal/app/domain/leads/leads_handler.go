package leads

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

func (h *Handler) HandleCreate(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead payload"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), lead)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleList(c *gin.Context) {
	filter := models.LeadFilter{
		Stage:       c.Query("stage"),
		Destination: c.Query("destination"),
	}

	leads, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *Handler) HandleGet(c *gin.Context) {
	lead, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	var update models.LeadUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	lead, err := h.repo.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
