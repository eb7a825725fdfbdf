package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/app/observability/metrics"
)

// Handler serves the trip wizard submissions and the admin route CRUD.
type Handler struct {
	logger *zap.Logger
	repo   Repository
}

func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// HandleCreate accepts a wizard submission from the public site.
func (h *Handler) HandleCreate(c *gin.Context) {
	var route models.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route payload"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), route)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	metrics.RecordRouteSubmission(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleList(c *gin.Context) {
	filter := models.RouteFilter{
		Status: c.Query("status"),
		Email:  c.Query("email"),
		Region: c.Query("region"),
	}

	routes, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *Handler) HandleGet(c *gin.Context) {
	route, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	var update models.RouteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	route, err := h.repo.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
