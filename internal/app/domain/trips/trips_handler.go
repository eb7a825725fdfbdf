package trips

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
)

// Handler serves both default trips and trip templates. The public
// listing degrades to an empty list when the store is unconfigured so
// the marketing pages render without the feature.
type Handler struct {
	logger    *zap.Logger
	trips     DefaultTripRepository
	templates TemplateRepository
}

func NewHandler(trips DefaultTripRepository, templates TemplateRepository, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, trips: trips, templates: templates}
}

// HandlePublicTemplates lists curated, enabled templates for the
// marketing site.
func (h *Handler) HandlePublicTemplates(c *gin.Context) {
	enabled := true
	curated := true
	filter := models.TripFilter{
		Region:  c.Query("region"),
		Enabled: &enabled,
		Curated: &curated,
	}

	templates, err := h.templates.List(c.Request.Context(), filter)
	if err != nil {
		if common.IsConfiguration(err) {
			h.logger.Warn("Trip templates unavailable, store not configured")
			c.JSON(http.StatusOK, []models.TripTemplate{})
			return
		}
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func tripFilterFromQuery(c *gin.Context) models.TripFilter {
	return models.TripFilter{
		Region:  c.Query("region"),
		Enabled: common.BoolQuery(c, "enabled"),
		Curated: common.BoolQuery(c, "curated"),
	}
}

func (h *Handler) HandleListTrips(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), tripFilterFromQuery(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *Handler) HandleCreateTrip(c *gin.Context) {
	var trip models.DefaultTrip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip payload"})
		return
	}

	created, err := h.trips.Create(c.Request.Context(), trip)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleGetTrip(c *gin.Context) {
	trip, err := h.trips.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) HandleUpdateTrip(c *gin.Context) {
	var update models.DefaultTripUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	trip, err := h.trips.Update(c.Request.Context(), c.Param("id"), update, c.Query("region"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) HandleDeleteTrip(c *gin.Context) {
	if err := h.trips.Delete(c.Request.Context(), c.Param("id"), c.Query("region")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleListTemplates(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context(), tripFilterFromQuery(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handler) HandleCreateTemplate(c *gin.Context) {
	var tpl models.TripTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
		return
	}

	created, err := h.templates.Create(c.Request.Context(), tpl)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleGetTemplate(c *gin.Context) {
	tpl, err := h.templates.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if tpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) HandleUpdateTemplate(c *gin.Context) {
	var update models.TripTemplateUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	tpl, err := h.templates.Update(c.Request.Context(), c.Param("id"), update, c.Query("region"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) HandleDeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id"), c.Query("region")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
