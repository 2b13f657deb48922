package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"timesketch/internal/models"
	"timesketch/internal/service"

	"github.com/gin-gonic/gin"
)

// sketchID parses the :id path parameter and writes a 400 on failure.
func (h *Handler) sketchID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sketch id"})
		return 0, false
	}
	return id, true
}

// writeSketchError maps service errors to HTTP statuses.
func (h *Handler) writeSketchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSketchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sketch not found"})
	case errors.Is(err, service.ErrViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
	default:
		if h.log != nil {
			h.log.Errorw("sketch_request_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) listSketches(c *gin.Context) {
	sketches, err := h.services.Sketches.List(c.Request.Context())
	if err != nil {
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": sketches})
}

func (h *Handler) getSketch(c *gin.Context) {
	id, ok := h.sketchID(c)
	if !ok {
		return
	}

	sketch, err := h.services.Sketches.Get(c.Request.Context(), id)
	if err != nil {
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, sketch)
}

func (h *Handler) listViews(c *gin.Context) {
	id, ok := h.sketchID(c)
	if !ok {
		return
	}

	views, err := h.services.Sketches.Views(c.Request.Context(), id)
	if err != nil {
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": views})
}

func (h *Handler) getView(c *gin.Context) {
	id, ok := h.sketchID(c)
	if !ok {
		return
	}
	viewID, err := strconv.Atoi(c.Param("viewId"))
	if err != nil || viewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view id"})
		return
	}

	view, err := h.services.Sketches.View(c.Request.Context(), id, viewID)
	if err != nil {
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type saveViewRequest struct {
	Name        string `json:"name" binding:"required"`
	QueryString string `json:"query_string"`
	QueryDSL    string `json:"query_dsl"`
	QueryFilter string `json:"query_filter"`
}

func (h *Handler) saveView(c *gin.Context) {
	id, ok := h.sketchID(c)
	if !ok {
		return
	}

	var input saveViewRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	userID := c.GetInt(userCtxKey)
	viewID, err := h.services.Sketches.SaveView(c.Request.Context(), models.View{
		Name:        input.Name,
		SketchID:    id,
		UserID:      userID,
		QueryString: input.QueryString,
		QueryDSL:    input.QueryDSL,
		QueryFilter: input.QueryFilter,
	})
	if err != nil {
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": viewID})
}
