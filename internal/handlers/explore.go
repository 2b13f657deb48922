package handlers

import (
	"errors"
	"net/http"

	"timesketch/internal/chips"
	"timesketch/internal/service"

	"github.com/gin-gonic/gin"
)

type exploreRequest struct {
	Query  string `json:"query"`
	Filter struct {
		Chips   []chips.Record `json:"chips"`
		Indices []string       `json:"indices"`
		Size    int            `json:"size"`
	} `json:"filter"`
}

func (h *Handler) explore(c *gin.Context) {
	id, ok := h.sketchID(c)
	if !ok {
		return
	}

	var input exploreRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Explore(c.Request.Context(), service.ExploreParams{
		SketchID: id,
		Query:    input.Query,
		Chips:    input.Filter.Chips,
		Indices:  input.Filter.Indices,
		Size:     input.Filter.Size,
	})
	if err != nil {
		if errors.Is(err, chips.ErrInvalidDateExpression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeSketchError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
