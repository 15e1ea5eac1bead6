package handlers

import (
	"net/http"

	"rotape-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// @Summary Resolve matches
// @Description Recompute pairings for an event from the stored preferences
// @Tags matches
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} models.MatchPair
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/matches/resolve [post]
func (h *MatchHandler) Resolve(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	pairs, err := h.matchService.Resolve(c.Request.Context(), eventID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pairs)
}

// @Summary List matches
// @Description Return the last resolved pairings for an event
// @Tags matches
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} models.MatchPair
// @Security BearerAuth
// @Router /events/{event_id}/matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	pairs, err := h.matchService.List(c.Request.Context(), eventID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pairs)
}

// @Summary Vote tally
// @Description Return the aggregated popularity report for an event
// @Tags matches
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} models.VoteTally
// @Security BearerAuth
// @Router /events/{event_id}/tally [get]
func (h *MatchHandler) Tally(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	tally, err := h.matchService.Tally(c.Request.Context(), eventID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tally)
}
