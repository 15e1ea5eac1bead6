package handlers

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"rotape-service/internal/ports/models"
	"rotape-service/internal/server/middleware"
	"rotape-service/internal/server/service"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
)

// preferencePublisher is satisfied by *kafka.Writer
type preferencePublisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type PreferenceHandler struct {
	prefService *service.PreferenceService
	publisher   preferencePublisher
}

// NewPreferenceHandler wires the submission endpoint. publisher may be nil,
// in which case no Kafka message is emitted.
func NewPreferenceHandler(prefService *service.PreferenceService, publisher preferencePublisher) *PreferenceHandler {
	return &PreferenceHandler{
		prefService: prefService,
		publisher:   publisher,
	}
}

// @Summary Submit ranked preferences
// @Description Record the caller's ranked choices for an ended event
// @Tags preferences
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param request body models.SubmitPreferenceRequest true "Ranked choices"
// @Success 200 {object} models.Preference
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/preferences [post]
func (h *PreferenceHandler) Submit(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req models.SubmitPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.prefService.Submit(c.Request.Context(), eventID, user.ID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.publish(c.Request.Context(), eventID, user.ID)
	c.JSON(http.StatusOK, pref)
}

// @Summary Get my preference
// @Description Return the caller's submitted ranking for an event
// @Tags preferences
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} models.Preference
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/preferences/me [get]
func (h *PreferenceHandler) GetMine(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	pref, err := h.prefService.Get(c.Request.Context(), eventID, user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pref)
}

// publish emits a preference.submitted message keyed by voter id. The
// submission is already persisted; a publish failure only delays the
// worker's cache refresh, so it is logged and not surfaced.
func (h *PreferenceHandler) publish(ctx context.Context, eventID, voterID uint) {
	if h.publisher == nil {
		return
	}

	payload, err := json.Marshal(models.PreferenceMessage{EventID: eventID, VoterID: voterID})
	if err != nil {
		slog.Warn("marshalling preference message failed", "error", err)
		return
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(voterID))

	if err := h.publisher.WriteMessages(ctx, kafka.Message{Key: key, Value: payload}); err != nil {
		slog.Warn("publishing preference message failed", "event_id", eventID, "error", err)
	}
}

// eventIDParam parses the :event_id path segment, writing a 400 on failure
func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return uint(id), true
}
