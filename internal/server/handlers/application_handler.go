package handlers

import (
	"net/http"

	"rotape-service/internal/ports/models"
	"rotape-service/internal/server/middleware"
	"rotape-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appService      *service.ApplicationService
	nicknameService *service.NicknameService
}

func NewApplicationHandler(appService *service.ApplicationService, nicknameService *service.NicknameService) *ApplicationHandler {
	return &ApplicationHandler{
		appService:      appService,
		nicknameService: nicknameService,
	}
}

// @Summary Apply to an event
// @Description Create a pending admission record for the caller
// @Tags applications
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param request body models.ApplyRequest true "Application"
// @Success 201 {object} models.Application
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appService.Apply(c.Request.Context(), eventID, user.ID, req.Gender)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// @Summary Get my application
// @Description Return the caller's admission record for an event
// @Tags applications
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} models.Application
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/application [get]
func (h *ApplicationHandler) GetMine(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	app, err := h.appService.Get(c.Request.Context(), eventID, user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// @Summary Request a nickname
// @Description Assign the caller's pseudonym for an event; idempotent
// @Tags applications
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/application/nickname [post]
func (h *ApplicationHandler) AssignNickname(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	app, err := h.appService.Get(c.Request.Context(), eventID, user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	nickname, err := h.nicknameService.Assign(c.Request.Context(), app.AppKey, eventID, app.Gender)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nickname": nickname})
}

// @Summary Review an application
// @Description Organizer status transition: approve, reject, or mark paid
// @Tags applications
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param app_key path string true "Application key"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.Application
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id}/applications/{app_key}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appService.UpdateStatus(c.Request.Context(), eventID, c.Param("app_key"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
