package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
)

// EventHandler serves event CRUD, the calendar feeds and participant grants.
type EventHandler struct {
	events     *services.EventService
	visibility *services.VisibilityService
}

func NewEventHandler(events *services.EventService, visibility *services.VisibilityService) *EventHandler {
	return &EventHandler{
		events:     events,
		visibility: visibility,
	}
}

// ListOwn handles GET /api/events
func (h *EventHandler) ListOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	r, ok := queryDateRange(c)
	if !ok {
		return
	}

	events, err := h.visibility.ListOwnEvents(userID, r)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", events)
}

// ListShared handles GET /api/events/shared
func (h *EventHandler) ListShared(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	r, ok := queryDateRange(c)
	if !ok {
		return
	}

	events, err := h.visibility.ListSharedEvents(userID, r)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", events)
}

// Get handles GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	e, err := h.visibility.VisibleEvent(userID, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", e)
}

// Create handles POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	e, err := h.events.Create(userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "event created", e)
}

// Update handles PATCH /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	e, err := h.events.Update(userID, eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "event updated", e)
}

// Delete handles DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := h.events.Delete(userID, eventID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "event deleted", nil)
}

// ListParticipants handles GET /api/events/:id/participants
func (h *EventHandler) ListParticipants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if _, err := h.visibility.VisibleEvent(userID, eventID); err != nil {
		response.Error(c, err)
		return
	}

	participants, err := h.events.ListParticipants(eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", participants)
}

// AddParticipant handles POST /api/events/:id/participants
func (h *EventHandler) AddParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var grant services.ParticipantGrant
	if err := c.ShouldBindJSON(&grant); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	p, err := h.events.AddParticipant(userID, eventID, grant)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "participant granted", p)
}

// RemoveParticipant handles DELETE /api/events/:id/participants/:userId
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramInt(c, "userId")
	if !ok {
		return
	}

	if err := h.events.RemoveParticipant(userID, eventID, targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "participant removed", nil)
}

type setPermissionRequest struct {
	Permission string `json:"permission" binding:"required"`
}

// SetPermission handles PATCH /api/events/:id/participants/:userId
func (h *EventHandler) SetPermission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramInt(c, "userId")
	if !ok {
		return
	}

	var req setPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	p, err := h.events.SetPermission(userID, eventID, targetID, req.Permission)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "permission updated", p)
}
