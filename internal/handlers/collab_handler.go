package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
)

// CollabHandler serves comments and reactions. Every route first runs the
// event through the visibility check; CollabService does no authorization.
type CollabHandler struct {
	collab     *services.CollabService
	visibility *services.VisibilityService
}

func NewCollabHandler(collab *services.CollabService, visibility *services.VisibilityService) *CollabHandler {
	return &CollabHandler{
		collab:     collab,
		visibility: visibility,
	}
}

// ListComments handles GET /api/events/:id/comments
func (h *CollabHandler) ListComments(c *gin.Context) {
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

	if c.Query("threaded") == "true" {
		threads, err := h.collab.ListCommentThreads(eventID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", threads)
		return
	}

	comments, err := h.collab.ListComments(eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", comments)
}

type addCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int   `json:"parent_id"`
}

// AddComment handles POST /api/events/:id/comments
func (h *CollabHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if _, err := h.visibility.VisibleEvent(userID, eventID); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.collab.AddComment(userID, eventID, req.Content, req.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "comment added", comment)
}

// ListReactions handles GET /api/events/:id/reactions
func (h *CollabHandler) ListReactions(c *gin.Context) {
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

	reactions, err := h.collab.ListReactions(eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", reactions)
}

type upsertReactionRequest struct {
	Type string `json:"type" binding:"required"`
}

// UpsertReaction handles POST /api/events/:id/reactions
func (h *CollabHandler) UpsertReaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req upsertReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	if _, err := h.visibility.VisibleEvent(userID, eventID); err != nil {
		response.Error(c, err)
		return
	}

	reaction, err := h.collab.UpsertReaction(userID, eventID, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "reaction saved", reaction)
}

// RemoveReaction handles DELETE /api/events/:id/reactions
func (h *CollabHandler) RemoveReaction(c *gin.Context) {
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

	if err := h.collab.RemoveReaction(userID, eventID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "reaction removed", nil)
}
