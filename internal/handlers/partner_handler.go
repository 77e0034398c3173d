package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
)

// PartnerHandler serves the partner-link lifecycle.
type PartnerHandler struct {
	partners *services.PartnerService
}

func NewPartnerHandler(partners *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// Invite handles POST /api/partners
func (h *PartnerHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	link, err := h.partners.Invite(userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "invitation sent", link)
}

type respondRequest struct {
	Status string `json:"status" binding:"required"`
}

// Respond handles POST /api/partners/:id/respond
func (h *PartnerHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	link, err := h.partners.Respond(userID, linkID, partner.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "request "+string(link.Status), link)
}

// ListPending handles GET /api/partners/requests
func (h *PartnerHandler) ListPending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.partners.PendingIncoming(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", requests)
}

// ListAccepted handles GET /api/partners
func (h *PartnerHandler) ListAccepted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	partners, err := h.partners.Accepted(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", partners)
}
