package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
)

// CalendarHandler serves the external calendar records.
type CalendarHandler struct {
	calendars *services.CalendarService
}

func NewCalendarHandler(calendars *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendars: calendars}
}

// Add handles POST /api/calendars
func (h *CalendarHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	cal, err := h.calendars.Add(userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "calendar linked", cal)
}

// List handles GET /api/calendars
func (h *CalendarHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	calendars, err := h.calendars.ListForUser(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", calendars)
}
