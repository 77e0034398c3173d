package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/middleware/auth"
	"github.com/duetcal/duetcal-api/internal/response"
)

// currentUserID pulls the authenticated user's ID from the context. A missing
// ID means the route was registered outside the auth group, which is a wiring
// bug surfaced as 401 rather than a panic.
func currentUserID(c *gin.Context) (int, bool) {
	id, ok := auth.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return 0, false
	}
	return id, true
}

// paramInt parses a numeric path parameter, answering 400 on garbage.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.BadRequest(c, name+" must be a number")
		return 0, false
	}
	return v, true
}

// queryDateRange reads the optional start_date/end_date query pair. Both or
// neither must be present.
func queryDateRange(c *gin.Context) (*event.DateRange, bool) {
	start := c.Query("start_date")
	end := c.Query("end_date")

	if start == "" && end == "" {
		return nil, true
	}
	if start == "" || end == "" {
		response.BadRequest(c, "start_date and end_date must be provided together")
		return nil, false
	}

	startDate, err := event.ParseDate(start)
	if err != nil {
		response.BadRequest(c, "start_date must be YYYY-MM-DD")
		return nil, false
	}
	endDate, err := event.ParseDate(end)
	if err != nil {
		response.BadRequest(c, "end_date must be YYYY-MM-DD")
		return nil, false
	}

	return &event.DateRange{Start: startDate, End: endDate}, true
}
