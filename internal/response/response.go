package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// Response is the standard success envelope of the API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the standard error envelope of the API
type ErrorBody struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error maps a domain error to its transport status: validation 400, not
// found 404, forbidden 403, conflict 409; anything else is an infrastructure
// failure reported as 500 without leaking internals.
func Error(c *gin.Context, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorBody{
			Success: false,
			Error:   "validation failed",
			Code:    http.StatusBadRequest,
			Fields:  ve.Fields,
		})
		return
	}

	var nf *common.NotFoundError
	if errors.As(err, &nf) {
		fail(c, http.StatusNotFound, nf.Error())
		return
	}

	var fe *common.ForbiddenError
	if errors.As(err, &fe) {
		fail(c, http.StatusForbidden, fe.Error())
		return
	}

	var ce *common.ConflictError
	if errors.As(err, &ce) {
		fail(c, http.StatusConflict, ce.Error())
		return
	}

	logger.HTTP().Error("request failed", "path", c.FullPath(), "error", err)
	fail(c, http.StatusInternalServerError, "internal server error")
}

// BadRequest sends a 400 with a custom message, used for malformed payloads
// and path parameters before any domain logic runs.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401
func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, message)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Success: false,
		Error:   message,
		Code:    status,
	})
}
