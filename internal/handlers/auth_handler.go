package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/domain/user"
	"github.com/duetcal/duetcal-api/internal/middleware/auth"
	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users     *services.UserService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthHandler(users *services.UserService, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	u, err := h.users.Register(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := auth.GenerateToken(u.ID, h.jwtSecret, h.jwtTTL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "account created", authResponse{Token: token, User: u.Public()})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	u, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	token, err := auth.GenerateToken(u.ID, h.jwtSecret, h.jwtTTL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "logged in", authResponse{Token: token, User: u.Public()})
}
