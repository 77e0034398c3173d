package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/response"
	"github.com/duetcal/duetcal-api/internal/services"
	"github.com/duetcal/duetcal-api/internal/storage/objects"
)

const maxAvatarSize = 5 << 20 // 5 MiB

var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// UserHandler serves the authenticated user's profile. The avatar store may
// be nil when object storage is not configured.
type UserHandler struct {
	users   *services.UserService
	avatars *objects.AvatarStore
}

func NewUserHandler(users *services.UserService, avatars *objects.AvatarStore) *UserHandler {
	return &UserHandler{
		users:   users,
		avatars: avatars,
	}
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	u, err := h.users.GetByID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", u)
}

// UploadAvatar handles POST /api/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.avatars == nil {
		response.BadRequest(c, "avatar storage is not configured")
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file is required")
		return
	}
	if header.Size > maxAvatarSize {
		response.BadRequest(c, "avatar must be at most 5 MiB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedAvatarTypes[contentType] {
		response.BadRequest(c, "avatar must be a PNG, JPEG, WebP or GIF image")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	key, err := h.avatars.Upload(c.Request.Context(), userID, header.Filename, contentType, file, header.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.UpdateAvatar(userID, key); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "avatar updated", gin.H{"avatar": key})
}
