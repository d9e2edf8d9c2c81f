package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "findash/internal/errors"
	"findash/internal/pagination"
	"findash/internal/services"
)

// UserHandler handles user listing and upload history requests.
type UserHandler struct {
	userService      services.UserServicer
	uploadLogService services.UploadLogServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, uploadLogService services.UploadLogServicer) *UserHandler {
	return &UserHandler{userService: userService, uploadLogService: uploadLogService}
}

// UserResponse represents a user in the response
type UserResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// UserListResponse represents the list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ListUsers returns every user
// @Summary     List users
// @Description List all users ordered by ID
// @Tags        users
// @Produce     json
// @Success     200 {object} UserListResponse "Users"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := UserListResponse{Users: make([]UserResponse, len(users))}
	for i, u := range users {
		resp.Users[i] = UserResponse{UserID: u.ID, Name: u.Name}
	}
	c.JSON(http.StatusOK, resp)
}

// ListUploads returns a user's upload history
// @Summary     List uploads
// @Description Get the paginated history of spreadsheet uploads for a user, newest first
// @Tags        users
// @Produce     json
// @Param       user_id   path  int true  "User ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.UploadLog] "Upload history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{user_id}/uploads [get]
func (h *UserHandler) ListUploads(c *gin.Context) {
	var uri userURI
	if err := bindURI(c, &uri); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	uploads, err := h.uploadLogService.GetUserUploads(c.Request.Context(), uri.UserID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}
