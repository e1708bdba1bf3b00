package handlers

import (
	"net/http"

	"hoardify/models"
	"hoardify/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the users screen.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// ListUsersHandler handles GET /api/admin/users?role=&search=.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.UserService.ListUsers(c.Request.Context(), c.Query("role"), c.Query("search"))
	if err != nil {
		respondError(c, "Failed to fetch users", err)
		return
	}
	respondPage(c, users)
}

// GetUserByIDHandler handles GET /api/admin/users/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateUserHandler handles PATCH /api/admin/users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	usr, err := h.UserService.UpdateUser(c.Request.Context(), adminID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// SetDisabledHandler handles PUT /api/admin/users/:id/disabled.
func (h *UserHandler) SetDisabledHandler(c *gin.Context) {
	var req models.UserDisableRequest
	if !bindJSON(c, &req) {
		return
	}
	usr, err := h.UserService.SetDisabled(c.Request.Context(), adminID(c), c.Param("id"), req.Disabled)
	if err != nil {
		respondError(c, "Failed to change account state", err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/admin/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.UserService.DeleteUser(c.Request.Context(), adminID(c), id); err != nil {
		respondError(c, "Failed to delete user", err)
		return
	}
	getLogger(c).Info("User deleted", zap.String("id", id), zap.String("adminID", adminID(c)))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
