package handlers

import (
	"net/http"

	"hoardify/models"
	"hoardify/services/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler serves the signed-in administrator's settings screen.
type SettingsHandler struct {
	Accounts account.AccountService
}

func NewSettingsHandler(as account.AccountService) *SettingsHandler {
	return &SettingsHandler{Accounts: as}
}

// ProfileHandler handles GET /api/admin/settings/profile.
func (h *SettingsHandler) ProfileHandler(c *gin.Context) {
	p, err := h.Accounts.Profile(c.Request.Context(), adminID(c))
	if err != nil {
		respondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ChangePasswordHandler handles PUT /api/admin/settings/password.
func (h *SettingsHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.PasswordChangeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Accounts.ChangePassword(c.Request.Context(), adminID(c), req); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	getLogger(c).Info("Admin password changed", zap.String("adminID", adminID(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. Please sign in again."})
}
