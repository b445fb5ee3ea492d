package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAgentProfile returns what the user's agent has learned about them.
func (h *Handler) GetAgentProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	profile, err := h.store.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("load agent profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load agent profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// TriggerProfileUpdate queues a relearn and returns immediately.
func (h *Handler) TriggerProfileUpdate(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	h.submitRelearn(userID)
	c.JSON(http.StatusOK, gin.H{"status": "Profile update triggered"})
}
