package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/store"
)

func (h *Handler) GetNotifications(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	notifications, err := h.store.Notifications.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("load notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	count, err := h.store.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("count notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	err = h.store.Notifications.MarkRead(c.Request.Context(), notificationID, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if err != nil {
		h.logger.Error("mark notification read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
