package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/matching"
)

type SendDirectMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetDirectMessages returns the thread for a confirmed match the caller is
// part of. The denial is identical for a missing, unconfirmed or foreign
// match.
func (h *Handler) GetDirectMessages(c *gin.Context) {
	matchID, err := primitive.ObjectIDFromHex(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := matching.AuthorizeThread(ctx, h.store.Matches, matchID, userID); err != nil {
		if errors.Is(err, matching.ErrNotAuthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this conversation"})
			return
		}
		h.logger.Error("authorize thread failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify access"})
		return
	}

	messages, err := h.store.DirectMessages.ListForMatch(ctx, matchID)
	if err != nil {
		h.logger.Error("load direct messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *Handler) SendDirectMessage(c *gin.Context) {
	matchID, err := primitive.ObjectIDFromHex(c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	var req SendDirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := matching.AuthorizeThread(ctx, h.store.Matches, matchID, userID); err != nil {
		if errors.Is(err, matching.ErrNotAuthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this conversation"})
			return
		}
		h.logger.Error("authorize thread failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify access"})
		return
	}

	message, err := h.store.DirectMessages.Create(ctx, matchID, userID, content)
	if err != nil {
		h.logger.Error("send direct message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}
