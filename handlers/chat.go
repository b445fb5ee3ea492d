package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/models"
)

const (
	// chatHistoryWindow bounds how much history the companion sees per reply.
	chatHistoryWindow = 50
	// relearnInterval triggers a background profile relearn every N messages.
	relearnInterval = 5
	// relearnHistoryWindow is how much conversation the learner re-reads.
	relearnHistoryWindow = 30

	fallbackReply = "Sorry, I'm having trouble thinking right now. Could you say that again in a moment?"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) GetChatHistory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	messages, err := h.store.Conversations.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("load chat history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage handles one turn of the user's conversation with their agent.
// The reply degrades to a canned apology when the model is unreachable; the
// user's message is still persisted. Profile re-learning happens off the
// request path.
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
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

	history, err := h.store.Conversations.Recent(ctx, userID, chatHistoryWindow)
	if err != nil {
		h.logger.Error("load conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return
	}

	profile, err := h.store.Profiles.Get(ctx, userID)
	if err != nil {
		h.logger.Error("load agent profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load agent profile"})
		return
	}

	userMsg, err := h.store.Conversations.Append(ctx, userID, models.RoleUser, content)
	if err != nil {
		h.logger.Error("save message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	reply, err := h.companion.Reply(ctx, profile, history, content)
	if err != nil {
		h.logger.Error("companion reply failed",
			zap.String("user", userID.Hex()),
			zap.Error(err),
		)
		reply = fallbackReply
	}

	agentMsg, err := h.store.Conversations.Append(ctx, userID, models.RoleAssistant, reply)
	if err != nil {
		h.logger.Error("save reply failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reply"})
		return
	}

	if count, err := h.store.Conversations.Count(ctx, userID); err == nil && count%relearnInterval == 0 {
		h.submitRelearn(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"userMessage":  userMsg,
		"agentMessage": agentMsg,
	})
}

// submitRelearn queues a background profile relearn for the user. Failures
// are logged by the pool and never reach the user; the profile row is only
// replaced wholesale, never partially.
func (h *Handler) submitRelearn(userID primitive.ObjectID) {
	h.pool.Submit("profile-relearn", func(ctx context.Context) error {
		history, err := h.store.Conversations.Recent(ctx, userID, relearnHistoryWindow)
		if err != nil {
			return err
		}

		current, err := h.store.Profiles.Get(ctx, userID)
		if err != nil {
			return err
		}

		updated, err := h.learner.Learn(ctx, current, history)
		if err != nil {
			return err
		}

		return h.store.Profiles.Put(ctx, updated)
	})
}
