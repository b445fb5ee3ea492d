package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jupiter/matching"
	"jupiter/store"
)

// TriggerMatching runs the acting user's agent against every candidate. The
// pass can take a while (one model call per candidate), so it runs on the
// request context with no extra timeout.
func (h *Handler) TriggerMatching(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	status, err := h.engine.Run(c.Request.Context(), userID)
	if errors.Is(err, matching.ErrInsufficientSignal) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Your agent doesn't know enough about you yet. Chat more first!",
		})
		return
	}
	if err != nil {
		h.logger.Error("matching pass failed",
			zap.String("user", userID.Hex()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Matching failed"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetMatches lists the caller's match records with the other user's public
// profile attached.
func (h *Handler) GetMatches(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	records, err := h.store.Matches.ListForUser(ctx, userID)
	if err != nil {
		h.logger.Error("load matches failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	for i := range records {
		otherID, ok := records[i].OtherUserID(userID)
		if !ok {
			continue
		}
		other, err := h.store.Users.GetByID(ctx, otherID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			h.logger.Error("load match partner failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
			return
		}
		pub := other.Public()
		records[i].OtherUser = &pub
	}

	c.JSON(http.StatusOK, records)
}
