package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jupiter/agent"
	"jupiter/matching"
	"jupiter/middleware"
	"jupiter/store"
	"jupiter/worker"
)

const tokenLifetime = 24 * time.Hour

// Handler carries every dependency the HTTP layer needs. Nothing in here is
// global; main wires it once at startup.
type Handler struct {
	store     *store.Store
	companion *agent.Companion
	learner   *agent.Learner
	engine    *matching.Engine
	pool      *worker.Pool
	jwtSecret string
	logger    *zap.Logger
}

func New(st *store.Store, companion *agent.Companion, learner *agent.Learner, engine *matching.Engine, pool *worker.Pool, jwtSecret string, logger *zap.Logger) *Handler {
	return &Handler{
		store:     st,
		companion: companion,
		learner:   learner,
		engine:    engine,
		pool:      pool,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// currentUser pulls the authenticated user id set by the JWT middleware.
func (h *Handler) currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func (h *Handler) issueToken(userID primitive.ObjectID, username string) (string, error) {
	claims := &middleware.Claims{
		UserID:   userID.Hex(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
