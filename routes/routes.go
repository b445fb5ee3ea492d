package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jupiter/handlers"
	"jupiter/middleware"
)

// Setup wires every endpoint onto a fresh engine. Auth endpoints are public;
// everything else under /v1 requires a bearer token.
func Setup(h *handlers.Handler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "jupiter", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewIPRateLimiter(60, time.Minute)

	v1 := r.Group("/v1")
	v1.Use(middleware.RateLimit(limiter))

	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)

	auth := v1.Group("")
	auth.Use(middleware.JWTAuth(jwtSecret))
	{
		auth.GET("/auth/profile", h.GetProfile)
		auth.PUT("/auth/profile", h.UpdateProfile)

		auth.GET("/chat", h.GetChatHistory)
		auth.POST("/chat", h.SendMessage)

		auth.GET("/agent/profile", h.GetAgentProfile)
		auth.POST("/agent/profile/update", h.TriggerProfileUpdate)

		auth.POST("/matching/trigger", h.TriggerMatching)
		auth.GET("/matches", h.GetMatches)

		auth.GET("/notifications", h.GetNotifications)
		auth.GET("/notifications/unread", h.GetUnreadCount)
		auth.POST("/notifications/:id/read", h.MarkNotificationRead)

		auth.GET("/messages/:matchId", h.GetDirectMessages)
		auth.POST("/messages/:matchId", h.SendDirectMessage)
	}

	return r
}
