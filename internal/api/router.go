// Package api wires the REST and WebSocket routes.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/auth"
	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/friends"
	"github.com/healix-app/healix-be/internal/history"
	"github.com/healix-app/healix-be/internal/news"
	"github.com/healix-app/healix-be/internal/workout"
	"github.com/healix-app/healix-be/internal/ws"
)

// Services are the dependencies of the router
type Services struct {
	Users          *auth.Service
	Issuer         *auth.Issuer
	Engine         MessageProcessor
	History        history.Store
	HistoryLimit   int
	Catalog        *diagnosis.Catalog
	Workouts       *workout.Service
	Friends        *friends.Service
	News           *news.Service
	AllowedOrigins []string
}

// Routes lists every route for the startup log
var Routes = []string{
	"POST   /api/auth/register",
	"POST   /api/auth/login",
	"GET    /api/auth/me",
	"POST   /api/chat/messages",
	"GET    /api/history",
	"GET    /api/history/:id",
	"GET    /api/conditions",
	"GET    /api/conditions/:id",
	"POST   /api/workouts/start",
	"POST   /api/workouts/end",
	"POST   /api/workouts/cancel",
	"GET    /api/workouts",
	"GET    /api/workouts/active",
	"POST   /api/competitions",
	"GET    /api/competitions",
	"GET    /api/friends",
	"POST   /api/friends",
	"PUT    /api/friends/:id/accept",
	"DELETE /api/friends/:id",
	"GET    /api/news",
	"WS     /ws/chat",
	"GET    /health",
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(s Services) *gin.Engine {
	authHandler := NewAuthHandler(s.Users, s.Issuer)
	chatHandler := NewChatHandler(s.Engine)
	historyHandler := NewHistoryHandler(s.History, s.HistoryLimit)
	conditionHandler := NewConditionHandler(s.Catalog)
	workoutHandler := NewWorkoutHandler(s.Workouts)
	friendHandler := NewFriendHandler(s.Friends)
	newsHandler := NewNewsHandler(s.News)
	wsHandler := ws.NewChatHandler(s.Engine, s.Issuer)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(s.AllowedOrigins...))
	router.Use(middleware.SecurityHeaders())

	// ~100 req/min per IP
	router.Use(middleware.PerIP(100.0/60.0, 200))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"catalog_version": s.Catalog.Version(),
			"time":            time.Now().Unix(),
		})
	})

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.JWTAuth(s.Issuer), authHandler.Me)
	}

	// Reference data, public
	router.GET("/api/conditions", conditionHandler.ListConditions)
	router.GET("/api/conditions/:id", conditionHandler.GetCondition)
	router.GET("/api/news", newsHandler.ListArticles)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(s.Issuer))
	protected.Use(middleware.PerUser(500.0/3600.0, 100)) // 500/hour per user
	{
		protected.POST("/chat/messages", chatHandler.SendMessage)

		protected.GET("/history", historyHandler.ListIssues)
		protected.GET("/history/:id", historyHandler.GetIssue)

		protected.POST("/workouts/start", workoutHandler.StartWorkout)
		protected.POST("/workouts/end", workoutHandler.EndWorkout)
		protected.POST("/workouts/cancel", workoutHandler.CancelWorkout)
		protected.GET("/workouts", workoutHandler.ListWorkouts)
		protected.GET("/workouts/active", workoutHandler.GetActiveWorkout)

		protected.POST("/competitions", workoutHandler.CreateCompetition)
		protected.GET("/competitions", workoutHandler.ListCompetitions)

		protected.GET("/friends", friendHandler.ListFriends)
		protected.POST("/friends", friendHandler.AddFriend)
		protected.PUT("/friends/:id/accept", friendHandler.AcceptFriend)
		protected.DELETE("/friends/:id", friendHandler.RemoveFriend)
	}

	// Authenticated by query token or bearer header inside the handler
	router.GET("/ws/chat", wsHandler.HandleChat)

	return router
}
