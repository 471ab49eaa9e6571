package router

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"roseboard/backend/internal/handler"
	"roseboard/backend/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Message *handler.MessageHandler
	Profile *handler.ProfileHandler
	Task    *handler.TaskHandler
}

func New(
	tokens middleware.TokenParser,
	handlers Handlers,
	corsOrigins []string,
	logger *log.Logger,
) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Logger(logger), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.GET("/eod-message", handlers.Message.GetEODMessage)

	auth := api.Group("/auth")
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)

	me := api.Group("/me")
	me.Use(middleware.Auth(tokens))
	me.GET("", handlers.Profile.Get)
	me.PUT("/settings", handlers.Profile.UpdateSettings)
	me.PUT("/notes", handlers.Profile.UpdateNotes)
	me.POST("/focus", handlers.Profile.AddFocus)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.Auth(tokens))
	tasks.GET("", handlers.Task.List)
	tasks.POST("", handlers.Task.Create)
	tasks.GET("/stream", handlers.Task.Stream)
	tasks.PATCH("/:id", handlers.Task.Update)
	tasks.DELETE("/:id", handlers.Task.Delete)

	return engine
}
