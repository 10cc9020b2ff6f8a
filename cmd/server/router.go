package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/crocnet/internal/handlers"
	"github.com/thereayou/crocnet/internal/middleware"
)

type routeDeps struct {
	authH     *handlers.AuthHandler
	userH     *handlers.UserHandler
	wsH       *handlers.WebSocketHandler
	requireMW gin.HandlerFunc
	wsAuthMW  gin.HandlerFunc
	limitMW   gin.HandlerFunc
}

func APIEndpoints(r *gin.Engine, d routeDeps) {
	r.GET("/health", handlers.Health)

	users := r.Group("/users")
	{
		users.POST("/login", d.limitMW, d.authH.Login)
		users.POST("/register", d.limitMW, d.authH.Register)

		users.GET("/ws", d.wsAuthMW, d.wsH.HandleWebSocket)

		protected := users.Group("", d.requireMW)
		protected.GET("", d.userH.ListUsers)
		protected.POST("/logout", d.authH.Logout)
		protected.GET("/:id", d.userH.GetUser)
	}

	r.NoRoute(middleware.NotFound)
}
