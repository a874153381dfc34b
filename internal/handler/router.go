package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/notetoc/internal/middleware"
	"github.com/xxxsen/notetoc/internal/pkg/response"
)

type RouterDeps struct {
	Webhooks  *WebhookHandler
	OAuth     *OAuthHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"ok": true})
	})
	api.GET("/webhook", deps.Webhooks.Receive)
	api.POST("/webhook", deps.Webhooks.Receive)
	api.GET("/oauth/start", deps.OAuth.Start)
	api.GET("/oauth/callback", deps.OAuth.Callback)

	authGroup := api.Group("")
	authGroup.Use(middleware.SessionAuth(deps.JWTSecret))
	authGroup.GET("/me", deps.OAuth.Me)
	authGroup.GET("/webhook/history", deps.Webhooks.History)
}
