package main

import (
	"net/http"

	"github.com/bankafrica/bankapp/internal/handler"
	"github.com/bankafrica/bankapp/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupRouter(
	log zerolog.Logger,
	tokens middleware.TokenParser,
	accountCommands handler.AccountCommander,
	accountQueries handler.AccountQuerier,
	authCommands handler.AuthCommander,
	authQueries handler.AuthQuerier,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "bankapp"})
	})

	accountHandler := handler.NewAccountHandler(accountCommands, accountQueries)
	authHandler := handler.NewAuthHandler(authCommands, authQueries)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
		authRoutes.GET("/profile/:userId", authHandler.GetProfile)
		authRoutes.GET("/me", middleware.AuthMiddleware(tokens), authHandler.Me)

		api.GET("/accounts/:accountId", accountHandler.GetAccount)
		api.POST("/accounts", accountHandler.CreateAccount)
		api.POST("/deposit", accountHandler.Deposit)
		api.POST("/withdraw", accountHandler.Withdraw)
	}

	return router
}
