package router

import (
	"agenticWallet/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	auth := api.Group("/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/signin", handler.Signin)
	auth.POST("/logout", handler.Logout, authRequired)

	users := api.Group("/users", authRequired)
	users.GET("/:id", handler.GetUserByID, selfOrAdmin)
	users.PUT("/:id", handler.UpdateUser, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, selfOrAdmin)
}

func SetupCardRoutes(api *echo.Group, handler *rest.CardHandler, authRequired echo.MiddlewareFunc) {
	cards := api.Group("/cards", authRequired)
	cards.POST("", handler.CreateCard)
	cards.GET("", handler.GetUserCards)
	cards.PUT("/:id", handler.UpdateCard)
	cards.DELETE("/:id", handler.DeleteCard)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.POST("", handler.Recommend)
	reco.POST("/ranked", handler.RecommendRanked)
}

func SetupTransactionRoutes(api *echo.Group, handler *rest.TransactionHandler, authRequired echo.MiddlewareFunc) {
	txns := api.Group("/transactions", authRequired)
	txns.POST("", handler.Record)
	txns.GET("", handler.History)
	txns.GET("/stats", handler.Stats)
	txns.GET("/analytics", handler.Analytics)
	txns.GET("/:ref", handler.GetByRef)
}

func SetupMetaRoutes(e *echo.Echo, api *echo.Group, handler *rest.MetaHandler) {
	e.GET("/health", handler.Health)

	api.GET("/categories", handler.Categories)
	api.GET("/optimization-goals", handler.Goals)
}
