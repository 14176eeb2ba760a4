package routes

import (
	"github.com/labstack/echo/v4"

	"estatefind/handlers"
	"estatefind/middleware"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheck)

	pc := handlers.NewPropertyController()
	fc := handlers.NewFavoriteController()
	uc := handlers.NewUserController()
	feed := handlers.NewFeedController()

	api := e.Group("/api")

	api.GET("/properties", pc.ListProperties)
	api.GET("/properties/:id", pc.GetProperty)
	api.GET("/search", pc.SearchProperties)

	api.GET("/favorites/:userId", fc.GetFavorites)
	api.POST("/favorites", fc.ToggleFavorite)

	api.POST("/auth/register", uc.Register)
	api.POST("/auth/login", uc.Login)

	api.GET("/feed/featured", feed.GetFeatured)
	api.GET("/feed/recommended", feed.GetRecommended)
	api.GET("/feed/locations", feed.Autocomplete)

	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware())

	protected.POST("/properties", pc.CreateProperty)
	protected.PUT("/properties/:id", pc.UpdateProperty)
	protected.DELETE("/properties/:id", pc.DeleteProperty)

	protected.GET("/profile", uc.GetProfile)
	protected.PUT("/profile", uc.UpdateProfile)
	protected.DELETE("/profile", uc.DeleteAccount)
}
