package handler

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/middleware"
	"WorldCities/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// RegisterHandlers registers all API routes. limiter guards the public routes and may be nil.
func RegisterHandlers(router *gin.Engine, repo *repository.Repository, cfg *config.Config, limiter *middleware.IPRateLimiter) {
	healthHandler := NewHealthHandler(repo)
	router.GET("/health", healthHandler.Check)

	apiRouter := router.Group("/api")

	cityHandler := NewCityHandler(repo, cfg)
	countryHandler := NewCountryHandler(repo, cfg)
	userHandler := NewUserHandler(repo, cfg)

	// Public routes
	public := apiRouter.Group("")
	if limiter != nil {
		public.Use(middleware.RateLimit(limiter))
	}
	{
		public.POST("/users/login", userHandler.Login)
		public.POST("/users/register", userHandler.Register)
		public.POST("/users/refresh", userHandler.RefreshToken)

		public.GET("/cities", cityHandler.GetCities)
		public.GET("/cities/:id", cityHandler.GetCity)
		public.POST("/cities/is-dupe", cityHandler.IsDupeCity)

		public.GET("/countries", countryHandler.GetCountries)
		public.GET("/countries/is-dupe-field", countryHandler.IsDupeField)
		public.GET("/countries/:id", countryHandler.GetCountry)
	}

	// Protected routes
	protected := apiRouter.Group("")
	protected.Use(middleware.AuthMiddleware(repo, cfg))
	{
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.POST("/users/logout", userHandler.Logout)
	}

	// Admin only routes
	admin := apiRouter.Group("")
	admin.Use(middleware.AuthMiddleware(repo, cfg), middleware.AdminOnly())
	{
		admin.POST("/cities", cityHandler.CreateCity)
		admin.PUT("/cities/:id", cityHandler.UpdateCity)
		admin.DELETE("/cities/:id", cityHandler.DeleteCity)

		admin.POST("/countries", countryHandler.CreateCountry)
		admin.PUT("/countries/:id", countryHandler.UpdateCountry)
		admin.DELETE("/countries/:id", countryHandler.DeleteCountry)
		admin.POST("/countries/:id/flag", countryHandler.UpdateCountryFlag)
	}
}
