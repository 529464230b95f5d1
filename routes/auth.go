package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TomTom4/kin/controllers"
	"github.com/TomTom4/kin/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes, throttled against credential stuffing
	rl := middleware.NewRateLimiter(5, 10)
	auth.Post("/register", middleware.RateLimit(rl), controllers.Register)
	auth.Post("/login", middleware.RateLimit(rl), controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/me/avatar", middleware.Protected(), controllers.UploadAvatar)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/users/:id", middleware.Protected(), controllers.GetUserByID)
}
