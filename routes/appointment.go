package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TomTom4/kin/controllers"
	"github.com/TomTom4/kin/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App, ac *controllers.AppointmentController) {
	appointment := app.Group("/appointments")
	appointment.Get("/", middleware.Protected(), ac.GetAllAppointments)
	appointment.Post("/", middleware.Protected(), ac.CreateAppointment)
}
