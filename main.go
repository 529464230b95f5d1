package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/TomTom4/kin/controllers"
	"github.com/TomTom4/kin/cron"
	"github.com/TomTom4/kin/db"
	"github.com/TomTom4/kin/redis"
	"github.com/TomTom4/kin/routes"
	"github.com/TomTom4/kin/scheduler"
	"github.com/TomTom4/kin/store"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"Hello": "World"})
	})

	// The appointment book lives for the lifetime of the process and is
	// handed to everything that needs it; there is no global store.
	book := store.NewAppointmentBook()
	users := db.NewUserDirectory(db.DB)
	svc := scheduler.New(book, users)

	routes.SetupAuthRoutes(app)
	routes.SetupAppointmentRoutes(app, controllers.NewAppointmentController(svc))

	cron.StartReminderJobs(book, users)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
