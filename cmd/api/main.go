package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	config "github.com/omondi95/tutor_marketplace/configs"
	"github.com/omondi95/tutor_marketplace/database"
	"github.com/omondi95/tutor_marketplace/events"
	"github.com/omondi95/tutor_marketplace/handlers"
	"github.com/omondi95/tutor_marketplace/jobs"
	"github.com/omondi95/tutor_marketplace/repository"
	"github.com/omondi95/tutor_marketplace/routes"
	"github.com/omondi95/tutor_marketplace/services"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	var publisher events.Publisher
	if amqpURL := config.Config("AMQP_URL"); amqpURL != "" {
		p, err := events.NewAMQPPublisher(amqpURL, config.ConfigOr("AMQP_EXCHANGE", "bookings"))
		if err != nil {
			log.Printf("🔥 Event bus unavailable, cancellation events will be dropped: %v", err)
			publisher = events.NoopPublisher{}
		} else {
			publisher = p
			defer p.Close()
		}
	} else {
		log.Println("AMQP_URL not set, cancellation events will be dropped.")
		publisher = events.NoopPublisher{}
	}

	userRepo := repository.NewUserRepository(database.DB)
	availabilityRepo := repository.NewAvailabilityRepository(database.DB)
	bookingRepo := repository.NewBookingRepository(database.DB)

	bookingService := services.NewBookingService(
		userRepo,
		availabilityRepo,
		bookingRepo,
		publisher,
		services.BookingConfig{},
	)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.CompletePastBookings)
	go c.Start()
	log.Println("✅ Cron job for session completion scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Tutor Marketplace",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Tutor Marketplace API",
		})
	})

	routes.AuthRoutes(app, handlers.NewAuthHandler(userRepo))
	routes.AvailabilityRoutes(app, handlers.NewAvailabilityHandler(availabilityRepo))
	routes.BookingRoutes(app, handlers.NewBookingHandler(bookingService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
