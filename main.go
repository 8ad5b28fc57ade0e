package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopnow/internal/handlers"
	"shopnow/internal/models"
	"shopnow/internal/repositories"
	"shopnow/internal/services"
	"shopnow/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := openDatabase(databaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, invoice events disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	invoiceRepo := repositories.NewGORMInvoiceRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, mqClient)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(invoiceRepo)

	// Auto-seed the catalog on first run against an empty store.
	if seeded, err := productService.EnsureSeeded(); err != nil {
		log.Printf("Error during auto-seed: %v", err)
	} else if seeded {
		log.Println("Empty catalog seeded with sample products")
	}

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	userHandler := handlers.NewUserHandler(userService, invoiceService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// --- Fiber App ---
	app := newApp()

	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "check /api/health"})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "ShopNow API is running"})
	})

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	analyticsHandler.RegisterRoutes(api)

	// Terminal catch-all for unrecognized routes.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})

	// --- RabbitMQ Consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for invoice events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received invoice event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeInvoiceEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting ShopNow API on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp builds the Fiber app with the process-wide error handler: any error
// that escapes a handler is logged and answered with a generic 500.
func newApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok && e.Code == fiber.StatusNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong!"})
		},
	})
}

// openDatabase connects to Postgres when a DSN is configured and otherwise
// falls back to a local SQLite file, with GORM's error translation enabled
// so unique-constraint violations surface as gorm.ErrDuplicatedKey on both
// drivers.
func openDatabase(databaseURL string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), cfg)
	}
	log.Println("DATABASE_URL not set, using local SQLite store shopnow.db")
	return gorm.Open(sqlite.Open("shopnow.db"), cfg)
}
