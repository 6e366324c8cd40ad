package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/cart"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/checkout"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/handlers"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/middleware"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/repositories"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/services"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/pkg/rabbitmq"
)

// NewApp wires the POS terminal: the backend client, the local sales journal,
// per-cashier checkout sessions and the HTTP surface. The RabbitMQ publisher
// is optional; pass nil to run without event publishing.
func NewApp(v *viper.Viper, mq checkout.Publisher) (*fiber.App, error) {
	// --- Backend client ---
	backendClient := backend.NewClient(
		v.GetString("BACKEND_URL"),
		v.GetDuration("BACKEND_TIMEOUT"),
	)

	// --- Sales journal ---
	db, err := openJournalDB(v.GetString("JOURNAL_DRIVER"), v.GetString("JOURNAL_DSN"))
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.JournalEntry{}); err != nil {
		return nil, err
	}
	journalRepo := repositories.NewGORMJournalRepository(db)

	// --- Services ---
	// Each cashier session gets its own cart and coordinator.
	sessionService := services.NewSessionService(func(cashier string) *checkout.Coordinator {
		return checkout.NewCoordinator(cart.New(), backendClient, backendClient, journalRepo, mq, cashier)
	})
	authService := services.NewAuthService(backendClient, sessionService, v.GetString("JWT_SECRET"))
	catalogService := services.NewCatalogService(backendClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cashierHandler := handlers.NewCashierHandler(sessionService)
	journalHandler := handlers.NewJournalHandler(journalRepo)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// Login is the only public route.
	authHandler.RegisterRoutes(app)

	// Everything under /api requires a session token. Role guards are
	// attached per route inside each handler, never as a group-wide Use:
	// admin and cashier routes share the /api prefix.
	api := app.Group("/api", middleware.AuthRequired(authService))
	authHandler.RegisterSessionRoutes(api)

	adminOnly := middleware.RoleRequired("admin")
	productHandler.RegisterRoutes(api, adminOnly)
	journalHandler.RegisterRoutes(api, adminOnly)
	cashierHandler.RegisterRoutes(api, middleware.RoleRequired("cashier"))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// openJournalDB opens the journal store. Sqlite is the default so a terminal
// works standalone; postgres is for shops running a shared back office DB.
func openJournalDB(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("BACKEND_URL", "http://localhost:5000")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JOURNAL_DRIVER", "sqlite")
	v.SetDefault("JOURNAL_DSN", "pos_journal.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv() // Load environment variables

	appPort := v.GetString("APP_PORT")

	// --- Initialize RabbitMQ Client (optional) ---
	var mq checkout.Publisher
	if rabbitMQURL := v.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		mq = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; sale event publishing disabled.")
	}

	app, err := NewApp(v, mq)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting POS terminal on port %s (backend: %s)", appPort, v.GetString("BACKEND_URL"))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down terminal...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Terminal gracefully stopped")
}
