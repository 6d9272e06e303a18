package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/lapicera/asistente-compras/internal/config"
	"github.com/lapicera/asistente-compras/internal/database"
	"github.com/lapicera/asistente-compras/internal/handlers"
	"github.com/lapicera/asistente-compras/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the document mirror if configured
	var mirror *services.MirrorService
	if cfg.MirrorEnabled {
		if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			log.Println("Mirror enabled but S3 credentials not configured, mirroring disabled")
		} else {
			m, err := services.NewMirrorService(
				cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
				cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
			)
			if err != nil {
				log.Printf("Warning: Failed to initialize mirror service: %v", err)
			} else if err := m.EnsureBucket(context.Background()); err != nil {
				log.Printf("Warning: Failed to ensure mirror bucket exists: %v", err)
			} else {
				mirror = m
				log.Println("Document mirror initialized")
			}
		}
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, mirror)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Product catalog routes
	products := api.Group("/products")
	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)
	products.Post("/", h.CreateProduct)
	products.Put("/:id", h.UpdateProduct)
	products.Delete("/:id", h.DeleteProduct)

	// Shopping list routes
	lists := api.Group("/lists")
	lists.Get("/", h.ListShoppingLists)
	lists.Post("/", h.CreateShoppingList)
	lists.Get("/standard", h.ListStandardLists)
	lists.Post("/standard/:type", h.CreateStandardList)
	lists.Get("/:id", h.GetShoppingList)
	lists.Put("/:id", h.UpdateShoppingList)
	lists.Delete("/:id", h.DeleteShoppingList)
	lists.Get("/:id/export", h.ExportList)
	lists.Post("/:id/share", h.ShareList)
	lists.Post("/:id/lines", h.AddLineToList)
	lists.Put("/:id/lines/:lineId", h.UpdateLine)
	lists.Delete("/:id/lines/:lineId", h.DeleteLine)
	lists.Post("/:id/lines/:lineId/select", h.SelectSuggestion)

	// Public share routes
	share := api.Group("/share")
	share.Get("/:token", h.GetSharedList)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
