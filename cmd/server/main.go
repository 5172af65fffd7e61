// main.go
//
// Family photo sharing backend for kids' memories.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/database"
	"github.com/NgocTV11/kids-memories-backend/internal/handlers"
	"github.com/NgocTV11/kids-memories-backend/internal/middleware"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/types"

	_ "github.com/NgocTV11/kids-memories-backend/docs/api" // Swagger docs
)

// @title Kids Memories API
// @version 1.0.0
// @description Family photo sharing backend: families, kid profiles, albums, photos and milestones
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/NgocTV11/kids-memories-backend

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Storage backend (MinIO/S3 or local disk)
	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    25 * 1024 * 1024, // photo uploads
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-App-Language",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("kids_memories")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Local uploads are served directly; S3 URLs point at the bucket
	if !cfg.UseS3() {
		app.Static("/uploads", cfg.UploadDir)
	}

	// Create handlers
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	usersHandler := &handlers.UsersHandler{DB: db, Store: store}
	familiesHandler := &handlers.FamiliesHandler{DB: db}
	kidsHandler := &handlers.KidsHandler{DB: db, Store: store}
	albumsHandler := &handlers.AlbumsHandler{DB: db, Cfg: cfg}
	photosHandler := &handlers.PhotosHandler{DB: db, Store: store}
	milestonesHandler := &handlers.MilestonesHandler{DB: db}
	commentsHandler := &handlers.CommentsHandler{DB: db}
	statsHandler := &handlers.StatsHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db}

	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.LocaleMiddleware())

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Shared album view is token-gated, not login-gated
	api.Get("/albums/shared/:token", albumsHandler.GetShared)

	// Everything below requires a valid access token
	protected := middleware.Protected(cfg)

	auth.Get("/profile", protected, authHandler.Profile)
	auth.Post("/refresh", protected, authHandler.Refresh)

	users := api.Group("/users", protected)
	users.Get("/me", usersHandler.Me)
	users.Put("/me", usersHandler.UpdateMe)
	users.Put("/me/password", usersHandler.ChangePassword)
	users.Post("/me/avatar", usersHandler.UploadAvatar)
	users.Get("/", usersHandler.List)
	users.Get("/:id", usersHandler.Get)
	users.Delete("/:id", usersHandler.Delete)

	families := api.Group("/families", protected)
	families.Post("/", familiesHandler.Create)
	families.Get("/", familiesHandler.List)
	families.Get("/invitations", familiesHandler.Invitations)
	families.Get("/:id", familiesHandler.Get)
	families.Put("/:id", familiesHandler.Update)
	families.Delete("/:id", familiesHandler.Delete)
	families.Post("/:id/members", familiesHandler.Invite)
	families.Delete("/:id/members/:memberId", familiesHandler.RemoveMember)
	families.Post("/:id/accept", familiesHandler.Accept)
	families.Post("/:id/leave", familiesHandler.Leave)

	kids := api.Group("/kids", protected)
	kids.Post("/", kidsHandler.Create)
	kids.Get("/", kidsHandler.List)
	kids.Get("/:id", kidsHandler.Get)
	kids.Put("/:id", kidsHandler.Update)
	kids.Delete("/:id", kidsHandler.Delete)
	kids.Post("/:id/growth", kidsHandler.AddGrowth)
	kids.Get("/:id/growth", kidsHandler.GrowthHistory)
	kids.Post("/:id/avatar", kidsHandler.UploadAvatar)

	albums := api.Group("/albums", protected)
	albums.Post("/", albumsHandler.Create)
	albums.Get("/", albumsHandler.List)
	albums.Get("/:id", albumsHandler.Get)
	albums.Put("/:id", albumsHandler.Update)
	albums.Delete("/:id", albumsHandler.Delete)
	albums.Post("/:id/share", albumsHandler.Share)
	albums.Delete("/:id/share", albumsHandler.Unshare)

	photos := api.Group("/photos", protected)
	photos.Post("/upload", photosHandler.Upload)
	photos.Get("/", photosHandler.List)
	photos.Get("/:id", photosHandler.Get)
	photos.Put("/:id", photosHandler.Update)
	photos.Delete("/:id", photosHandler.Delete)
	photos.Post("/:id/tag-kids", photosHandler.TagKids)
	photos.Post("/:id/like", photosHandler.Like)
	photos.Delete("/:id/like", photosHandler.Unlike)
	photos.Get("/:id/like/check", photosHandler.CheckLike)
	photos.Get("/:id/comments", photosHandler.Comments)
	photos.Post("/:id/comments", photosHandler.AddComment)
	photos.Post("/:id/views", photosHandler.TrackView)

	milestones := api.Group("/milestones", protected)
	milestones.Post("/", milestonesHandler.Create)
	milestones.Get("/", milestonesHandler.List)
	milestones.Get("/:id", milestonesHandler.Get)
	milestones.Put("/:id", milestonesHandler.Update)
	milestones.Delete("/:id", milestonesHandler.Delete)
	milestones.Post("/:id/photos", milestonesHandler.AttachPhotos)
	milestones.Delete("/:id/photos", milestonesHandler.DetachPhotos)

	comments := api.Group("/comments", protected)
	comments.Post("/", commentsHandler.Create)
	comments.Get("/photo/:photoId", commentsHandler.ByPhoto)
	comments.Get("/:id", commentsHandler.Get)
	comments.Put("/:id", commentsHandler.Update)
	comments.Delete("/:id", commentsHandler.Delete)

	api.Get("/stats", protected, statsHandler.Me)

	admin := api.Group("/admin", protected, middleware.AdminOnly())
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/families", adminHandler.Families)
	admin.Put("/users/:id/role", adminHandler.UpdateRole)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if ce, ok := types.AsCustom(err); ok {
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
