package main

import (
	"fmt"

	_ "studyrobo-api/docs"
	"studyrobo-api/internal/adapter/openai"
	"studyrobo-api/internal/adapter/repository/postgres"
	"studyrobo-api/internal/adapter/supabase"
	"studyrobo-api/internal/delivery/http/handler"
	"studyrobo-api/internal/delivery/http/middleware"
	"studyrobo-api/internal/usecase/document"
	"studyrobo-api/pkg/config"
	"studyrobo-api/pkg/database"
	"studyrobo-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	// request logging
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

// @title           StudyRobo API
// @version         1.0
// @description     Study-assistant API: document ingestion with vector embeddings and RAG chat over uploaded course materials
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	// connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()
	log.Info("connected to database")

	// external collaborators
	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket)
	embeddingClient := openai.NewEmbeddingClient(cfg.OpenAIKey, cfg.OpenAIEmbeddingModel)
	chatClient := openai.NewChatClient(cfg.OpenAIKey, cfg.OpenAIChatModel)

	// repository
	docRepo := postgres.NewDocumentRepository(db)

	// ingestion pipeline configuration is validated once at startup
	chunker, err := document.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatal("invalid chunk configuration", "chunkSize", cfg.ChunkSize, "chunkOverlap", cfg.ChunkOverlap, "error", err)
	}

	docUsecase := document.NewDocumentUsecase(
		docRepo,
		storageClient,
		embeddingClient,
		chatClient,
		chunker,
		log,
		cfg.EmbedConcurrency,
		cfg.MatchThreshold,
		cfg.MatchCount,
	)

	// handlers
	docHandler := handler.NewDocumentHandler(docUsecase)
	chatHandler := handler.NewChatHandler(docUsecase)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Swagger route
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")

	// processing endpoint is called service-to-service with the storage
	// trigger's credentials, not with a user token
	api.Options("/documents/process", docHandler.ProcessPreflight)
	api.Post("/documents/process", docHandler.Process)

	// Protected routes
	protected := api.Group("", middleware.JWTAuth(cfg.JWTSecret))

	protected.Post("/documents/upload", docHandler.Upload)
	protected.Get("/documents", docHandler.List)
	protected.Get("/documents/:id", docHandler.GetByID)
	protected.Delete("/documents/:id", docHandler.Delete)
	protected.Post("/chat", chatHandler.Ask)

	log.Info("server starting", "port", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}
