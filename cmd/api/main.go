package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"

	"wisechef/internal/api"
	"wisechef/internal/catalog"
	"wisechef/internal/config"
	"wisechef/internal/inventory"
	"wisechef/internal/platform/gemini"
	"wisechef/internal/platform/localllm"
	"wisechef/internal/recipe"
	"wisechef/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.RFC3339,
	})))

	blobStore, err := storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating blob store: %w", err))
	}

	// Pick the text-generation model; without one the recipe generator uses
	// its rule-based templates.
	var textGen recipe.TextGenerator
	switch {
	case cfg.HasGeminiKey():
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			panic(fmt.Errorf("error creating gemini client: %w", err))
		}
		textGen = geminiClient
		slog.Info("recipe generation via Gemini")
	case cfg.LocalLLMURL != "":
		textGen = localllm.NewClient(cfg.LocalLLMURL)
		slog.Info("recipe generation via local LLM", "url", cfg.LocalLLMURL)
	default:
		slog.Info("no text-generation model configured, using rule-based recipes")
	}

	inventoryStore := inventory.NewBlobStore(blobStore)
	generator := recipe.NewGenerator(inventoryStore, textGen, blobStore)
	catalogClient := catalog.NewClient()

	handler := api.NewHandler(catalogClient, inventoryStore, generator)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/inventory", handler.ListInventory)
	r.GET("/inventory/expiring", handler.ListExpiring)
	r.GET("/inventory/:id", handler.GetProduct)
	r.POST("/inventory", handler.AddProduct)
	r.DELETE("/inventory/:barcode", handler.RemoveProduct)
	r.PUT("/inventory/:id/expiry", handler.UpdateExpiry)
	r.GET("/recipes", handler.SuggestRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)
	r.DELETE("/recipes/:id", handler.DeleteRecipe)

	r.Run(cfg.HTTPAddr)
}
