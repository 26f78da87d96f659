// Package api exposes the inventory and recipe operations over HTTP for the
// presentation layer.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wisechef/internal/inventory"
	"wisechef/internal/recipe"
	"wisechef/pkg/date"
)

// Catalog defines the interface for barcode lookups.
type Catalog interface {
	Lookup(ctx context.Context, barcode string) (*inventory.Product, error)
}

// InventoryStore defines the interface for inventory data operations.
type InventoryStore interface {
	ListAll(ctx context.Context) ([]inventory.Product, error)
	GetByID(ctx context.Context, id string) (*inventory.Product, error)
	UpsertByBarcode(ctx context.Context, product inventory.Product) (*inventory.Product, error)
	RemoveByBarcode(ctx context.Context, barcode string) (bool, error)
	UpdateExpiryDate(ctx context.Context, id string, newDate date.Date) (*inventory.Product, error)
	ListExpiringWithin(ctx context.Context, days int) ([]inventory.Product, error)
}

// RecipeService defines the interface for recipe suggestion operations.
type RecipeService interface {
	Suggest(ctx context.Context, forceRegenerate bool) ([]recipe.Recipe, error)
	GetByID(ctx context.Context, id string) (*recipe.Recipe, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Catalog   Catalog
	Inventory InventoryStore
	Recipes   RecipeService
}

// NewHandler creates a new Handler.
func NewHandler(catalog Catalog, inv InventoryStore, recipes RecipeService) *Handler {
	return &Handler{Catalog: catalog, Inventory: inv, Recipes: recipes}
}

// ListInventory returns every stored product.
func (h *Handler) ListInventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, err := h.Inventory.ListAll(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if products == nil {
		products = []inventory.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// ListExpiring returns products expiring within the given number of days
// (default 7), sorted ascending by expiry date.
func (h *Handler) ListExpiring(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.String(http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, err := h.Inventory.ListExpiringWithin(ctx, days)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if products == nil {
		products = []inventory.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.Inventory.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if product == nil {
		c.String(http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, product)
}

type addProductRequest struct {
	Barcode    string    `json:"barcode" binding:"required"`
	ExpiryDate date.Date `json:"expiryDate"`
}

// AddProduct looks up a barcode in the catalog and upserts the product into
// the inventory. An optional expiryDate overrides the estimated one.
func (h *Handler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	// Generous timeout, the catalog lookup is an external call.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	product, err := h.Catalog.Lookup(ctx, req.Barcode)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("catalog error: %s", err.Error()))
		return
	}
	if product == nil {
		c.String(http.StatusNotFound, "Product not found in catalog")
		return
	}

	if !req.ExpiryDate.IsZero() {
		product.ExpiryDate = req.ExpiryDate
	}

	slog.Info("adding product to inventory", "barcode", req.Barcode, "name", product.Name)
	saved, err := h.Inventory.UpsertByBarcode(ctx, *product)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to save product: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, saved)
}

// RemoveProduct removes a product by barcode. A missing barcode is reported
// as removed=false, not as an error.
func (h *Handler) RemoveProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Inventory.RemoveByBarcode(ctx, c.Param("barcode"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to remove product: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type updateExpiryRequest struct {
	ExpiryDate date.Date `json:"expiryDate" binding:"required"`
}

// UpdateExpiry replaces the expiry date of a product.
func (h *Handler) UpdateExpiry(c *gin.Context) {
	var req updateExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.Inventory.UpdateExpiryDate(ctx, c.Param("id"), req.ExpiryDate)
	if err != nil {
		if errors.Is(err, inventory.ErrProductNotFound) {
			c.String(http.StatusNotFound, "Product not found")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to update expiry date: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, product)
}

// SuggestRecipes returns recipe suggestions, regenerating them when
// regenerate=true is passed.
func (h *Handler) SuggestRecipes(c *gin.Context) {
	force := c.Query("regenerate") == "true"

	// Generous timeout, regeneration may call an external model.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	recipes, err := h.Recipes.Suggest(ctx, force)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to suggest recipes: %s", err.Error()))
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	r, err := h.Recipes.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("database error: %s", err.Error()))
		return
	}
	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	c.JSON(http.StatusOK, r)
}

// DeleteRecipe removes a recipe by id.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Recipes.DeleteByID(ctx, c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to delete recipe: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
