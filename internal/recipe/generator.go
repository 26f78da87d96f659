// Package recipe produces recipe suggestions from the current inventory,
// preferring an external text-generation model and falling back to
// deterministic rule-based templates.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"wisechef/internal/inventory"
	"wisechef/internal/storage"
)

// expiringWindowDays is the window used to flag soon-to-expire ingredients.
const expiringWindowDays = 7

// systemInstruction frames every external generation call.
const systemInstruction = "Du bist ein Kochexperte, der kreative und leckere Rezepte basierend auf vorhandenen Zutaten erstellt."

// TextGenerator defines the interface to an external text-generation model.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Inventory defines the inventory access the generator needs.
type Inventory interface {
	ListAll(ctx context.Context) ([]inventory.Product, error)
	ListExpiringWithin(ctx context.Context, days int) ([]inventory.Product, error)
}

// Generator produces and persists recipe suggestions. A nil TextGenerator
// deterministically selects the rule-based path.
type Generator struct {
	inventory Inventory
	text      TextGenerator
	blob      storage.Blob
	validate  *validator.Validate
}

// NewGenerator creates a Generator. text may be nil when no external model is
// configured.
func NewGenerator(inv Inventory, text TextGenerator, blob storage.Blob) *Generator {
	return &Generator{
		inventory: inv,
		text:      text,
		blob:      blob,
		validate:  validator.New(),
	}
}

// load reads the stored recipe list; read failures degrade to empty.
func (g *Generator) load(ctx context.Context) []Recipe {
	data, err := g.blob.Get(ctx, storage.RecipesKey)
	if err != nil {
		slog.Warn("failed to load recipes, treating as empty", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		slog.Warn("failed to decode recipes, treating as empty", "error", err)
		return nil
	}
	return recipes
}

// save replaces the stored recipe list as one unit.
func (g *Generator) save(ctx context.Context, recipes []Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}
	if err := g.blob.Put(ctx, storage.RecipesKey, data); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

// Suggest returns recipe suggestions. Stored recipes are returned unchanged
// unless forceRegenerate is set; regeneration wholly replaces the stored set.
// An empty inventory yields an empty result without persisting anything.
func (g *Generator) Suggest(ctx context.Context, forceRegenerate bool) ([]Recipe, error) {
	if stored := g.load(ctx); len(stored) > 0 && !forceRegenerate {
		return stored, nil
	}

	products, err := g.inventory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	expiring, err := g.inventory.ListExpiringWithin(ctx, expiringWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring products: %w", err)
	}

	recipes := g.generate(ctx, products, expiring)
	if err := g.save(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// generate tries the external model first; any failure there falls back to
// the rule-based templates, which never fail on a non-empty inventory.
func (g *Generator) generate(ctx context.Context, products, expiring []inventory.Product) []Recipe {
	if g.text != nil {
		recipes, err := g.generateExternal(ctx, products, expiring)
		if err == nil {
			return recipes
		}
		slog.Warn("external recipe generation failed, using rule-based fallback", "error", err)
	}
	return SampleRecipes(products, expiring)
}

// GetByID returns the stored recipe with the given id, or nil if none exists.
func (g *Generator) GetByID(ctx context.Context, id string) (*Recipe, error) {
	for _, r := range g.load(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

// DeleteByID removes the recipe with the given id. A missing id is a normal
// outcome and reports false without error.
func (g *Generator) DeleteByID(ctx context.Context, id string) (bool, error) {
	recipes := g.load(ctx)

	remaining := recipes[:0:0]
	for _, r := range recipes {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) == len(recipes) {
		return false, nil
	}

	if err := g.save(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// generatedRecipe is the schema the external model is asked to produce.
// Validation is strict: a missing or malformed field fails the whole reply.
type generatedRecipe struct {
	Title        string                `json:"title" validate:"required"`
	Description  string                `json:"description" validate:"required"`
	Ingredients  []generatedIngredient `json:"ingredients" validate:"required,min=1,dive"`
	Instructions []string              `json:"instructions" validate:"required,min=1"`
	CookingTime  int                   `json:"cookingTime" validate:"required,gt=0"`
	Difficulty   Difficulty            `json:"difficulty" validate:"required,oneof=Einfach Mittel Schwer"`
	Servings     int                   `json:"servings" validate:"required,gt=0"`
	Tips         []string              `json:"tips"`
}

type generatedIngredient struct {
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount"`
}

func (g *Generator) generateExternal(ctx context.Context, products, expiring []inventory.Product) ([]Recipe, error) {
	reply, err := g.text.Generate(ctx, systemInstruction, buildPrompt(products, expiring))
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}
	return g.parseReply(reply)
}

// buildPrompt lists all ingredient names and, separately, the soon-to-expire
// ones, and asks for a JSON array matching the generatedRecipe schema.
func buildPrompt(products, expiring []inventory.Product) string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	expiringList := "Keine"
	if len(expiring) > 0 {
		expiringNames := make([]string, len(expiring))
		for i, p := range expiring {
			expiringNames[i] = p.Name
		}
		expiringList = strings.Join(expiringNames, ", ")
	}

	return fmt.Sprintf(`Generiere 3 Rezepte basierend auf folgenden Zutaten:
%s

Folgende Zutaten laufen bald ab und sollten bevorzugt verwendet werden:
%s

Jedes Rezept sollte folgendes Format haben:
{
  "title": "Rezepttitel",
  "description": "Kurze Beschreibung",
  "ingredients": [
    {"name": "Zutat 1", "amount": "Menge"},
    {"name": "Zutat 2", "amount": "Menge"}
  ],
  "instructions": ["Schritt 1", "Schritt 2", "Schritt 3"],
  "cookingTime": Zubereitungszeit in Minuten,
  "difficulty": "Einfach/Mittel/Schwer",
  "servings": Anzahl der Portionen,
  "tips": ["Tipp 1", "Tipp 2"]
}

Gib die Rezepte als JSON-Array zurück.`, strings.Join(names, ", "), expiringList)
}

// parseReply extracts the JSON array from the model's free-text reply and
// validates every element against the declared schema. Any mismatch is a
// generation failure.
func (g *Generator) parseReply(reply string) ([]Recipe, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || start > end {
		return nil, fmt.Errorf("could not find JSON array in reply")
	}

	var generated []generatedRecipe
	if err := json.Unmarshal([]byte(reply[start:end+1]), &generated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipes JSON: %w", err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("reply contained no recipes")
	}

	recipes := make([]Recipe, 0, len(generated))
	for i, gr := range generated {
		if err := g.validate.Struct(gr); err != nil {
			return nil, fmt.Errorf("generated recipe %d is invalid: %w", i, err)
		}

		ingredients := make([]Ingredient, len(gr.Ingredients))
		for j, ing := range gr.Ingredients {
			ingredients[j] = Ingredient{Name: ing.Name, Amount: ing.Amount}
		}

		recipes = append(recipes, Recipe{
			ID:           uuid.NewString(),
			Title:        gr.Title,
			Description:  gr.Description,
			Ingredients:  ingredients,
			Instructions: gr.Instructions,
			CookingTime:  gr.CookingTime,
			Difficulty:   gr.Difficulty,
			Servings:     gr.Servings,
			Tips:         gr.Tips,
			CreatedAt:    time.Now(),
		})
	}
	return recipes, nil
}
