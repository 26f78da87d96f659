package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisechef/internal/inventory"
)

// memBlob is an in-memory blob store for tests.
type memBlob struct {
	values map[string][]byte
	puts   int
}

func newMemBlob() *memBlob {
	return &memBlob{values: make(map[string][]byte)}
}

func (m *memBlob) Get(ctx context.Context, key string) ([]byte, error) {
	return m.values[key], nil
}

func (m *memBlob) Put(ctx context.Context, key string, value []byte) error {
	m.puts++
	m.values[key] = value
	return nil
}

// stubInventory serves fixed product lists.
type stubInventory struct {
	products []inventory.Product
	expiring []inventory.Product
}

func (s *stubInventory) ListAll(ctx context.Context) ([]inventory.Product, error) {
	return s.products, nil
}

func (s *stubInventory) ListExpiringWithin(ctx context.Context, days int) ([]inventory.Product, error) {
	return s.expiring, nil
}

// stubText returns a canned reply or error.
type stubText struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubText) Generate(ctx context.Context, system, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const validReply = "Hier sind deine Rezepte:\n" + `[
	{
		"title": "Tomatensuppe",
		"description": "Eine cremige Suppe.",
		"ingredients": [{"name": "Tomate", "amount": "500g"}],
		"instructions": ["Tomaten kochen.", "Pürieren."],
		"cookingTime": 25,
		"difficulty": "Einfach",
		"servings": 4,
		"tips": ["Mit Basilikum servieren."]
	}
]` + "\nGuten Appetit!"

func kitchenInventory() *stubInventory {
	return &stubInventory{
		products: []inventory.Product{
			product("Spaghetti", "Pasta"),
			product("Tomate", "Gemüse"),
		},
		expiring: []inventory.Product{product("Tomate", "Gemüse")},
	}
}

func TestSuggest_ExternalGeneration(t *testing.T) {
	ctx := context.Background()
	text := &stubText{reply: validReply}
	gen := NewGenerator(kitchenInventory(), text, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, "Tomatensuppe", r.Title)
	assert.Equal(t, []string{"Tomaten kochen.", "Pürieren."}, r.Instructions)
	assert.Equal(t, 25, r.CookingTime)
	assert.Equal(t, DifficultyEasy, r.Difficulty)
	assert.Equal(t, []Ingredient{{Name: "Tomate", Amount: "500g"}}, r.Ingredients)

	// The prompt lists all ingredients and the expiring subset.
	require.Len(t, text.prompts, 1)
	assert.Contains(t, text.prompts[0], "Spaghetti, Tomate")
	assert.Contains(t, text.prompts[0], "laufen bald ab")
}

func TestSuggest_ReturnsStoredWithoutForce(t *testing.T) {
	ctx := context.Background()
	text := &stubText{reply: validReply}
	gen := NewGenerator(kitchenInventory(), text, newMemBlob())

	first, err := gen.Suggest(ctx, true)
	require.NoError(t, err)

	second, err := gen.Suggest(ctx, false)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Title, second[0].Title)

	// No second generation call happened.
	assert.Len(t, text.prompts, 1)
}

func TestSuggest_ForceReplacesStored(t *testing.T) {
	ctx := context.Background()
	text := &stubText{reply: validReply}
	gen := NewGenerator(kitchenInventory(), text, newMemBlob())

	first, err := gen.Suggest(ctx, true)
	require.NoError(t, err)

	second, err := gen.Suggest(ctx, true)
	require.NoError(t, err)

	// The stored set is wholly replaced, including fresh ids.
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	stored, err := gen.GetByID(ctx, first[0].ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSuggest_EmptyInventory(t *testing.T) {
	ctx := context.Background()
	blob := newMemBlob()
	gen := NewGenerator(&stubInventory{}, &stubText{reply: validReply}, blob)

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// Nothing was persisted.
	assert.Zero(t, blob.puts)
}

func TestSuggest_NonJSONReplyFallsBack(t *testing.T) {
	ctx := context.Background()
	inv := kitchenInventory()
	gen := NewGenerator(inv, &stubText{reply: "Leider kann ich dir heute keine Rezepte vorschlagen."}, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)

	// Same recipes the rule-based path produces for this inventory.
	expected := SampleRecipes(inv.products, inv.expiring)
	require.Len(t, recipes, len(expected))
	for i := range recipes {
		assert.Equal(t, expected[i].Title, recipes[i].Title)
		assert.Equal(t, expected[i].Ingredients, recipes[i].Ingredients)
	}
}

func TestSuggest_GenerationErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(kitchenInventory(), &stubText{err: errors.New("network down")}, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)
	assert.Equal(t, "Schnelle Gemüsepasta", recipes[0].Title)
}

func TestSuggest_InvalidSchemaFallsBack(t *testing.T) {
	// Structurally valid JSON but missing required fields.
	reply := `[{"title": "Nur ein Titel"}]`

	ctx := context.Background()
	gen := NewGenerator(kitchenInventory(), &stubText{reply: reply}, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Schnelle Gemüsepasta", recipes[0].Title)
}

func TestSuggest_NilTextGeneratorUsesFallback(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(kitchenInventory(), nil, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)
	assert.Equal(t, "Schnelle Gemüsepasta", recipes[0].Title)
}

func TestParseReply_Strict(t *testing.T) {
	gen := NewGenerator(nil, nil, newMemBlob())

	tests := []struct {
		name  string
		reply string
	}{
		{"no array", "keine Rezepte"},
		{"unbalanced brackets", "] ["},
		{"wrong type", `[{"title": "T", "description": "D", "ingredients": [{"name": "I"}], "instructions": ["S"], "cookingTime": "zwanzig", "difficulty": "Einfach", "servings": 2}]`},
		{"unknown difficulty", `[{"title": "T", "description": "D", "ingredients": [{"name": "I"}], "instructions": ["S"], "cookingTime": 20, "difficulty": "Extrem", "servings": 2}]`},
		{"empty ingredients", `[{"title": "T", "description": "D", "ingredients": [], "instructions": ["S"], "cookingTime": 20, "difficulty": "Einfach", "servings": 2}]`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.parseReply(tt.reply)
			assert.Error(t, err)
		})
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(kitchenInventory(), nil, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	require.NotEmpty(t, recipes)

	found, err := gen.GetByID(ctx, recipes[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, recipes[0].Title, found.Title)

	missing, err := gen.GetByID(ctx, "nonexistent-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(kitchenInventory(), nil, newMemBlob())

	recipes, err := gen.Suggest(ctx, true)
	require.NoError(t, err)
	require.NotEmpty(t, recipes)

	deleted, err := gen.DeleteByID(ctx, "nonexistent-id")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = gen.DeleteByID(ctx, recipes[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := gen.GetByID(ctx, recipes[0].ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
