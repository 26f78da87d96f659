package recipe

import "time"

// Difficulty is the preparation difficulty of a recipe.
type Difficulty string

// The fixed set of difficulty levels.
const (
	DifficultyEasy   Difficulty = "Einfach"
	DifficultyMedium Difficulty = "Mittel"
	DifficultyHard   Difficulty = "Schwer"
)

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name           string `json:"name"`
	Amount         string `json:"amount,omitempty"`
	IsExpiringSoon bool   `json:"isExpiringSoon,omitempty"`
}

// Recipe represents one generated recipe suggestion.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	CookingTime  int          `json:"cookingTime"` // minutes
	Difficulty   Difficulty   `json:"difficulty"`
	Servings     int          `json:"servings"`
	Tips         []string     `json:"tips,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}
