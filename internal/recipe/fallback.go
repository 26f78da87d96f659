package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"wisechef/internal/inventory"
)

// recipeTemplate is one rule-based fallback recipe. A template applies when
// at least one of its required category buckets is present; its ingredients
// function assembles the ingredient list from the buckets.
type recipeTemplate struct {
	title        string
	description  string
	instructions []string
	tips         []string
	cookingTime  int
	difficulty   Difficulty
	servings     int
	requires     []string
	ingredients  func(buckets map[string][]string, expiring map[string]bool) []Ingredient
}

// fallbackTemplates is the ordered set of fallback recipes: pasta dish,
// garden salad, fruit smoothie.
var fallbackTemplates = []recipeTemplate{
	{
		title:       "Schnelle Gemüsepasta",
		description: "Ein einfaches und schnelles Pastagericht mit frischem Gemüse.",
		instructions: []string{
			"Wasser in einem großen Topf zum Kochen bringen und salzen.",
			"Pasta nach Packungsanweisung kochen.",
			"In der Zwischenzeit das Gemüse waschen und in kleine Stücke schneiden.",
			"Olivenöl in einer Pfanne erhitzen und das Gemüse darin anbraten.",
			"Mit Salz und Pfeffer würzen.",
			"Die gekochte Pasta abgießen und zum Gemüse geben.",
			"Alles gut vermischen und servieren.",
		},
		tips: []string{
			"Für eine cremigere Sauce kannst du etwas Sahne hinzufügen.",
			"Frischer Parmesan passt hervorragend zu diesem Gericht.",
		},
		cookingTime: 20,
		difficulty:  DifficultyEasy,
		servings:    2,
		requires:    []string{"Nudeln", "Pasta"},
		ingredients: func(buckets map[string][]string, expiring map[string]bool) []Ingredient {
			ings := []Ingredient{{Name: "Pasta", Amount: "250g"}}
			ings = append(ings, tagged(take(buckets["Gemüse"], 3), "100g", expiring)...)
			return append(ings,
				Ingredient{Name: "Salz", Amount: "nach Geschmack"},
				Ingredient{Name: "Pfeffer", Amount: "nach Geschmack"},
				Ingredient{Name: "Olivenöl", Amount: "2 EL"},
			)
		},
	},
	{
		title:       "Bunter Gartensalat",
		description: "Ein frischer und gesunder Salat mit saisonalem Gemüse und Obst.",
		instructions: []string{
			"Alle Gemüse- und Obstsorten waschen und in mundgerechte Stücke schneiden.",
			"In einer großen Schüssel vermischen.",
			"Für das Dressing Olivenöl, Balsamico-Essig und Honig verrühren.",
			"Mit Salz und Pfeffer abschmecken.",
			"Das Dressing über den Salat geben und vorsichtig vermischen.",
			"Vor dem Servieren kurz ziehen lassen.",
		},
		tips: []string{
			"Geröstete Nüsse oder Kerne geben dem Salat einen zusätzlichen Crunch.",
			"Für eine sättigendere Mahlzeit kannst du gekochtes Quinoa oder Couscous hinzufügen.",
		},
		cookingTime: 15,
		difficulty:  DifficultyEasy,
		servings:    2,
		requires:    []string{"Gemüse", "Obst"},
		ingredients: func(buckets map[string][]string, expiring map[string]bool) []Ingredient {
			var ings []Ingredient
			ings = append(ings, tagged(take(buckets["Gemüse"], 4), "100g", expiring)...)
			ings = append(ings, tagged(take(buckets["Obst"], 2), "1 Stück", expiring)...)
			return append(ings,
				Ingredient{Name: "Olivenöl", Amount: "3 EL"},
				Ingredient{Name: "Balsamico-Essig", Amount: "1 EL"},
				Ingredient{Name: "Honig", Amount: "1 TL"},
				Ingredient{Name: "Salz", Amount: "nach Geschmack"},
				Ingredient{Name: "Pfeffer", Amount: "nach Geschmack"},
			)
		},
	},
	{
		title:       "Erfrischender Frucht-Smoothie",
		description: "Ein gesunder und erfrischender Smoothie, perfekt für den Start in den Tag.",
		instructions: []string{
			"Alle Früchte waschen, schälen und in Stücke schneiden.",
			"Früchte, Milchprodukt und Honig in einen Mixer geben.",
			"Bei Bedarf Eiswürfel hinzufügen.",
			"Alles cremig pürieren.",
			"In Gläser füllen und sofort servieren.",
		},
		tips: []string{
			"Für zusätzliche Nährstoffe kannst du einen Teelöffel Chiasamen oder Leinsamen hinzufügen.",
			"Gefrorene Früchte machen den Smoothie besonders cremig.",
		},
		cookingTime: 5,
		difficulty:  DifficultyEasy,
		servings:    2,
		requires:    []string{"Obst", "Milchprodukte"},
		ingredients: func(buckets map[string][]string, expiring map[string]bool) []Ingredient {
			ings := tagged(take(buckets["Obst"], 3), "1 Stück", expiring)
			if dairy := buckets["Milchprodukte"]; len(dairy) > 0 {
				ings = append(ings, tagged(dairy[:1], "200ml", expiring)...)
			} else {
				ings = append(ings, Ingredient{Name: "Milch oder Joghurt", Amount: "200ml"})
			}
			return append(ings,
				Ingredient{Name: "Honig", Amount: "1 EL"},
				Ingredient{Name: "Eiswürfel", Amount: "nach Belieben"},
			)
		},
	},
}

// leftoversTemplate is the single generic recipe used when no template above
// matches the inventory.
var leftoversTemplate = recipeTemplate{
	title:       "Kreative Resteverwertung",
	description: "Ein flexibles Rezept zur Verwertung deiner vorhandenen Zutaten.",
	instructions: []string{
		"Alle Zutaten vorbereiten und in geeignete Stücke schneiden.",
		"In einer Pfanne oder einem Topf die Zutaten nach Garzeit sortiert hinzufügen.",
		"Mit deinen Lieblingsgewürzen abschmecken.",
		"Bei mittlerer Hitze garen, bis alles die gewünschte Konsistenz hat.",
		"Auf Tellern anrichten und servieren.",
	},
	tips: []string{
		"Experimentiere mit verschiedenen Gewürzen, um den Geschmack zu variieren.",
		"Reste können am nächsten Tag als Füllung für Wraps oder als Topping für Salate verwendet werden.",
	},
	cookingTime: 30,
	difficulty:  DifficultyMedium,
	servings:    2,
}

// SampleRecipes synthesizes fallback recipes from the inventory. It is a pure
// function of its inputs apart from freshly assigned ids and timestamps, and
// returns at least one recipe when products is non-empty.
func SampleRecipes(products, expiringProducts []inventory.Product) []Recipe {
	buckets := make(map[string][]string)
	for _, p := range products {
		category := strings.TrimSpace(strings.Split(p.Category, ",")[0])
		buckets[category] = append(buckets[category], p.Name)
	}

	expiring := make(map[string]bool, len(expiringProducts))
	for _, p := range expiringProducts {
		expiring[p.Name] = true
	}

	var recipes []Recipe
	for _, tmpl := range fallbackTemplates {
		if !hasAnyBucket(buckets, tmpl.requires) {
			continue
		}
		recipes = append(recipes, newRecipe(tmpl, tmpl.ingredients(buckets, expiring)))
	}

	if len(recipes) == 0 {
		var names []string
		for _, p := range products {
			names = append(names, p.Name)
		}
		ings := tagged(take(names, 5), "nach Bedarf", expiring)
		recipes = append(recipes, newRecipe(leftoversTemplate, ings))
	}

	return recipes
}

func hasAnyBucket(buckets map[string][]string, names []string) bool {
	for _, name := range names {
		if len(buckets[name]) > 0 {
			return true
		}
	}
	return false
}

// take returns up to n leading elements of names.
func take(names []string, n int) []string {
	if len(names) > n {
		return names[:n]
	}
	return names
}

// tagged builds ingredients with a shared amount, marking those whose name
// appears in the expiring set.
func tagged(names []string, amount string, expiring map[string]bool) []Ingredient {
	var ings []Ingredient
	for _, name := range names {
		ings = append(ings, Ingredient{
			Name:           name,
			Amount:         amount,
			IsExpiringSoon: expiring[name],
		})
	}
	return ings
}

func newRecipe(tmpl recipeTemplate, ingredients []Ingredient) Recipe {
	return Recipe{
		ID:           uuid.NewString(),
		Title:        tmpl.title,
		Description:  tmpl.description,
		Ingredients:  ingredients,
		Instructions: tmpl.instructions,
		CookingTime:  tmpl.cookingTime,
		Difficulty:   tmpl.difficulty,
		Servings:     tmpl.servings,
		Tips:         tmpl.tips,
		CreatedAt:    time.Now(),
	}
}
