package catalog

import (
	"strings"

	"wisechef/pkg/date"
)

// defaultShelfLifeDays applies when no keyword rule matches a category.
const defaultShelfLifeDays = 7

// shelfLifeRule maps category keywords to an estimated shelf life in days.
type shelfLifeRule struct {
	keywords []string
	days     int
}

// shelfLifeRules is an ordered match table, the first rule with a matching
// keyword wins. Keywords cover the German and English category names Open
// Food Facts returns.
var shelfLifeRules = []shelfLifeRule{
	{keywords: []string{"milch", "joghurt", "dairy"}, days: 7},
	{keywords: []string{"fleisch", "wurst", "meat"}, days: 5},
	{keywords: []string{"obst", "gemüse", "fruit", "vegetable"}, days: 7},
	{keywords: []string{"brot", "bread"}, days: 5},
	{keywords: []string{"konserve", "canned"}, days: 365},
	{keywords: []string{"tiefkühl", "frozen"}, days: 90},
	{keywords: []string{"getränk", "beverage"}, days: 30},
	{keywords: []string{"snack", "süßigkeit", "sweet"}, days: 60},
}

// EstimateExpiryDate estimates an expiry date from the product category,
// counted from today.
func EstimateExpiryDate(category string) date.Date {
	return date.Today().AddDays(shelfLifeDays(category))
}

func shelfLifeDays(category string) int {
	lower := strings.ToLower(category)
	for _, rule := range shelfLifeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.days
			}
		}
	}
	return defaultShelfLifeDays
}
