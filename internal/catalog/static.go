package catalog

import (
	"wisechef/internal/inventory"
	"wisechef/pkg/date"
)

// staticEntry is one locally known product used when the remote catalog is
// unreachable or does not know the barcode.
type staticEntry struct {
	name            string
	category        string
	imageURL        string
	quantity        string
	nutritionalInfo map[string]string
}

var staticProducts = map[string]staticEntry{
	"3017620422003": {
		name:     "Nutella",
		category: "Brotaufstriche",
		imageURL: "https://images.openfoodfacts.org/images/products/301/762/042/2003/front_de.429.400.jpg",
		quantity: "400g",
		nutritionalInfo: map[string]string{
			"Energie":       "539 kcal",
			"Fett":          "30.9g",
			"Kohlenhydrate": "57.5g",
			"Proteine":      "6.3g",
		},
	},
	"5449000000996": {
		name:     "Coca-Cola",
		category: "Getränke",
		imageURL: "https://images.openfoodfacts.org/images/products/544/900/000/0996/front_de.248.400.jpg",
		quantity: "1.5L",
		nutritionalInfo: map[string]string{
			"Energie":       "42 kcal",
			"Kohlenhydrate": "10.6g",
			"Zucker":        "10.6g",
		},
	},
	"4000417025005": {
		name:     "Haribo Goldbären",
		category: "Süßigkeiten",
		imageURL: "https://images.openfoodfacts.org/images/products/400/041/702/5005/front_de.207.400.jpg",
		quantity: "200g",
		nutritionalInfo: map[string]string{
			"Energie":       "343 kcal",
			"Fett":          "0.5g",
			"Kohlenhydrate": "77g",
			"Zucker":        "46g",
			"Proteine":      "6.9g",
		},
	},
	"4008400202037": {
		name:     "Ritter Sport Schokolade",
		category: "Süßigkeiten",
		imageURL: "https://images.openfoodfacts.org/images/products/400/840/020/2037/front_de.97.400.jpg",
		quantity: "100g",
		nutritionalInfo: map[string]string{
			"Energie":       "535 kcal",
			"Fett":          "29.5g",
			"Kohlenhydrate": "59g",
			"Zucker":        "56g",
			"Proteine":      "5.9g",
		},
	},
	"4311501659717": {
		name:     "Müllermilch Erdbeere",
		category: "Milchprodukte",
		imageURL: "https://images.openfoodfacts.org/images/products/431/150/165/9717/front_de.87.400.jpg",
		quantity: "400ml",
		nutritionalInfo: map[string]string{
			"Energie":       "89 kcal",
			"Fett":          "1.5g",
			"Kohlenhydrate": "13.5g",
			"Zucker":        "13.5g",
			"Proteine":      "3.3g",
		},
	},
}

// staticProduct returns the locally known product for barcode, or nil.
func staticProduct(barcode string) *inventory.Product {
	entry, ok := staticProducts[barcode]
	if !ok {
		return nil
	}

	return &inventory.Product{
		Barcode:         barcode,
		Name:            entry.name,
		Category:        entry.category,
		ExpiryDate:      EstimateExpiryDate(entry.category),
		AddedDate:       date.Today(),
		Quantity:        entry.quantity,
		ImageURL:        entry.imageURL,
		NutritionalInfo: entry.nutritionalInfo,
	}
}
