// Package catalog looks up product metadata by barcode, using the Open Food
// Facts API with a static fallback table for a handful of known barcodes.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"wisechef/internal/inventory"
	"wisechef/pkg/date"
)

const openFoodFactsAPI = "https://world.openfoodfacts.org/api/v0/product/"

// Client resolves barcodes to product metadata.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient creates a catalog client against the Open Food Facts API.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		apiURL:     openFoodFactsAPI,
	}
}

// productResponse is the relevant subset of the Open Food Facts reply.
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Categories  string `json:"categories"`
		ImageURL    string `json:"image_url"`
		Quantity    string `json:"quantity"`
		Nutriments  struct {
			Energy        json.Number `json:"energy"`
			Fat           json.Number `json:"fat"`
			Carbohydrates json.Number `json:"carbohydrates"`
			Proteins      json.Number `json:"proteins"`
			Salt          json.Number `json:"salt"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Lookup resolves a barcode to a product with an estimated expiry date.
// Returns nil when the barcode is unknown to both the remote catalog and the
// static table. Remote failures are absorbed by falling back to the static
// table, never surfaced to the caller.
func (c *Client) Lookup(ctx context.Context, barcode string) (*inventory.Product, error) {
	remote, err := c.fetchRemote(ctx, barcode)
	if err != nil {
		slog.Warn("catalog lookup failed, falling back to static table", "barcode", barcode, "error", err)
		return staticProduct(barcode), nil
	}
	if remote == nil {
		return staticProduct(barcode), nil
	}
	return remote, nil
}

func (c *Client) fetchRemote(ctx context.Context, barcode string) (*inventory.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+barcode+".json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if pr.Status != 1 {
		return nil, nil // Barcode unknown to the remote catalog
	}

	name := pr.Product.ProductName
	if name == "" {
		name = "Unbekanntes Produkt"
	}
	category := pr.Product.Categories
	if category == "" {
		category = "Sonstiges"
	}

	return &inventory.Product{
		Barcode:         barcode,
		Name:            name,
		Category:        category,
		ExpiryDate:      EstimateExpiryDate(category),
		AddedDate:       date.Today(),
		Quantity:        pr.Product.Quantity,
		ImageURL:        pr.Product.ImageURL,
		NutritionalInfo: extractNutrition(pr),
	}, nil
}

// extractNutrition formats the known nutriments as display strings with the
// unit embedded, keyed by their German names.
func extractNutrition(pr productResponse) map[string]string {
	info := make(map[string]string)
	n := pr.Product.Nutriments

	if n.Energy != "" {
		info["Energie"] = fmt.Sprintf("%s kcal", n.Energy)
	}
	if n.Fat != "" {
		info["Fett"] = fmt.Sprintf("%sg", n.Fat)
	}
	if n.Carbohydrates != "" {
		info["Kohlenhydrate"] = fmt.Sprintf("%sg", n.Carbohydrates)
	}
	if n.Proteins != "" {
		info["Proteine"] = fmt.Sprintf("%sg", n.Proteins)
	}
	if n.Salt != "" {
		info["Salz"] = fmt.Sprintf("%sg", n.Salt)
	}

	if len(info) == 0 {
		return nil
	}
	return info
}
