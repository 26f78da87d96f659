package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisechef/pkg/date"
)

func TestShelfLifeDays(t *testing.T) {
	tests := []struct {
		category string
		days     int
	}{
		{"Milchprodukte", 7},
		{"Joghurt, Desserts", 7},
		{"Fleisch, Wurstwaren", 5},
		{"Obst, Gemüse", 7},
		{"Brot", 5},
		{"Konserven", 365},
		{"Tiefkühlprodukte", 90},
		{"Getränke", 30},
		{"Snacks, Süßigkeiten", 60},
		{"Sonstiges", 7},
		{"", 7},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.days, shelfLifeDays(tt.category))
		})
	}
}

func TestShelfLifeDays_FirstMatchWins(t *testing.T) {
	// "Milch" appears before "Getränke" in the rule table.
	assert.Equal(t, 7, shelfLifeDays("Getränke, Milchgetränke"))
}

func TestEstimateExpiryDate(t *testing.T) {
	got := EstimateExpiryDate("Konserven")
	assert.Equal(t, date.Today().AddDays(365).String(), got.String())
}

func TestLookup_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1234.json", r.URL.Path)
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Bio Vollmilch",
				"categories": "Milchprodukte",
				"image_url": "https://example.com/milch.jpg",
				"quantity": "1L",
				"nutriments": {"energy": 64, "fat": 3.8, "proteins": "3.3"}
			}
		}`))
	}))
	defer server.Close()

	client := &Client{httpClient: server.Client(), apiURL: server.URL + "/"}

	product, err := client.Lookup(context.Background(), "1234")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Bio Vollmilch", product.Name)
	assert.Equal(t, "Milchprodukte", product.Category)
	assert.Equal(t, date.Today().AddDays(7).String(), product.ExpiryDate.String())
	assert.Equal(t, "64 kcal", product.NutritionalInfo["Energie"])
	assert.Equal(t, "3.8g", product.NutritionalInfo["Fett"])
	assert.Equal(t, "3.3g", product.NutritionalInfo["Proteine"])
}

func TestLookup_RemoteMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {}}`))
	}))
	defer server.Close()

	client := &Client{httpClient: server.Client(), apiURL: server.URL + "/"}

	product, err := client.Lookup(context.Background(), "1234")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Unbekanntes Produkt", product.Name)
	assert.Equal(t, "Sonstiges", product.Category)
	assert.Nil(t, product.NutritionalInfo)
}

func TestLookup_RemoteUnknownFallsBackToStatic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0}`))
	}))
	defer server.Close()

	client := &Client{httpClient: server.Client(), apiURL: server.URL + "/"}

	product, err := client.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Nutella", product.Name)
	assert.Equal(t, "Brotaufstriche", product.Category)
}

func TestLookup_RemoteErrorFallsBackToStatic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{httpClient: server.Client(), apiURL: server.URL + "/"}

	product, err := client.Lookup(context.Background(), "5449000000996")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Coca-Cola", product.Name)
}

func TestLookup_UnknownEverywhere(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0}`))
	}))
	defer server.Close()

	client := &Client{httpClient: server.Client(), apiURL: server.URL + "/"}

	product, err := client.Lookup(context.Background(), "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, product)
}
