package inventory

import "wisechef/pkg/date"

// Product is one item in the household inventory. Barcode is the dedup key:
// the store never holds two products with the same barcode.
type Product struct {
	ID              string            `json:"id"`
	Barcode         string            `json:"barcode"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	ExpiryDate      date.Date         `json:"expiryDate"`
	AddedDate       date.Date         `json:"addedDate"`
	Quantity        string            `json:"quantity,omitempty"`
	ImageURL        string            `json:"imageUrl,omitempty"`
	NutritionalInfo map[string]string `json:"nutritionalInfo,omitempty"`
}
