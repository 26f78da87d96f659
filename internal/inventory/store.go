// Package inventory owns the persisted collection of products the household
// has on hand.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"wisechef/internal/storage"
	"wisechef/pkg/date"
)

// ErrProductNotFound is returned by operations that require an existing product.
var ErrProductNotFound = errors.New("product not found")

// Store defines the interface for inventory data operations.
type Store interface {
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	UpsertByBarcode(ctx context.Context, product Product) (*Product, error)
	RemoveByBarcode(ctx context.Context, barcode string) (bool, error)
	UpdateExpiryDate(ctx context.Context, id string, newDate date.Date) (*Product, error)
	ListExpiringWithin(ctx context.Context, days int) ([]Product, error)
}

// BlobStore implements Store on top of a single blob holding the full product
// list. Every mutation is a read-modify-write of the whole collection; there
// is no coordination between concurrent callers, the last write wins. That is
// a known limitation of the single-user usage model, not an oversight.
type BlobStore struct {
	blob storage.Blob
}

// NewBlobStore creates a Store persisting to the given blob store.
func NewBlobStore(blob storage.Blob) *BlobStore {
	return &BlobStore{blob: blob}
}

// load reads the full product list. A read failure degrades to an empty
// collection, matching "nothing stored yet".
func (s *BlobStore) load(ctx context.Context) []Product {
	data, err := s.blob.Get(ctx, storage.InventoryKey)
	if err != nil {
		slog.Warn("failed to load inventory, treating as empty", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		slog.Warn("failed to decode inventory, treating as empty", "error", err)
		return nil
	}
	return products
}

// save writes the full product list as one unit. Write failures propagate,
// silently dropping a write would corrupt user-visible state.
func (s *BlobStore) save(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if err := s.blob.Put(ctx, storage.InventoryKey, data); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// ListAll returns every stored product in no particular order.
func (s *BlobStore) ListAll(ctx context.Context) ([]Product, error) {
	return s.load(ctx), nil
}

// GetByID returns the product with the given id, or nil if none exists.
func (s *BlobStore) GetByID(ctx context.Context, id string) (*Product, error) {
	for _, p := range s.load(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

// UpsertByBarcode inserts the product or, if its barcode is already present,
// updates the existing record's expiry and added dates in place. The id of an
// existing record never changes.
func (s *BlobStore) UpsertByBarcode(ctx context.Context, product Product) (*Product, error) {
	products := s.load(ctx)

	addedDate := product.AddedDate
	if addedDate.IsZero() {
		addedDate = date.Today()
	}

	for i := range products {
		if products[i].Barcode == product.Barcode {
			products[i].ExpiryDate = product.ExpiryDate
			products[i].AddedDate = addedDate
			if err := s.save(ctx, products); err != nil {
				return nil, err
			}
			return &products[i], nil
		}
	}

	product.ID = uuid.NewString()
	product.AddedDate = addedDate
	products = append(products, product)
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// RemoveByBarcode removes the matching product if present. A missing barcode
// is a normal outcome and reports false without error.
func (s *BlobStore) RemoveByBarcode(ctx context.Context, barcode string) (bool, error) {
	products := s.load(ctx)

	remaining := products[:0:0]
	for _, p := range products {
		if p.Barcode != barcode {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(products) {
		return false, nil
	}

	if err := s.save(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateExpiryDate replaces the expiry date of the product with the given id.
// Returns ErrProductNotFound if no such product exists.
func (s *BlobStore) UpdateExpiryDate(ctx context.Context, id string, newDate date.Date) (*Product, error) {
	products := s.load(ctx)

	for i := range products {
		if products[i].ID == id {
			products[i].ExpiryDate = newDate
			if err := s.save(ctx, products); err != nil {
				return nil, err
			}
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// ListExpiringWithin returns products whose days-until-expiry lie in
// [0, days], sorted ascending by expiry date. Already-expired products are
// excluded here but remain visible through ListAll.
func (s *BlobStore) ListExpiringWithin(ctx context.Context, days int) ([]Product, error) {
	today := date.Today()

	var expiring []Product
	for _, p := range s.load(ctx) {
		until := today.DaysUntil(p.ExpiryDate)
		if until >= 0 && until <= days {
			expiring = append(expiring, p)
		}
	}

	sort.Slice(expiring, func(i, j int) bool {
		return expiring[i].ExpiryDate.Before(expiring[j].ExpiryDate)
	})
	return expiring, nil
}
