package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv"
	"github.com/vbonduro/truckfest/internal/record"
)

const InventoryKey = "VendorInventoriesData"

type InventoryStore struct {
	*record.Store[domain.VendorInventory]
}

func NewInventoryStore(backend kv.Store, opts ...record.Option) *InventoryStore {
	return &InventoryStore{Store: record.New[domain.VendorInventory](backend, InventoryKey, opts...)}
}

// FilterByTruckName matches truckName as a case-insensitive substring.
func (s *InventoryStore) FilterByTruckName(truckName string) []domain.VendorInventory {
	return s.Filter(func(v domain.VendorInventory) bool {
		return containsFold(v.TruckName, truckName)
	})
}

// Search matches query against supplier name and contact.
func (s *InventoryStore) Search(query string) []domain.VendorInventory {
	return s.Filter(func(v domain.VendorInventory) bool {
		return anyContainsFold(query, v.SupplierName, v.SupplierContact)
	})
}

func (s *InventoryStore) WithPerishableItems() []domain.VendorInventory {
	return s.Filter(func(v domain.VendorInventory) bool {
		for _, item := range v.InventoryItems {
			if item.IsPerishable {
				return true
			}
		}
		return false
	})
}

// ItemsNeedingRestock flattens every inventory's items and keeps those with
// quantity at or below threshold.
func (s *InventoryStore) ItemsNeedingRestock(threshold int) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0)
	for _, entry := range s.RestockReport(threshold) {
		out = append(out, entry.Item)
	}
	return out
}

// RestockEntry is an item needing restock together with the inventory that
// holds it.
type RestockEntry struct {
	InventoryID  uuid.UUID            `json:"inventoryId"`
	TruckName    string               `json:"truckName"`
	SupplierName string               `json:"supplierName"`
	Item         domain.InventoryItem `json:"item"`
}

func (s *InventoryStore) RestockReport(threshold int) []RestockEntry {
	out := make([]RestockEntry, 0)
	for _, v := range s.List() {
		for _, item := range v.InventoryItems {
			if item.Quantity <= threshold {
				out = append(out, RestockEntry{
					InventoryID:  v.ID,
					TruckName:    v.TruckName,
					SupplierName: v.SupplierName,
					Item:         item,
				})
			}
		}
	}
	return out
}

// ExpiringBefore returns perishable items whose expiration date is before t.
func (s *InventoryStore) ExpiringBefore(t time.Time) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0)
	for _, v := range s.List() {
		for _, item := range v.InventoryItems {
			if item.IsPerishable && item.ExpirationDate != nil && item.ExpirationDate.Before(t) {
				out = append(out, item)
			}
		}
	}
	return out
}
