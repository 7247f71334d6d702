package store

import (
	"strings"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv"
	"github.com/vbonduro/truckfest/internal/record"
)

const TruckKey = "FoodTrucksData"

type TruckStore struct {
	*record.Store[domain.FoodTruck]
}

func NewTruckStore(backend kv.Store, opts ...record.Option) *TruckStore {
	return &TruckStore{Store: record.New[domain.FoodTruck](backend, TruckKey, opts...)}
}

// FilterByCuisineType matches the cuisine exactly, ignoring case.
func (s *TruckStore) FilterByCuisineType(cuisineType string) []domain.FoodTruck {
	return s.Filter(func(t domain.FoodTruck) bool {
		return strings.EqualFold(t.CuisineType, cuisineType)
	})
}

// Search matches query against name, owner and specialty dish.
func (s *TruckStore) Search(query string) []domain.FoodTruck {
	return s.Filter(func(t domain.FoodTruck) bool {
		return anyContainsFold(query, t.Name, t.OwnerName, t.SpecialtyDish)
	})
}

func (s *TruckStore) EcoFriendly() []domain.FoodTruck {
	return s.Filter(func(t domain.FoodTruck) bool { return t.IsEcoFriendly })
}

func (s *TruckStore) TotalMenuItems() int {
	total := 0
	for _, t := range s.List() {
		total += len(t.MenuItems)
	}
	return total
}

func (s *TruckStore) CountByCuisineType() map[string]int {
	return countBy(s.List(), func(t domain.FoodTruck) string { return t.CuisineType })
}
