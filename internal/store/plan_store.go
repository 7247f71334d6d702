package store

import (
	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv"
	"github.com/vbonduro/truckfest/internal/record"
)

const PlanKey = "LogisticsPlansData"

type PlanStore struct {
	*record.Store[domain.LogisticsPlan]
}

func NewPlanStore(backend kv.Store, opts ...record.Option) *PlanStore {
	return &PlanStore{Store: record.New[domain.LogisticsPlan](backend, PlanKey, opts...)}
}

// FilterByTruckName matches truckName as a case-insensitive substring.
func (s *PlanStore) FilterByTruckName(truckName string) []domain.LogisticsPlan {
	return s.Filter(func(p domain.LogisticsPlan) bool {
		return containsFold(p.TruckName, truckName)
	})
}

// Search matches query against booth assignment and parking zone.
func (s *PlanStore) Search(query string) []domain.LogisticsPlan {
	return s.Filter(func(p domain.LogisticsPlan) bool {
		return anyContainsFold(query, p.BoothAssignment, p.ParkingZone)
	})
}

func (s *PlanStore) WithSecurityClearance() []domain.LogisticsPlan {
	return s.Filter(func(p domain.LogisticsPlan) bool { return p.SecurityClearance })
}

func (s *PlanStore) CountByParkingZone() map[string]int {
	return countBy(s.List(), func(p domain.LogisticsPlan) string { return p.ParkingZone })
}

func (s *PlanStore) UniqueParkingZones() []string {
	return distinct(s.List(), func(p domain.LogisticsPlan) string { return p.ParkingZone })
}
