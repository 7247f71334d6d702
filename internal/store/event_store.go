package store

import (
	"strings"
	"time"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv"
	"github.com/vbonduro/truckfest/internal/record"
)

const EventKey = "FestivalEventsData"

type EventStore struct {
	*record.Store[domain.FestivalEvent]
}

func NewEventStore(backend kv.Store, opts ...record.Option) *EventStore {
	return &EventStore{Store: record.New[domain.FestivalEvent](backend, EventKey, opts...)}
}

// FilterByDate returns the events falling on day's calendar date, judged in
// day's location.
func (s *EventStore) FilterByDate(day time.Time) []domain.FestivalEvent {
	y, m, d := day.Date()
	loc := day.Location()
	return s.Filter(func(e domain.FestivalEvent) bool {
		ey, em, ed := e.Date.In(loc).Date()
		return ey == y && em == m && ed == d
	})
}

// Search matches query against event name, location and the featured truck
// names.
func (s *EventStore) Search(query string) []domain.FestivalEvent {
	return s.Filter(func(e domain.FestivalEvent) bool {
		return anyContainsFold(query, e.EventName, e.Location, strings.Join(e.FeaturedTrucks, ", "))
	})
}

func (s *EventStore) RequiringTickets() []domain.FestivalEvent {
	return s.Filter(func(e domain.FestivalEvent) bool { return e.IsTicketRequired })
}

func (s *EventStore) CountByEntertainmentType() map[string]int {
	return countBy(s.List(), func(e domain.FestivalEvent) string { return e.EntertainmentType })
}

func (s *EventStore) UniqueEntertainmentTypes() []string {
	return distinct(s.List(), func(e domain.FestivalEvent) string { return e.EntertainmentType })
}
