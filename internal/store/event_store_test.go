package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv/memory"
)

func event(name string, date time.Time, kind string, ticketed bool) domain.FestivalEvent {
	return domain.FestivalEvent{
		ID:                domain.NewID(),
		EventName:         name,
		Date:              date,
		StartTime:         "2:00 PM",
		EndTime:           "4:00 PM",
		Location:          "Main Stage",
		EntertainmentType: kind,
		IsTicketRequired:  ticketed,
	}
}

func TestEventStoreRoundTripAllFields(t *testing.T) {
	backend := openTestBackend(t)
	full := domain.FestivalEvent{
		ID:                domain.NewID(),
		EventName:         "Opening Ceremony",
		Date:              time.Date(2026, time.June, 12, 17, 30, 0, 0, time.UTC),
		StartTime:         "5:30 PM",
		EndTime:           "6:30 PM",
		Location:          "Main Stage",
		FeaturedTrucks:    []string{"Tasty Tacos", "BBQ Heaven"},
		EntertainmentType: "Live Band",
		HostName:          strPtr("MC Grill"),
		IsTicketRequired:  true,
		PosterImage:       []byte("GIF89a-poster"),
		Notes:             strPtr("Fireworks after"),
	}
	sparse := event("Quiet Hour", day(2026, time.June, 13), "DJ Set", false)

	events := NewEventStore(backend)
	require.NoError(t, events.Add(full))
	require.NoError(t, events.Add(sparse))

	reloaded := NewEventStore(backend)
	assert.Equal(t, []domain.FestivalEvent{full, sparse}, reloaded.List())
}

func TestEventStoreFilterByDate(t *testing.T) {
	events := NewEventStore(memory.NewMemoryStore())
	morning := event("Breakfast", time.Date(2026, time.June, 12, 8, 0, 0, 0, time.UTC), "DJ Set", false)
	night := event("Late Show", time.Date(2026, time.June, 12, 23, 59, 0, 0, time.UTC), "Comedy Show", true)
	nextDay := event("Brunch", time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC), "DJ Set", false)
	for _, e := range []domain.FestivalEvent{morning, night, nextDay} {
		require.NoError(t, events.Add(e))
	}

	got := events.FilterByDate(time.Date(2026, time.June, 12, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, []domain.FestivalEvent{morning, night}, got)
}

func TestEventStoreFilterByDateUsesQueryLocation(t *testing.T) {
	events := NewEventStore(memory.NewMemoryStore())
	// 02:00 UTC on the 13th is still the 12th in UTC-5.
	e := event("Midnight Snack", time.Date(2026, time.June, 13, 2, 0, 0, 0, time.UTC), "DJ Set", false)
	require.NoError(t, events.Add(e))

	est := time.FixedZone("UTC-5", -5*60*60)
	assert.Len(t, events.FilterByDate(time.Date(2026, time.June, 12, 12, 0, 0, 0, est)), 1)
	assert.Empty(t, events.FilterByDate(time.Date(2026, time.June, 13, 12, 0, 0, 0, est)))
}

func TestEventStoreSearch(t *testing.T) {
	events := NewEventStore(memory.NewMemoryStore())
	byName := event("Taco Tuesday", day(2026, 6, 12), "DJ Set", false)
	byLocation := event("Dance Off", day(2026, 6, 12), "Dance Performance", false)
	byLocation.Location = "Taco Court"
	byTruck := event("Lunch Rush", day(2026, 6, 12), "Live Band", false)
	byTruck.FeaturedTrucks = []string{"BBQ Heaven", "Tasty Tacos"}
	none := event("Kids Games", day(2026, 6, 12), "Kids Play Area", false)
	for _, e := range []domain.FestivalEvent{byName, byLocation, byTruck, none} {
		require.NoError(t, events.Add(e))
	}

	assert.Equal(t, []domain.FestivalEvent{byName, byLocation, byTruck}, events.Search("taco"))
	// The joined truck list is searched as one string.
	assert.Equal(t, []domain.FestivalEvent{byTruck}, events.Search("heaven, tasty"))
}

func TestEventStoreTicketsAndCounts(t *testing.T) {
	events := NewEventStore(memory.NewMemoryStore())
	a := event("A", day(2026, 6, 12), "Live Band", true)
	b := event("B", day(2026, 6, 12), "DJ Set", false)
	c := event("C", day(2026, 6, 12), "Live Band", true)
	for _, e := range []domain.FestivalEvent{a, b, c} {
		require.NoError(t, events.Add(e))
	}

	assert.Equal(t, []domain.FestivalEvent{a, c}, events.RequiringTickets())
	assert.Equal(t, map[string]int{"Live Band": 2, "DJ Set": 1}, events.CountByEntertainmentType())
	assert.Equal(t, []string{"Live Band", "DJ Set"}, events.UniqueEntertainmentTypes())
}
