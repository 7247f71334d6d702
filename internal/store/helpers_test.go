package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/truckfest/internal/db"
	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/kv"
	kvsqlite "github.com/vbonduro/truckfest/internal/kv/sqlite"
)

func openTestBackend(t *testing.T) kv.Store {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return kvsqlite.NewKVStore(d)
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func truck(name string, eco bool) domain.FoodTruck {
	return domain.FoodTruck{
		ID:             domain.NewID(),
		Name:           name,
		CuisineType:    "Mexican",
		SpecialtyDish:  "Tacos",
		MenuItems:      []string{"Tacos"},
		OperatingHours: "10:00 AM - 8:00 PM",
		IsEcoFriendly:  eco,
	}
}
