package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/service"
)

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// threshold reads ?threshold=N, falling back to the configured default.
func (s *Server) threshold(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("threshold")
	if v == "" {
		return s.restockThreshold, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	threshold, ok := s.threshold(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "threshold must be a non-negative integer")
		return
	}
	s.writeJSON(w, http.StatusOK, s.planner.Overview(threshold))
}

type catalog struct {
	CuisineTypes       []string `json:"cuisineTypes"`
	OperatingHours     []string `json:"operatingHours"`
	EntertainmentTypes []string `json:"entertainmentTypes"`
	EventLocations     []string `json:"eventLocations"`
	InventoryUnits     []string `json:"inventoryUnits"`
	ParkingZones       []string `json:"parkingZones"`
	SetupOptions       []string `json:"setupOptions"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, catalog{
		CuisineTypes:       domain.CuisineTypes,
		OperatingHours:     domain.OperatingHourOptions,
		EntertainmentTypes: domain.EntertainmentTypes,
		EventLocations:     domain.EventLocations,
		InventoryUnits:     domain.InventoryUnits,
		ParkingZones:       domain.ParkingZones,
		SetupOptions:       domain.SetupOptions,
	})
}

func (s *Server) handleListTrucks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeJSON(w, http.StatusOK, s.planner.Trucks(service.TruckQuery{
		Search:      q.Get("q"),
		CuisineType: q.Get("cuisine"),
	}))
}

// handleListEvents accepts ?date=YYYY-MM-DD, interpreted in the server's
// local time zone.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := service.EventQuery{Search: r.URL.Query().Get("q")}

	if v := r.URL.Query().Get("date"); v != "" {
		day, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		q.Date = &day
	}

	ticketed, err := queryBool(r, "ticketed")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "ticketed must be a boolean")
		return
	}
	q.Ticketed = ticketed

	s.writeJSON(w, http.StatusOK, s.planner.Events(q))
}

func (s *Server) handleListInventories(w http.ResponseWriter, r *http.Request) {
	perishable, err := queryBool(r, "perishable")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "perishable must be a boolean")
		return
	}
	s.writeJSON(w, http.StatusOK, s.planner.Inventories(service.InventoryQuery{
		Search:     r.URL.Query().Get("q"),
		TruckName:  r.URL.Query().Get("truck"),
		Perishable: perishable,
	}))
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	threshold, ok := s.threshold(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "threshold must be a non-negative integer")
		return
	}
	s.writeJSON(w, http.StatusOK, s.planner.Restock(threshold))
}

// handleExpiring lists perishable items expiring before ?before=YYYY-MM-DD,
// or before now when the parameter is absent.
func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	before := time.Now()
	if v := r.URL.Query().Get("before"); v != "" {
		t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "before must be YYYY-MM-DD")
			return
		}
		before = t
	}
	s.writeJSON(w, http.StatusOK, s.planner.Expiring(before))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	cleared, err := queryBool(r, "cleared")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "cleared must be a boolean")
		return
	}
	s.writeJSON(w, http.StatusOK, s.planner.Plans(service.PlanQuery{
		Search:    r.URL.Query().Get("q"),
		TruckName: r.URL.Query().Get("truck"),
		Cleared:   cleared,
	}))
}
