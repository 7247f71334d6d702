package service

// Overview holds the summary figures shown on the planner dashboard.
type Overview struct {
	TotalTrucks           int `json:"totalTrucks"`
	EcoFriendlyTrucks     int `json:"ecoFriendlyTrucks"`
	TotalMenuItems        int `json:"totalMenuItems"`
	TotalEvents           int `json:"totalEvents"`
	TicketedEvents        int `json:"ticketedEvents"`
	EntertainmentTypes    int `json:"entertainmentTypes"`
	TotalInventories      int `json:"totalInventories"`
	PerishableInventories int `json:"perishableInventories"`
	ItemsNeedingRestock   int `json:"itemsNeedingRestock"`
	RestockThreshold      int `json:"restockThreshold"`
	TotalPlans            int `json:"totalPlans"`
	SecurityClearedPlans  int `json:"securityClearedPlans"`
	ParkingZonesInUse     int `json:"parkingZonesInUse"`

	TrucksByCuisine       map[string]int `json:"trucksByCuisine"`
	EventsByEntertainment map[string]int `json:"eventsByEntertainment"`
	PlansByParkingZone    map[string]int `json:"plansByParkingZone"`
}

// Overview computes the dashboard figures. Items count as needing restock
// when their quantity is at or below threshold.
func (p *Planner) Overview(threshold int) Overview {
	return Overview{
		TotalTrucks:           len(p.trucks.List()),
		EcoFriendlyTrucks:     len(p.trucks.EcoFriendly()),
		TotalMenuItems:        p.trucks.TotalMenuItems(),
		TotalEvents:           len(p.events.List()),
		TicketedEvents:        len(p.events.RequiringTickets()),
		EntertainmentTypes:    len(p.events.UniqueEntertainmentTypes()),
		TotalInventories:      len(p.inventories.List()),
		PerishableInventories: len(p.inventories.WithPerishableItems()),
		ItemsNeedingRestock:   len(p.inventories.ItemsNeedingRestock(threshold)),
		RestockThreshold:      threshold,
		TotalPlans:            len(p.plans.List()),
		SecurityClearedPlans:  len(p.plans.WithSecurityClearance()),
		ParkingZonesInUse:     len(p.plans.UniqueParkingZones()),

		TrucksByCuisine:       p.trucks.CountByCuisineType(),
		EventsByEntertainment: p.events.CountByEntertainmentType(),
		PlansByParkingZone:    p.plans.CountByParkingZone(),
	}
}
