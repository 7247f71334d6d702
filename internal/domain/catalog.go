package domain

// Catalog values offered by the planner forms. Only SetupOptions is
// enforced; the rest are suggestions and free text is accepted.
var (
	CuisineTypes = []string{"Mexican", "Italian", "BBQ", "Chinese", "Indian", "American", "Vegan"}

	OperatingHourOptions = []string{
		"9:00 AM - 5:00 PM",
		"10:00 AM - 8:00 PM",
		"11:00 AM - 9:00 PM",
		"12:00 PM - 10:00 PM",
	}

	EntertainmentTypes = []string{"Live Band", "DJ Set", "Kids Play Area", "Comedy Show", "Dance Performance"}

	EventLocations = []string{"Main Stage", "Booth Area 1", "Booth Area 2", "Food Court", "Kids Zone"}

	InventoryUnits = []string{"Packets", "Liters", "Boxes", "Kilograms", "Units"}

	ParkingZones = []string{"Zone A", "Zone B", "Zone C", "Zone D"}

	SetupOptions = []string{
		"Electricity",
		"Water Supply",
		"Waste Disposal",
		"Security Personnel",
		"Signage",
		"Wi-Fi Access",
		"Parking Passes",
		"Lighting",
		"Sound System",
		"Stage Setup",
		"Refrigeration",
		"Tent or Canopy",
		"Seating Arrangement",
		"Fire Extinguisher",
		"First Aid Kit",
		"Power Backup",
		"Cleaning Services",
		"On-Site Technician",
		"Handwashing Stations",
		"Portable Toilets",
	}
)

// DefaultRestockThreshold is the quantity at or below which the overview
// counts an inventory item as needing a restock.
const DefaultRestockThreshold = 5

// IsSetupOption reports whether s is one of SetupOptions.
func IsSetupOption(s string) bool {
	for _, o := range SetupOptions {
		if o == s {
			return true
		}
	}
	return false
}
