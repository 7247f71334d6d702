package forms

import (
	"slices"
	"strings"
	"time"

	"github.com/vbonduro/truckfest/internal/domain"
)

// TruckForm is the add/edit food truck form. The truck image is managed
// separately and is not part of the form.
type TruckForm struct {
	ID               string            `json:"id"`
	Name             string            `json:"name" validate:"required"`
	CuisineType      string            `json:"cuisineType"`
	SpecialtyDish    string            `json:"specialtyDish" validate:"required"`
	MenuItems        List              `json:"menuItems"`
	OwnerName        string            `json:"ownerName"`
	ContactEmail     string            `json:"contactEmail"`
	ContactNumber    string            `json:"contactNumber"`
	SocialMediaLinks map[string]string `json:"socialMediaLinks"`
	OperatingHours   string            `json:"operatingHours"`
	FoodAllergenInfo string            `json:"foodAllergenInfo"`
	IsEcoFriendly    bool              `json:"isEcoFriendly"`
	Notes            string            `json:"notes"`
}

func (f TruckForm) Build() (domain.FoodTruck, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.SpecialtyDish = strings.TrimSpace(f.SpecialtyDish)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)
	if err := check(f); err != nil {
		return domain.FoodTruck{}, err
	}
	id, err := resolveID(f.ID)
	if err != nil {
		return domain.FoodTruck{}, err
	}

	var links map[string]string
	if f.SocialMediaLinks != nil {
		links = make(map[string]string, len(f.SocialMediaLinks))
		for platform, handle := range f.SocialMediaLinks {
			platform = strings.TrimSpace(platform)
			if platform == "" {
				continue
			}
			links[platform] = strings.TrimSpace(handle)
		}
	}

	return domain.FoodTruck{
		ID:               id,
		Name:             f.Name,
		CuisineType:      strings.TrimSpace(f.CuisineType),
		SpecialtyDish:    f.SpecialtyDish,
		MenuItems:        cleanList(f.MenuItems),
		OwnerName:        strings.TrimSpace(f.OwnerName),
		ContactEmail:     f.ContactEmail,
		ContactNumber:    strings.TrimSpace(f.ContactNumber),
		SocialMediaLinks: links,
		OperatingHours:   strings.TrimSpace(f.OperatingHours),
		FoodAllergenInfo: optional(f.FoodAllergenInfo),
		IsEcoFriendly:    f.IsEcoFriendly,
		Notes:            optional(f.Notes),
	}, nil
}

// EventForm is the add/edit festival event form. The poster image is managed
// separately.
type EventForm struct {
	ID                string    `json:"id"`
	EventName         string    `json:"eventName" validate:"required"`
	Date              time.Time `json:"date" validate:"required"`
	StartTime         string    `json:"startTime" validate:"required"`
	EndTime           string    `json:"endTime" validate:"required"`
	Location          string    `json:"location" validate:"required"`
	FeaturedTrucks    List      `json:"featuredTrucks"`
	EntertainmentType string    `json:"entertainmentType"`
	HostName          string    `json:"hostName"`
	IsTicketRequired  bool      `json:"isTicketRequired"`
	Notes             string    `json:"notes"`
}

func (f EventForm) Build() (domain.FestivalEvent, error) {
	f.EventName = strings.TrimSpace(f.EventName)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Location = strings.TrimSpace(f.Location)
	if err := check(f); err != nil {
		return domain.FestivalEvent{}, err
	}
	id, err := resolveID(f.ID)
	if err != nil {
		return domain.FestivalEvent{}, err
	}

	return domain.FestivalEvent{
		ID:                id,
		EventName:         f.EventName,
		Date:              f.Date,
		StartTime:         f.StartTime,
		EndTime:           f.EndTime,
		Location:          f.Location,
		FeaturedTrucks:    cleanList(f.FeaturedTrucks),
		EntertainmentType: strings.TrimSpace(f.EntertainmentType),
		HostName:          optional(f.HostName),
		IsTicketRequired:  f.IsTicketRequired,
		Notes:             optional(f.Notes),
	}, nil
}

type ItemForm struct {
	ID             string     `json:"id" validate:"omitempty,uuid"`
	ItemName       string     `json:"itemName" validate:"required"`
	Quantity       *int       `json:"quantity" validate:"required,gte=0"`
	Unit           string     `json:"unit"`
	IsPerishable   bool       `json:"isPerishable"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

type InventoryForm struct {
	ID                string     `json:"id"`
	TruckName         string     `json:"truckName" validate:"required"`
	InventoryItems    []ItemForm `json:"inventoryItems" validate:"dive"`
	LastRestockedDate time.Time  `json:"lastRestockedDate"`
	NextRestockDate   *time.Time `json:"nextRestockDate"`
	SupplierName      string     `json:"supplierName" validate:"required"`
	SupplierContact   string     `json:"supplierContact" validate:"required"`
	InventoryNotes    string     `json:"inventoryNotes"`
}

// Build validates the form. A zero LastRestockedDate becomes now.
func (f InventoryForm) Build(now time.Time) (domain.VendorInventory, error) {
	f.TruckName = strings.TrimSpace(f.TruckName)
	f.SupplierName = strings.TrimSpace(f.SupplierName)
	f.SupplierContact = strings.TrimSpace(f.SupplierContact)
	f.InventoryItems = slices.Clone(f.InventoryItems)
	for i := range f.InventoryItems {
		f.InventoryItems[i].ItemName = strings.TrimSpace(f.InventoryItems[i].ItemName)
	}
	if err := check(f); err != nil {
		return domain.VendorInventory{}, err
	}
	id, err := resolveID(f.ID)
	if err != nil {
		return domain.VendorInventory{}, err
	}

	items := make([]domain.InventoryItem, 0, len(f.InventoryItems))
	for _, in := range f.InventoryItems {
		itemID, err := resolveID(in.ID)
		if err != nil {
			return domain.VendorInventory{}, err
		}
		item := domain.InventoryItem{
			ID:           itemID,
			ItemName:     in.ItemName,
			Quantity:     *in.Quantity,
			Unit:         strings.TrimSpace(in.Unit),
			IsPerishable: in.IsPerishable,
		}
		// Only perishable items carry an expiration date.
		if in.IsPerishable {
			item.ExpirationDate = in.ExpirationDate
		}
		items = append(items, item)
	}

	restocked := f.LastRestockedDate
	if restocked.IsZero() {
		restocked = now
	}

	return domain.VendorInventory{
		ID:                id,
		TruckName:         f.TruckName,
		InventoryItems:    items,
		LastRestockedDate: restocked,
		NextRestockDate:   f.NextRestockDate,
		SupplierName:      f.SupplierName,
		SupplierContact:   f.SupplierContact,
		InventoryNotes:    optional(f.InventoryNotes),
	}, nil
}

type PlanForm struct {
	ID                string    `json:"id"`
	TruckName         string    `json:"truckName" validate:"required"`
	DeliveryDate      time.Time `json:"deliveryDate" validate:"required"`
	ArrivalTime       string    `json:"arrivalTime" validate:"required"`
	BoothAssignment   string    `json:"boothAssignment" validate:"required"`
	ParkingZone       string    `json:"parkingZone"`
	SetupRequirements []string  `json:"setupRequirements" validate:"unique,dive,setupoption"`
	SecurityClearance bool      `json:"securityClearance"`
	LogisticsContact  string    `json:"logisticsContact" validate:"required"`
	LogisticsNotes    string    `json:"logisticsNotes"`
}

func (f PlanForm) Build() (domain.LogisticsPlan, error) {
	f.TruckName = strings.TrimSpace(f.TruckName)
	f.ArrivalTime = strings.TrimSpace(f.ArrivalTime)
	f.BoothAssignment = strings.TrimSpace(f.BoothAssignment)
	f.LogisticsContact = strings.TrimSpace(f.LogisticsContact)
	if err := check(f); err != nil {
		return domain.LogisticsPlan{}, err
	}
	id, err := resolveID(f.ID)
	if err != nil {
		return domain.LogisticsPlan{}, err
	}

	return domain.LogisticsPlan{
		ID:                id,
		TruckName:         f.TruckName,
		DeliveryDate:      f.DeliveryDate,
		ArrivalTime:       f.ArrivalTime,
		BoothAssignment:   f.BoothAssignment,
		ParkingZone:       strings.TrimSpace(f.ParkingZone),
		SetupRequirements: f.SetupRequirements,
		SecurityClearance: f.SecurityClearance,
		LogisticsContact:  f.LogisticsContact,
		LogisticsNotes:    optional(f.LogisticsNotes),
	}, nil
}
