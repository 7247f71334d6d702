package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID mints the identity for a record that has never been stored.
func NewID() uuid.UUID {
	return uuid.New()
}

type FoodTruck struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	CuisineType      string            `json:"cuisineType"`
	SpecialtyDish    string            `json:"specialtyDish"`
	MenuItems        []string          `json:"menuItems"`
	OwnerName        string            `json:"ownerName"`
	ContactEmail     string            `json:"contactEmail"`
	ContactNumber    string            `json:"contactNumber"`
	SocialMediaLinks map[string]string `json:"socialMediaLinks"`
	OperatingHours   string            `json:"operatingHours"`
	TruckImage       []byte            `json:"truckImageData"`
	FoodAllergenInfo *string           `json:"foodAllergenInfo,omitempty"`
	IsEcoFriendly    bool              `json:"isEcoFriendly"`
	Notes            *string           `json:"notes,omitempty"`
}

func (t FoodTruck) Identity() uuid.UUID { return t.ID }

type FestivalEvent struct {
	ID                uuid.UUID `json:"id"`
	EventName         string    `json:"eventName"`
	Date              time.Time `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	Location          string    `json:"location"`
	FeaturedTrucks    []string  `json:"featuredTrucks"`
	EntertainmentType string    `json:"entertainmentType"`
	HostName          *string   `json:"hostName,omitempty"`
	IsTicketRequired  bool      `json:"isTicketRequired"`
	PosterImage       []byte    `json:"eventPosterImageData"`
	Notes             *string   `json:"notes,omitempty"`
}

func (e FestivalEvent) Identity() uuid.UUID { return e.ID }

type VendorInventory struct {
	ID                uuid.UUID       `json:"id"`
	TruckName         string          `json:"truckName"`
	InventoryItems    []InventoryItem `json:"inventoryItems"`
	LastRestockedDate time.Time       `json:"lastRestockedDate"`
	NextRestockDate   *time.Time      `json:"nextRestockDate,omitempty"`
	SupplierName      string          `json:"supplierName"`
	SupplierContact   string          `json:"supplierContact"`
	InventoryNotes    *string         `json:"inventoryNotes,omitempty"`
}

func (v VendorInventory) Identity() uuid.UUID { return v.ID }

// InventoryItem is owned by exactly one VendorInventory and is only ever
// stored as part of it.
type InventoryItem struct {
	ID             uuid.UUID  `json:"id"`
	ItemName       string     `json:"itemName"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	IsPerishable   bool       `json:"isPerishable"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}

type LogisticsPlan struct {
	ID                uuid.UUID `json:"id"`
	TruckName         string    `json:"truckName"`
	DeliveryDate      time.Time `json:"deliveryDate"`
	ArrivalTime       string    `json:"arrivalTime"`
	BoothAssignment   string    `json:"boothAssignment"`
	ParkingZone       string    `json:"parkingZone"`
	SetupRequirements []string  `json:"setupRequirements"`
	SecurityClearance bool      `json:"securityClearance"`
	LogisticsContact  string    `json:"logisticsContact"`
	LogisticsNotes    *string   `json:"logisticsNotes,omitempty"`
}

func (p LogisticsPlan) Identity() uuid.UUID { return p.ID }
