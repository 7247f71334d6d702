package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/domain"
	"github.com/vbonduro/truckfest/internal/forms"
	"github.com/vbonduro/truckfest/internal/record"
	"github.com/vbonduro/truckfest/internal/store"
)

// ErrNotFound is returned when no record has the requested identity.
var ErrNotFound = errors.New("record not found")

// repository is the identity-keyed subset of record.Store the Planner needs.
type repository[T record.Record] interface {
	List() []T
	Get(id uuid.UUID) (T, bool)
	Add(r T) error
	Update(r T) bool
	Delete(id uuid.UUID) bool
	Clear()
	Subscribe(fn func(record.Change[T])) func()
}

// truckRepository is the subset of store.TruckStore that Planner requires.
type truckRepository interface {
	repository[domain.FoodTruck]
	Search(query string) []domain.FoodTruck
	FilterByCuisineType(cuisineType string) []domain.FoodTruck
	EcoFriendly() []domain.FoodTruck
	TotalMenuItems() int
	CountByCuisineType() map[string]int
}

// eventRepository is the subset of store.EventStore that Planner requires.
type eventRepository interface {
	repository[domain.FestivalEvent]
	Search(query string) []domain.FestivalEvent
	FilterByDate(day time.Time) []domain.FestivalEvent
	RequiringTickets() []domain.FestivalEvent
	UniqueEntertainmentTypes() []string
	CountByEntertainmentType() map[string]int
}

// inventoryRepository is the subset of store.InventoryStore that Planner requires.
type inventoryRepository interface {
	repository[domain.VendorInventory]
	Search(query string) []domain.VendorInventory
	FilterByTruckName(truckName string) []domain.VendorInventory
	WithPerishableItems() []domain.VendorInventory
	ItemsNeedingRestock(threshold int) []domain.InventoryItem
	RestockReport(threshold int) []store.RestockEntry
	ExpiringBefore(t time.Time) []domain.InventoryItem
}

// planRepository is the subset of store.PlanStore that Planner requires.
type planRepository interface {
	repository[domain.LogisticsPlan]
	Search(query string) []domain.LogisticsPlan
	FilterByTruckName(truckName string) []domain.LogisticsPlan
	WithSecurityClearance() []domain.LogisticsPlan
	UniqueParkingZones() []string
	CountByParkingZone() map[string]int
}

// Planner is the festival planning service over the four entity stores.
type Planner struct {
	trucks      truckRepository
	events      eventRepository
	inventories inventoryRepository
	plans       planRepository
	logger      *slog.Logger
	now         func() time.Time
	cancels     []func()
}

func NewPlanner(
	trucks truckRepository,
	events eventRepository,
	inventories inventoryRepository,
	plans planRepository,
	logger *slog.Logger,
) *Planner {
	p := &Planner{
		trucks:      trucks,
		events:      events,
		inventories: inventories,
		plans:       plans,
		logger:      logger,
		now:         time.Now,
	}
	p.cancels = []func(){
		watch[domain.FoodTruck](trucks, logger.With("entity", "truck")),
		watch[domain.FestivalEvent](events, logger.With("entity", "event")),
		watch[domain.VendorInventory](inventories, logger.With("entity", "inventory")),
		watch[domain.LogisticsPlan](plans, logger.With("entity", "plan")),
	}
	return p
}

// Close drops the Planner's store subscriptions.
func (p *Planner) Close() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
}

// Reset empties every collection.
func (p *Planner) Reset() {
	p.trucks.Clear()
	p.events.Clear()
	p.inventories.Clear()
	p.plans.Clear()
	p.logger.Info("all records cleared")
}

func watch[T record.Record](repo repository[T], logger *slog.Logger) func() {
	return repo.Subscribe(func(c record.Change[T]) {
		logger.Debug("record changed", "op", c.Op, "id", c.ID, "removed", c.Removed)
	})
}

func get[T record.Record](repo repository[T], id uuid.UUID) (T, error) {
	r, ok := repo.Get(id)
	if !ok {
		return r, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

// save adds r when its identity is new and replaces the stored record
// otherwise. keep copies fields the form does not carry from the stored
// record into r.
func save[T record.Record](repo repository[T], r T, keep func(stored T, r *T)) (T, error) {
	if stored, ok := repo.Get(r.Identity()); ok {
		if keep != nil {
			keep(stored, &r)
		}
		if repo.Update(r) {
			return r, nil
		}
		// Deleted between Get and Update; fall through and add it back.
	}
	if err := repo.Add(r); err != nil {
		return r, fmt.Errorf("failed to add record: %w", err)
	}
	return r, nil
}

// replace updates an existing record only.
func replace[T record.Record](repo repository[T], r T, keep func(stored T, r *T)) (T, error) {
	stored, ok := repo.Get(r.Identity())
	if !ok {
		return r, fmt.Errorf("%w: %s", ErrNotFound, r.Identity())
	}
	if keep != nil {
		keep(stored, &r)
	}
	if !repo.Update(r) {
		return r, fmt.Errorf("%w: %s", ErrNotFound, r.Identity())
	}
	return r, nil
}

func remove[T record.Record](repo repository[T], id uuid.UUID) error {
	if !repo.Delete(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// narrow keeps the records of base whose identity also appears in subset.
func narrow[T record.Record](base, subset []T) []T {
	ids := make(map[uuid.UUID]bool, len(subset))
	for _, r := range subset {
		ids[r.Identity()] = true
	}
	out := make([]T, 0, len(base))
	for _, r := range base {
		if ids[r.Identity()] {
			out = append(out, r)
		}
	}
	return out
}

func keepTruckImage(stored domain.FoodTruck, t *domain.FoodTruck) { t.TruckImage = stored.TruckImage }

func keepPoster(stored domain.FestivalEvent, e *domain.FestivalEvent) {
	e.PosterImage = stored.PosterImage
}

// Trucks

type TruckQuery struct {
	Search      string
	CuisineType string
}

func (p *Planner) Trucks(q TruckQuery) []domain.FoodTruck {
	out := p.trucks.List()
	if q.Search != "" {
		out = p.trucks.Search(q.Search)
	}
	if q.CuisineType != "" {
		out = narrow(out, p.trucks.FilterByCuisineType(q.CuisineType))
	}
	return out
}

func (p *Planner) Truck(id uuid.UUID) (domain.FoodTruck, error) {
	return get[domain.FoodTruck](p.trucks, id)
}

// SaveTruck adds the truck described by the form, or replaces the one with
// the form's id. A stored truck image is kept.
func (p *Planner) SaveTruck(form forms.TruckForm) (domain.FoodTruck, error) {
	t, err := form.Build()
	if err != nil {
		return t, err
	}
	return save[domain.FoodTruck](p.trucks, t, keepTruckImage)
}

// UpdateTruck replaces truck id and fails with ErrNotFound if it is absent.
func (p *Planner) UpdateTruck(id uuid.UUID, form forms.TruckForm) (domain.FoodTruck, error) {
	form.ID = id.String()
	t, err := form.Build()
	if err != nil {
		return t, err
	}
	return replace[domain.FoodTruck](p.trucks, t, keepTruckImage)
}

func (p *Planner) DeleteTruck(id uuid.UUID) error {
	return remove[domain.FoodTruck](p.trucks, id)
}

// SetTruckImage stores data as the truck image; nil removes it.
func (p *Planner) SetTruckImage(id uuid.UUID, data []byte) error {
	t, err := get[domain.FoodTruck](p.trucks, id)
	if err != nil {
		return err
	}
	t.TruckImage = data
	_, err = replace[domain.FoodTruck](p.trucks, t, nil)
	return err
}

// Events

type EventQuery struct {
	Search   string
	Date     *time.Time
	Ticketed bool
}

func (p *Planner) Events(q EventQuery) []domain.FestivalEvent {
	out := p.events.List()
	if q.Search != "" {
		out = p.events.Search(q.Search)
	}
	if q.Date != nil {
		out = narrow(out, p.events.FilterByDate(*q.Date))
	}
	if q.Ticketed {
		out = narrow(out, p.events.RequiringTickets())
	}
	return out
}

func (p *Planner) Event(id uuid.UUID) (domain.FestivalEvent, error) {
	return get[domain.FestivalEvent](p.events, id)
}

func (p *Planner) SaveEvent(form forms.EventForm) (domain.FestivalEvent, error) {
	e, err := form.Build()
	if err != nil {
		return e, err
	}
	return save[domain.FestivalEvent](p.events, e, keepPoster)
}

func (p *Planner) UpdateEvent(id uuid.UUID, form forms.EventForm) (domain.FestivalEvent, error) {
	form.ID = id.String()
	e, err := form.Build()
	if err != nil {
		return e, err
	}
	return replace[domain.FestivalEvent](p.events, e, keepPoster)
}

func (p *Planner) DeleteEvent(id uuid.UUID) error {
	return remove[domain.FestivalEvent](p.events, id)
}

func (p *Planner) SetEventPoster(id uuid.UUID, data []byte) error {
	e, err := get[domain.FestivalEvent](p.events, id)
	if err != nil {
		return err
	}
	e.PosterImage = data
	_, err = replace[domain.FestivalEvent](p.events, e, nil)
	return err
}

// Inventories

type InventoryQuery struct {
	Search     string
	TruckName  string
	Perishable bool
}

func (p *Planner) Inventories(q InventoryQuery) []domain.VendorInventory {
	out := p.inventories.List()
	if q.Search != "" {
		out = p.inventories.Search(q.Search)
	}
	if q.TruckName != "" {
		out = narrow(out, p.inventories.FilterByTruckName(q.TruckName))
	}
	if q.Perishable {
		out = narrow(out, p.inventories.WithPerishableItems())
	}
	return out
}

func (p *Planner) Inventory(id uuid.UUID) (domain.VendorInventory, error) {
	return get[domain.VendorInventory](p.inventories, id)
}

func (p *Planner) SaveInventory(form forms.InventoryForm) (domain.VendorInventory, error) {
	v, err := form.Build(p.now())
	if err != nil {
		return v, err
	}
	return save[domain.VendorInventory](p.inventories, v, nil)
}

func (p *Planner) UpdateInventory(id uuid.UUID, form forms.InventoryForm) (domain.VendorInventory, error) {
	form.ID = id.String()
	v, err := form.Build(p.now())
	if err != nil {
		return v, err
	}
	return replace[domain.VendorInventory](p.inventories, v, nil)
}

func (p *Planner) DeleteInventory(id uuid.UUID) error {
	return remove[domain.VendorInventory](p.inventories, id)
}

// Restock lists every item at or below threshold with its inventory.
func (p *Planner) Restock(threshold int) []store.RestockEntry {
	return p.inventories.RestockReport(threshold)
}

// Expiring lists perishable items whose expiration date is before t.
func (p *Planner) Expiring(t time.Time) []domain.InventoryItem {
	return p.inventories.ExpiringBefore(t)
}

// Plans

type PlanQuery struct {
	Search    string
	TruckName string
	Cleared   bool
}

func (p *Planner) Plans(q PlanQuery) []domain.LogisticsPlan {
	out := p.plans.List()
	if q.Search != "" {
		out = p.plans.Search(q.Search)
	}
	if q.TruckName != "" {
		out = narrow(out, p.plans.FilterByTruckName(q.TruckName))
	}
	if q.Cleared {
		out = narrow(out, p.plans.WithSecurityClearance())
	}
	return out
}

func (p *Planner) Plan(id uuid.UUID) (domain.LogisticsPlan, error) {
	return get[domain.LogisticsPlan](p.plans, id)
}

func (p *Planner) SavePlan(form forms.PlanForm) (domain.LogisticsPlan, error) {
	lp, err := form.Build()
	if err != nil {
		return lp, err
	}
	return save[domain.LogisticsPlan](p.plans, lp, nil)
}

func (p *Planner) UpdatePlan(id uuid.UUID, form forms.PlanForm) (domain.LogisticsPlan, error) {
	form.ID = id.String()
	lp, err := form.Build()
	if err != nil {
		return lp, err
	}
	return replace[domain.LogisticsPlan](p.plans, lp, nil)
}

func (p *Planner) DeletePlan(id uuid.UUID) error {
	return remove[domain.LogisticsPlan](p.plans, id)
}
