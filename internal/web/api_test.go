package web_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/truckfest/internal/db"
	"github.com/vbonduro/truckfest/internal/domain"
	kvsqlite "github.com/vbonduro/truckfest/internal/kv/sqlite"
	"github.com/vbonduro/truckfest/internal/metrics"
	"github.com/vbonduro/truckfest/internal/record"
	"github.com/vbonduro/truckfest/internal/service"
	"github.com/vbonduro/truckfest/internal/store"
	"github.com/vbonduro/truckfest/internal/web"
)

// minimalJPEG is 512 bytes with the JPEG magic bytes header followed by zeros.
var minimalJPEG = func() []byte {
	b := make([]byte, 512)
	b[0] = 0xFF
	b[1] = 0xD8
	b[2] = 0xFF
	b[3] = 0xE0
	return b
}()

// newTestServer wires the full stack over in-memory SQLite.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)

	m := metrics.New()
	backend := kvsqlite.NewKVStore(database)
	planner := service.NewPlanner(
		store.NewTruckStore(backend, record.WithObserver(m)),
		store.NewEventStore(backend, record.WithObserver(m)),
		store.NewInventoryStore(backend, record.WithObserver(m)),
		store.NewPlanStore(backend, record.WithObserver(m)),
		slog.Default(),
	)
	srv := httptest.NewServer(web.NewServer(planner, m, domain.DefaultRestockThreshold, slog.Default()))
	t.Cleanup(func() {
		srv.Close()
		planner.Close()
		_ = database.Close()
	})
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(data)
		}
		rd = bytes.NewBufferString(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func createTruck(t *testing.T, srv *httptest.Server, name string) domain.FoodTruck {
	t.Helper()
	resp, body := do(t, srv, http.MethodPost, "/api/trucks", map[string]any{
		"name":          name,
		"cuisineType":   "Mexican",
		"specialtyDish": "Al Pastor",
		"menuItems":     "Tacos, Burritos",
		"isEcoFriendly": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[domain.FoodTruck](t, body)
}

func TestTruckCRUD(t *testing.T) {
	srv := newTestServer(t)

	truck := createTruck(t, srv, "Taco Fiesta")
	assert.NotEqual(t, uuid.Nil, truck.ID)
	assert.Equal(t, []string{"Tacos", "Burritos"}, truck.MenuItems)

	resp, body := do(t, srv, http.MethodGet, "/api/trucks/"+truck.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, truck, decode[domain.FoodTruck](t, body))

	resp, body = do(t, srv, http.MethodPut, "/api/trucks/"+truck.ID.String(), map[string]any{
		"name":          "Taco Fiesta Deluxe",
		"specialtyDish": "Birria",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, truck.ID, decode[domain.FoodTruck](t, body).ID)

	resp, body = do(t, srv, http.MethodGet, "/api/trucks?q=deluxe", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]domain.FoodTruck](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Birria", list[0].SpecialtyDish)

	resp, _ = do(t, srv, http.MethodDelete, "/api/trucks/"+truck.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/trucks/"+truck.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodDelete, "/api/trucks/"+truck.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyListIsArray(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/trucks", "/api/events", "/api/inventories", "/api/plans", "/api/inventories/restock", "/api/inventories/expiring"} {
		resp, body := do(t, srv, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.JSONEq(t, `[]`, string(body), path)
	}
}

func TestValidationFailure(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/plans", map[string]any{
		"truckName":         "Taco Fiesta",
		"setupRequirements": []string{"Electricity"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	got := decode[struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}](t, body)
	assert.Equal(t, "Please fill in all required fields.", got.Error)
	assert.NotEmpty(t, got.Fields)

	resp, body = do(t, srv, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/api/trucks", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/trucks/42", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/events?date=July", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/plans?cleared=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/overview?threshold=-3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPut, "/api/trucks/"+uuid.NewString(), map[string]any{"name": "A", "specialtyDish": "B"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveWithExistingIDReplaces(t *testing.T) {
	srv := newTestServer(t)

	id := uuid.NewString()
	inventory := map[string]any{
		"id":              id,
		"truckName":       "Taco Fiesta",
		"supplierName":    "Fresh Farms",
		"supplierContact": "555-0100",
	}
	resp, body := do(t, srv, http.MethodPost, "/api/inventories", inventory)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// Saving the same id again replaces the record.
	inventory["supplierName"] = "Green Grocers"
	resp, body = do(t, srv, http.MethodPost, "/api/inventories", inventory)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, srv, http.MethodGet, "/api/inventories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]domain.VendorInventory](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Green Grocers", list[0].SupplierName)
}

func TestTruckImageUpload(t *testing.T) {
	srv := newTestServer(t)
	truck := createTruck(t, srv, "Picture Perfect")
	path := "/api/trucks/" + truck.ID.String() + "/image"

	resp, _ := do(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "no image yet")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", "truck.jpg")
	require.NoError(t, err)
	_, err = fw.Write(minimalJPEG)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPut, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	put, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = put.Body.Close()
	require.Equal(t, http.StatusNoContent, put.StatusCode)

	resp, data := do(t, srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, minimalJPEG, data)

	// Editing the truck keeps the image.
	resp, _ = do(t, srv, http.MethodPut, "/api/trucks/"+truck.ID.String(), map[string]any{"name": "Renamed", "specialtyDish": "Tacos"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEventPosterRejectsNonImage(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, srv, http.MethodPost, "/api/events", map[string]any{
		"eventName": "Opening",
		"date":      "2026-07-04T12:00:00Z",
		"startTime": "6:00 PM",
		"endTime":   "9:00 PM",
		"location":  "Main Stage",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	event := decode[domain.FestivalEvent](t, body)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/events/"+event.ID.String()+"/poster", bytes.NewBufferString("%PDF-1.4"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/pdf")
	put, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = put.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, put.StatusCode)

	req, err = http.NewRequest(http.MethodPut, srv.URL+"/api/events/"+event.ID.String()+"/poster", bytes.NewReader([]byte("GIF89a....")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "image/gif")
	put, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = put.Body.Close()
	assert.Equal(t, http.StatusNoContent, put.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/api/events?date=2026-07-04", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events := decode[[]domain.FestivalEvent](t, body)
	require.Len(t, events, 1)
	assert.Equal(t, []byte("GIF89a...."), events[0].PosterImage)
}

func TestOverviewAndRestock(t *testing.T) {
	srv := newTestServer(t)
	createTruck(t, srv, "Taco Fiesta")

	resp, body := do(t, srv, http.MethodPost, "/api/inventories", map[string]any{
		"truckName":       "Taco Fiesta",
		"supplierName":    "Fresh Farms",
		"supplierContact": "555-0100",
		"inventoryItems": []map[string]any{
			{"itemName": "Tortillas", "quantity": 2, "unit": "Packets", "isPerishable": true},
			{"itemName": "Salsa", "quantity": 5, "unit": "Liters"},
			{"itemName": "Napkins", "quantity": 10, "unit": "Boxes"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, srv, http.MethodGet, "/api/overview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := decode[service.Overview](t, body)
	assert.Equal(t, 1, overview.TotalTrucks)
	assert.Equal(t, 1, overview.EcoFriendlyTrucks)
	assert.Equal(t, 2, overview.TotalMenuItems)
	assert.Equal(t, 2, overview.ItemsNeedingRestock)
	assert.Equal(t, 1, overview.PerishableInventories)

	resp, body = do(t, srv, http.MethodGet, "/api/inventories/restock?threshold=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[[]store.RestockEntry](t, body)
	require.Len(t, report, 1)
	assert.Equal(t, "Tortillas", report[0].Item.ItemName)
	assert.Equal(t, "Taco Fiesta", report[0].TruckName)

	resp, body = do(t, srv, http.MethodGet, "/api/inventories/expiring?before=2000-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
	resp, _ = do(t, srv, http.MethodGet, "/api/inventories/expiring?before=soon", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cat := decode[map[string][]string](t, body)
	assert.Contains(t, cat["setupOptions"], "Electricity")
	assert.Contains(t, cat["parkingZones"], "Zone A")

	createTruck(t, srv, "Counted")

	resp, body = do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `truckfest_store_mutations_total{op="add",store="FoodTrucksData"} 1`)
	assert.Contains(t, string(body), `route="POST /api/trucks"`)
}
