package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
	"github.com/buildtall-systems/stockroom/internal/engine"
)

type recordingNotifier struct {
	delays      int
	outOfStock  int
	expirations int
}

func (r *recordingNotifier) SendDelayNotification(context.Context, int, string) { r.delays++ }
func (r *recordingNotifier) SendOutOfStockNotification(context.Context, string) { r.outOfStock++ }
func (r *recordingNotifier) SendExpirationNotification(context.Context, string, db.Date) {
	r.expirations++
}

func setupServer(t *testing.T) (http.Handler, *db.DB, *recordingNotifier) {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		t.Fatalf("migrating test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	notifier := &recordingNotifier{}
	clock := engine.FixedClock{Date: db.NewDate(2024, time.June, 15)}
	eng := engine.New(database, notifier, clock, zap.NewNop())
	srv := New(database, eng, zap.NewNop())
	return srv.Router(), database, notifier
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProduct(t *testing.T) {
	router, _, _ := setupServer(t)

	rec := doJSON(t, router, http.MethodPost, "/products", ProductPayload{
		Type: 3, Name: "Milk", Available: 2, ExpiryDate: db.NewDate(2024, time.June, 20),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var got ProductPayload
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID == 0 {
		t.Error("expected assigned id")
	}
	if got.Name != "Milk" || got.Type != 3 || got.Available != 2 {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got.ExpiryDate.String() != "2024-06-20" {
		t.Errorf("expected expiry 2024-06-20, got %s", got.ExpiryDate)
	}
}

func TestCreateProductValidation(t *testing.T) {
	router, _, _ := setupServer(t)

	tests := []struct {
		name    string
		payload ProductPayload
	}{
		{"empty name", ProductPayload{Type: 1, Available: 1}},
		{"negative available", ProductPayload{Type: 1, Name: "x", Available: -1}},
		{"negative lead time", ProductPayload{Type: 1, Name: "x", LeadTime: -1}},
		{"unknown type", ProductPayload{Type: 7, Name: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/products", tt.payload)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	router, database, _ := setupServer(t)
	ctx := context.Background()

	created, err := database.CreateProduct(ctx, &db.Product{
		Type: db.TypeNormal, Name: "Mug", Available: 0, LeadTime: 2,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	rec := doJSON(t, router, http.MethodPut, "/products/1", ProductPayload{
		Type: 1, Name: "Mug XL", Available: 10, LeadTime: 4,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var got ProductPayload
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Name != "Mug XL" || got.Available != 10 || got.LeadTime != 4 {
		t.Errorf("unexpected payload: %+v", got)
	}

	stored, err := database.GetProductByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if stored.Available != 10 {
		t.Errorf("expected stored available 10, got %d", stored.Available)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	router, _, _ := setupServer(t)

	rec := doJSON(t, router, http.MethodPut, "/products/42", ProductPayload{
		Type: 1, Name: "Ghost",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateProductBadID(t *testing.T) {
	router, _, _ := setupServer(t)

	rec := doJSON(t, router, http.MethodPut, "/products/abc", ProductPayload{
		Type: 1, Name: "Ghost",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestProcessOrder(t *testing.T) {
	router, database, notifier := setupServer(t)
	ctx := context.Background()

	p, err := database.CreateProduct(ctx, &db.Product{
		Type: db.TypeNormal, Name: "Cable", Available: 5, LeadTime: 3,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	order, err := database.CreateOrder(ctx, []int64{p.ID})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/orders/1/processOrder", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var got ProcessOrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != order.ID {
		t.Errorf("expected order id %d, got %d", order.ID, got.ID)
	}

	stored, err := database.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if stored.Available != 4 {
		t.Errorf("expected available 4, got %d", stored.Available)
	}
	if notifier.delays+notifier.outOfStock+notifier.expirations != 0 {
		t.Errorf("expected no notifications, got %+v", notifier)
	}
}

func TestProcessOrderNotFound(t *testing.T) {
	router, _, notifier := setupServer(t)

	rec := doJSON(t, router, http.MethodPost, "/orders/999/processOrder", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body)
	}
	if notifier.delays+notifier.outOfStock+notifier.expirations != 0 {
		t.Errorf("expected no notifications, got %+v", notifier)
	}
}

func TestProcessOrderBadID(t *testing.T) {
	router, _, _ := setupServer(t)

	rec := doJSON(t, router, http.MethodPost, "/orders/abc/processOrder", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router, _, _ := setupServer(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
