package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"marketrate-backend/internal/models"
	"marketrate-backend/internal/quality"
)

func newFlagRouter(env *testEnv) *chi.Mux {
	engine := quality.NewEngine(env.feedbackRepo, env.listingRepo, env.flagRepo)
	h := NewFlagHandler(env.flagRepo, env.productRepo, env.listingRepo, engine)
	r := chi.NewRouter()
	r.Get("/api/v1/flags", h.ListFlags)
	r.Patch("/api/v1/flags/{id}", h.UpdateFlag)
	r.Post("/api/v1/flags/scan", h.TriggerScan)
	return r
}

func TestTriggerScanRaisesFlags(t *testing.T) {
	env := newTestEnv(t)
	_, seller, product := env.seed(t)
	ctx := context.Background()

	listing := &models.SellerProduct{SellerID: seller.ID, ProductID: product.ID, PriceCents: 500, IsActive: true}
	if err := env.listingRepo.Create(ctx, listing); err != nil {
		t.Fatalf("seed listing failed: %v", err)
	}
	// Backfill poor feedback directly so the scan, not the intake path, is
	// what raises the flags. Ten reviews satisfy both rule windows.
	for i := 0; i < 10; i++ {
		buyer := &models.Buyer{Email: fmt.Sprintf("scan%d@example.com", i)}
		if err := env.buyerRepo.Create(ctx, buyer); err != nil {
			t.Fatalf("seed buyer failed: %v", err)
		}
		fb := &models.Feedback{
			BuyerID:   buyer.ID,
			ProductID: product.ID,
			SellerID:  seller.ID,
			Rating:    1,
			CreatedAt: time.Now().UTC().Add(-time.Duration(i) * 24 * time.Hour),
		}
		if err := env.feedbackRepo.Create(ctx, fb); err != nil {
			t.Fatalf("seed feedback failed: %v", err)
		}
	}

	router := newFlagRouter(env)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/flags/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		ProductsScanned int `json:"products_scanned"`
		FlagsCreated    int `json:"flags_created"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode scan result: %v", err)
	}
	// One seller-product flag plus one product flag (sole active seller is poor).
	if result.ProductsScanned != 1 || result.FlagsCreated != 2 {
		t.Fatalf("unexpected scan result: %+v", result)
	}

	// A second scan must be a no-op while the flags stay open.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/flags/scan", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode scan result: %v", err)
	}
	if result.FlagsCreated != 0 {
		t.Fatalf("repeat scan created %d flags, want 0", result.FlagsCreated)
	}
}

func TestListFlagsFilteredByStatus(t *testing.T) {
	env := newTestEnv(t)
	_, seller, product := env.seed(t)
	ctx := context.Background()

	open := &models.Flag{
		EntityType: models.EntitySellerProduct,
		Severity:   models.SeverityMedium,
		ReasonCode: quality.ReasonPoorSellerPerformance,
		ProductID:  &product.ID,
		SellerID:   &seller.ID,
	}
	if err := env.flagRepo.CreateFlag(ctx, open); err != nil {
		t.Fatalf("seed flag failed: %v", err)
	}
	resolved := &models.Flag{
		EntityType: models.EntityProduct,
		Severity:   models.SeverityHigh,
		ReasonCode: quality.ReasonLowQualityProduct,
		ProductID:  &product.ID,
		Status:     models.FlagResolved,
	}
	if err := env.flagRepo.CreateFlag(ctx, resolved); err != nil {
		t.Fatalf("seed flag failed: %v", err)
	}

	router := newFlagRouter(env)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flags?status=OPEN", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var flags []models.Flag
	if err := json.Unmarshal(rec.Body.Bytes(), &flags); err != nil {
		t.Fatalf("failed to decode flags: %v", err)
	}
	if len(flags) != 1 || flags[0].ID != open.ID {
		t.Fatalf("expected only the open flag, got %+v", flags)
	}
}

func TestUpdateFlagStatus(t *testing.T) {
	env := newTestEnv(t)
	_, seller, product := env.seed(t)
	ctx := context.Background()

	flag := &models.Flag{
		EntityType: models.EntitySellerProduct,
		Severity:   models.SeverityMedium,
		ReasonCode: quality.ReasonPoorSellerPerformance,
		ProductID:  &product.ID,
		SellerID:   &seller.ID,
	}
	if err := env.flagRepo.CreateFlag(ctx, flag); err != nil {
		t.Fatalf("seed flag failed: %v", err)
	}

	router := newFlagRouter(env)
	patch := func(id, status string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/flags/"+id, bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := patch(flag.ID, "BOGUS"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rec.Code)
	}

	rec := patch(flag.ID, string(models.FlagResolved))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["updated"] {
		t.Fatal("expected updated=true")
	}

	stored, err := env.flagRepo.FindByID(ctx, flag.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Status != models.FlagResolved {
		t.Fatalf("expected RESOLVED, got %s", stored.Status)
	}

	if rec := patch("missing", string(models.FlagResolved)); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	} else {
		var r2 map[string]bool
		_ = json.Unmarshal(rec.Body.Bytes(), &r2)
		if r2["updated"] {
			t.Fatal("expected updated=false for a missing flag")
		}
	}
}
