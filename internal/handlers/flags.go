package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketrate-backend/internal/metrics"
	"marketrate-backend/internal/models"
	"marketrate-backend/internal/quality"
	"marketrate-backend/internal/repository"
)

// FlagHandler exposes flag administration, restricted to the ADMIN role by
// the router.
type FlagHandler struct {
	flagRepo    *repository.FlagRepo
	productRepo *repository.ProductRepo
	listingRepo *repository.SellerProductRepo
	engine      *quality.Engine
}

func NewFlagHandler(
	flagRepo *repository.FlagRepo,
	productRepo *repository.ProductRepo,
	listingRepo *repository.SellerProductRepo,
	engine *quality.Engine,
) *FlagHandler {
	return &FlagHandler{
		flagRepo:    flagRepo,
		productRepo: productRepo,
		listingRepo: listingRepo,
		engine:      engine,
	}
}

// --- GET /api/v1/flags ---

func (h *FlagHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := models.FlagStatus(q.Get("status"))
	entityType := models.EntityType(q.Get("entity_type"))

	flags, err := h.flagRepo.List(r.Context(), status, entityType)
	if err != nil {
		slog.Error("failed to list flags", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, flags)
}

// --- PATCH /api/v1/flags/{id} ---

func (h *FlagHandler) UpdateFlag(w http.ResponseWriter, r *http.Request) {
	flagID := chi.URLParam(r, "id")

	var req struct {
		Status models.FlagStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !models.ValidFlagStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.flagRepo.UpdateStatus(r.Context(), flagID, req.Status)
	if err != nil {
		slog.Error("failed to update flag", "error", err, "flag_id", flagID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

// --- POST /api/v1/flags/scan ---
// Re-runs both flag rules over the whole catalog: every product through the
// product rule, every active listing through the seller-product rule.

func (h *FlagHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.All(r.Context())
	if err != nil {
		slog.Error("failed to list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	created := 0
	for _, product := range products {
		listings, err := h.listingRepo.ActiveListings(r.Context(), product.ID)
		if err != nil {
			slog.Error("failed to list listings", "error", err, "product_id", product.ID)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		for _, sp := range listings {
			flag, err := h.engine.EvaluateSellerProduct(r.Context(), sp.SellerID, product.ID)
			if err != nil {
				slog.Error("seller-product evaluation failed", "error", err, "seller_id", sp.SellerID, "product_id", product.ID)
				continue
			}
			if flag != nil {
				metrics.FlagCreated(flag.ReasonCode)
				created++
			}
		}

		flag, err := h.engine.EvaluateProduct(r.Context(), product.ID)
		if err != nil {
			slog.Error("product evaluation failed", "error", err, "product_id", product.ID)
			continue
		}
		if flag != nil {
			metrics.FlagCreated(flag.ReasonCode)
			created++
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"products_scanned": len(products),
		"flags_created":    created,
	})
}
