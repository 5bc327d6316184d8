package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"marketrate-backend/internal/quality"
	"marketrate-backend/internal/repository"
)

type ProductHandler struct {
	productRepo *repository.ProductRepo
	engine      *quality.Engine
}

func NewProductHandler(productRepo *repository.ProductRepo, engine *quality.Engine) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		engine:      engine,
	}
}

// --- GET /api/v1/products/{id}/feedback ---

func (h *ProductHandler) ProductFeedback(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if !h.requireProduct(w, r, productID) {
		return
	}

	agg, err := h.engine.ProductAggregate(r.Context(), productID)
	if err != nil {
		slog.Error("failed to aggregate product feedback", "error", err, "product_id", productID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id":       productID,
		"avg_rating":       agg.AvgRating,
		"review_count":     agg.ReviewCount,
		"last_reviewed_at": agg.LastReviewedAt,
	})
}

// --- GET /api/v1/products/{id}/recommendations ---

func (h *ProductHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if !h.requireProduct(w, r, productID) {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	recs, err := h.engine.RecommendSellers(r.Context(), productID, limit)
	if err != nil {
		slog.Error("failed to rank sellers", "error", err, "product_id", productID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// --- GET /api/v1/products/{id}/sellers ---

func (h *ProductHandler) Sellers(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if !h.requireProduct(w, r, productID) {
		return
	}

	stats, err := h.engine.ProductSellerStats(r.Context(), productID)
	if err != nil {
		slog.Error("failed to compute seller stats", "error", err, "product_id", productID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"sellers":    stats,
	})
}

// requireProduct writes a 404 and returns false when the product is unknown.
func (h *ProductHandler) requireProduct(w http.ResponseWriter, r *http.Request, productID string) bool {
	product, err := h.productRepo.FindByID(r.Context(), productID)
	if err != nil {
		slog.Error("failed to look up product", "error", err, "product_id", productID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return false
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return false
	}
	return true
}
