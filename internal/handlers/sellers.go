package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketrate-backend/internal/quality"
	"marketrate-backend/internal/repository"
)

type SellerHandler struct {
	sellerRepo   *repository.SellerRepo
	productRepo  *repository.ProductRepo
	feedbackRepo *repository.FeedbackRepo
	engine       *quality.Engine
}

func NewSellerHandler(
	sellerRepo *repository.SellerRepo,
	productRepo *repository.ProductRepo,
	feedbackRepo *repository.FeedbackRepo,
	engine *quality.Engine,
) *SellerHandler {
	return &SellerHandler{
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
		engine:       engine,
	}
}

// --- GET /api/v1/sellers/{id}/products ---

func (h *SellerHandler) SellerProducts(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "id")
	seller, err := h.sellerRepo.FindByID(r.Context(), sellerID)
	if err != nil {
		slog.Error("failed to look up seller", "error", err, "seller_id", sellerID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if seller == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "seller not found"})
		return
	}

	stats, err := h.engine.SellerListingStats(r.Context(), sellerID)
	if err != nil {
		slog.Error("failed to compute listing stats", "error", err, "seller_id", sellerID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/v1/sellers/{id}/products/{productID}/feedback ---

func (h *SellerHandler) SellerProductFeedback(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productID")

	seller, err := h.sellerRepo.FindByID(r.Context(), sellerID)
	if err != nil {
		slog.Error("failed to look up seller", "error", err, "seller_id", sellerID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	product, err := h.productRepo.FindByID(r.Context(), productID)
	if err != nil {
		slog.Error("failed to look up product", "error", err, "product_id", productID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if seller == nil || product == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	items, err := h.feedbackRepo.List(r.Context(), "", productID, sellerID, 1, 0)
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}
