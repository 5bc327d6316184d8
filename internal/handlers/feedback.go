package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"marketrate-backend/internal/metrics"
	"marketrate-backend/internal/models"
	"marketrate-backend/internal/notify"
	"marketrate-backend/internal/quality"
	"marketrate-backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type FeedbackHandler struct {
	buyerRepo    *repository.BuyerRepo
	sellerRepo   *repository.SellerRepo
	productRepo  *repository.ProductRepo
	listingRepo  *repository.SellerProductRepo
	feedbackRepo *repository.FeedbackRepo
	engine       *quality.Engine
	notifier     notify.Notifier
}

func NewFeedbackHandler(
	buyerRepo *repository.BuyerRepo,
	sellerRepo *repository.SellerRepo,
	productRepo *repository.ProductRepo,
	listingRepo *repository.SellerProductRepo,
	feedbackRepo *repository.FeedbackRepo,
	engine *quality.Engine,
	notifier notify.Notifier,
) *FeedbackHandler {
	return &FeedbackHandler{
		buyerRepo:    buyerRepo,
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		listingRepo:  listingRepo,
		feedbackRepo: feedbackRepo,
		engine:       engine,
		notifier:     notifier,
	}
}

type SubmitFeedbackRequest struct {
	BuyerID   string `json:"buyer_id"`
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// --- POST /api/v1/feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rating must be between 1 and 5"})
		return
	}

	buyer, err := h.buyerRepo.FindByID(r.Context(), req.BuyerID)
	if err != nil {
		slog.Error("failed to look up buyer", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	product, err := h.productRepo.FindByID(r.Context(), req.ProductID)
	if err != nil {
		slog.Error("failed to look up product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	seller, err := h.sellerRepo.FindByID(r.Context(), req.SellerID)
	if err != nil {
		slog.Error("failed to look up seller", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if buyer == nil || product == nil || seller == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid buyer/product/seller"})
		return
	}

	// Feedback can be recorded even when the pair has no listing.
	listing, err := h.listingRepo.FindListing(r.Context(), req.SellerID, req.ProductID)
	if err != nil {
		slog.Error("failed to look up listing", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	feedback := &models.Feedback{
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		SellerID:  req.SellerID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if listing != nil {
		feedback.SellerProductID = &listing.ID
	}

	if err := h.feedbackRepo.Create(r.Context(), feedback); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate feedback for this buyer/product/seller"})
			return
		}
		slog.Error("failed to create feedback", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to submit feedback"})
		return
	}
	metrics.FeedbackSubmitted()

	// Flags are a side effect of the submission, never part of its response.
	// An evaluation failure is logged but does not undo the accepted write.
	flags, err := h.engine.EvaluateSubmission(r.Context(), req.SellerID, req.ProductID)
	if err != nil {
		slog.Error("flag evaluation failed", "error", err, "product_id", req.ProductID, "seller_id", req.SellerID)
	}
	for _, flag := range flags {
		metrics.FlagCreated(flag.ReasonCode)
		go func(f *models.Flag) {
			subject, message := formatFlagAlert(f)
			if err := h.notifier.Publish(context.Background(), subject, message); err != nil {
				slog.Error("failed to publish flag alert", "error", err, "flag_id", f.ID)
			}
		}(flag)
	}

	writeJSON(w, http.StatusCreated, feedback)
}

// --- GET /api/v1/feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntParam(q.Get("page"), 1)
	pageSize := parseIntParam(q.Get("page_size"), defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, err := h.feedbackRepo.List(
		r.Context(),
		q.Get("buyer_id"), q.Get("product_id"), q.Get("seller_id"),
		page, pageSize,
	)
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func formatFlagAlert(f *models.Flag) (subject, message string) {
	subject = fmt.Sprintf("Quality flag raised: %s", f.ReasonCode)
	message = fmt.Sprintf("Entity: %s\nSeverity: %s\nReason: %s", f.EntityType, f.Severity, f.ReasonCode)
	if f.ProductID != nil {
		message += fmt.Sprintf("\nProduct: %s", *f.ProductID)
	}
	if f.SellerID != nil {
		message += fmt.Sprintf("\nSeller: %s", *f.SellerID)
	}
	return subject, message
}
