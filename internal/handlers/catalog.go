package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"marketrate-backend/internal/models"
	"marketrate-backend/internal/repository"
)

// CatalogHandler covers entity registration: buyers, sellers, products and
// seller-product listings.
type CatalogHandler struct {
	buyerRepo   *repository.BuyerRepo
	sellerRepo  *repository.SellerRepo
	productRepo *repository.ProductRepo
	listingRepo *repository.SellerProductRepo
}

func NewCatalogHandler(
	buyerRepo *repository.BuyerRepo,
	sellerRepo *repository.SellerRepo,
	productRepo *repository.ProductRepo,
	listingRepo *repository.SellerProductRepo,
) *CatalogHandler {
	return &CatalogHandler{
		buyerRepo:   buyerRepo,
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		listingRepo: listingRepo,
	}
}

// --- POST /api/v1/buyers ---

func (h *CatalogHandler) CreateBuyer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	buyer := &models.Buyer{Email: req.Email}
	if err := h.buyerRepo.Create(r.Context(), buyer); err != nil {
		slog.Error("failed to create buyer", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create buyer"})
		return
	}
	writeJSON(w, http.StatusCreated, buyer)
}

// --- POST /api/v1/sellers ---

func (h *CatalogHandler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	seller := &models.Seller{Name: req.Name}
	if err := h.sellerRepo.Create(r.Context(), seller); err != nil {
		slog.Error("failed to create seller", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create seller"})
		return
	}
	writeJSON(w, http.StatusCreated, seller)
}

// --- POST /api/v1/products ---

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		SKU  string `json:"sku"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	product := &models.Product{Name: req.Name, SKU: req.SKU}
	if err := h.productRepo.Create(r.Context(), product); err != nil {
		slog.Error("failed to create product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create product"})
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// --- POST /api/v1/seller-products ---

type CreateListingRequest struct {
	SellerID   string `json:"seller_id"`
	ProductID  string `json:"product_id"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

func (h *CatalogHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	seller, err := h.sellerRepo.FindByID(r.Context(), req.SellerID)
	if err != nil {
		slog.Error("failed to look up seller", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	product, err := h.productRepo.FindByID(r.Context(), req.ProductID)
	if err != nil {
		slog.Error("failed to look up product", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if seller == nil || product == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seller/product"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	listing := &models.SellerProduct{
		SellerID:   req.SellerID,
		ProductID:  req.ProductID,
		PriceCents: req.PriceCents,
		Currency:   currency,
		IsActive:   true,
	}
	if err := h.listingRepo.Create(r.Context(), listing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "seller already lists this product"})
			return
		}
		slog.Error("failed to create listing", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create listing"})
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}
