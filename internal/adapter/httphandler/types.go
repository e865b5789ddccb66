package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/paratodos/storefront/internal/core/domain"
)

type (
	storeListItem struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
		Logo string `json:"logo"`
	}

	storeDetail struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		Slug        string    `json:"slug"`
		Description string    `json:"description"`
		Owner       string    `json:"owner"`
		Email       string    `json:"email"`
		Phone       string    `json:"phone"`
		Instagram   string    `json:"instagram"`
		Address     string    `json:"address"`
		Color       string    `json:"color"`
		Logo        string    `json:"logo"`
		Catalog     string    `json:"catalog"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	productItem struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Related     string `json:"related"`
		Image       string `json:"image"`
		StoreID     int64  `json:"storeId"`
		Slug        string `json:"slug,omitempty"`
		Phone       string `json:"phone,omitempty"`
		Instagram   string `json:"instagram,omitempty"`
	}

	storeSummary struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Slug      string `json:"slug"`
		Phone     string `json:"phone"`
		Instagram string `json:"instagram"`
	}

	productDetail struct {
		ID          int64        `json:"id"`
		Name        string       `json:"name"`
		Description string       `json:"description"`
		Price       string       `json:"price"`
		Related     string       `json:"related"`
		Image       string       `json:"image"`
		Store       storeSummary `json:"store"`
	}
)

type (
	createStoreResponse struct {
		Success           bool   `json:"success"`
		Message           string `json:"message"`
		Slug              string `json:"slug"`
		ProductsExtracted int    `json:"productsExtracted"`
	}

	storeResponse struct {
		Success bool        `json:"success"`
		Store   storeDetail `json:"store"`
	}

	storesResponse struct {
		Success bool            `json:"success"`
		Stores  []storeListItem `json:"stores"`
	}

	productResponse struct {
		Success bool          `json:"success"`
		Product productDetail `json:"product"`
	}

	productsResponse struct {
		Success  bool          `json:"success"`
		Products []productItem `json:"products"`
	}

	messageResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	createProductResponse struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Product productItem `json:"product"`
	}

	leadResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		LeadID  int64  `json:"lead_id"`
	}

	countResponse struct {
		Success bool  `json:"success"`
		Count   int64 `json:"count"`
	}

	errorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

func toProductItem(v domain.ProductWithStore) productItem {
	return productItem{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Related:     v.Related,
		Image:       v.ImageURL(v.StoreSlug),
		StoreID:     v.StoreID,
		Slug:        v.StoreSlug,
		Phone:       v.StorePhone,
		Instagram:   v.StoreInstagram,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

// writeError maps core errors onto the {success:false, message}
// error shape.
func writeError(w http.ResponseWriter, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: ve.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict,
			errorResponse{Message: "a store with that name already exists"})
	default:
		writeJSON(w, http.StatusInternalServerError,
			errorResponse{Message: "internal error"})
	}
}
