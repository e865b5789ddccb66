package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

const (
	// maxMultipartMemory caps the in-memory part of a parsed form.
	maxMultipartMemory = 32 << 20
	// maxUploadBytes caps a single uploaded file.
	maxUploadBytes = 25 << 20
)

type StoresHandler struct {
	service port.StoresService
}

func RegisterStores(mux *http.ServeMux, service port.StoresService) {
	h := StoresHandler{service}
	mux.HandleFunc("POST /stores", h.CreateStore)
	mux.HandleFunc("GET /stores", h.ListStores)
	mux.HandleFunc("GET /stores/{slug}", h.GetStore)
}

func (h StoresHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.CreateStore"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid multipart form"})
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	draft := domain.StoreDraft{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Owner:       r.FormValue("owner"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Instagram:   r.FormValue("instagram"),
		Address:     r.FormValue("address"),
		Color:       r.FormValue("color"),
	}

	logo, ok := formUpload(w, r, "logo")
	if logo == nil && !ok {
		return
	}
	if logo != nil {
		draft.Logo = *logo
	}

	catalog, ok := formUpload(w, r, "catalog")
	if catalog == nil && !ok {
		return
	}
	if catalog != nil {
		draft.Catalog = *catalog
	}

	receipt, err := h.service.CreateStore(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		log.Error("failed to create store", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, createStoreResponse{
		Success:           true,
		Message:           "store created",
		Slug:              receipt.Slug,
		ProductsExtracted: receipt.ProductsExtracted,
	})

	log.Info("store created",
		"slug", receipt.Slug, "nProducts", receipt.ProductsExtracted)
}

func (h StoresHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.GetStore"
	log := slog.With("op", op)

	store, err := h.service.StoreBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		log.Warn("failed to get store", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, storeResponse{
		Success: true,
		Store: storeDetail{
			ID:          store.ID,
			Name:        store.Name,
			Slug:        store.Slug,
			Description: store.Description,
			Owner:       store.Owner,
			Email:       store.Email,
			Phone:       store.Phone,
			Instagram:   store.Instagram,
			Address:     store.Address,
			Color:       store.Color,
			Logo:        store.LogoURL(),
			Catalog:     store.Catalog,
			CreatedAt:   store.CreatedAt,
		},
	})
}

func (h StoresHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	const op = "StoresHandler.ListStores"
	log := slog.With("op", op)

	stores, err := h.service.Stores(r.Context())
	if err != nil {
		writeError(w, err)
		log.Error("failed to list stores", "err", err)
		return
	}

	items := make([]storeListItem, 0, len(stores))
	for _, s := range stores {
		items = append(items, storeListItem{
			ID:   s.ID,
			Name: s.Name,
			Slug: s.Slug,
			Logo: s.LogoURL(),
		})
	}

	writeJSON(w, http.StatusOK, storesResponse{Success: true, Stores: items})
}

// formUpload fetches an optional multipart file. It returns
// (nil, true) when the field is absent and (nil, false) after
// writing an error response.
func formUpload(
	w http.ResponseWriter, r *http.Request, field string,
) (*domain.FileUpload, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid " + field + " file"})
		return nil, false
	}

	if header.Size > maxUploadBytes {
		_ = file.Close()
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: field + " file is too large"})
		return nil, false
	}

	return &domain.FileUpload{Filename: header.Filename, Data: file}, true
}
