package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

type ProductsHandler struct {
	service port.ProductsService
}

func RegisterProducts(mux *http.ServeMux, service port.ProductsService) {
	h := ProductsHandler{service}
	mux.HandleFunc("GET /stores/{slug}/products", h.ListStoreProducts)
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("POST /products", h.CreateProduct)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /products/{id}", h.UpdateProduct)
}

func (h ProductsHandler) ListStoreProducts(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "ProductsHandler.ListStoreProducts"
	log := slog.With("op", op)

	products, err := h.service.StoreProducts(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		log.Warn("failed to list store products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductsResponse(products))
}

func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op)

	products, err := h.service.Products(r.Context())
	if err != nil {
		writeError(w, err)
		log.Error("failed to list products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductsResponse(products))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	id, ok := productID(w, r)
	if !ok {
		return
	}

	v, err := h.service.Product(r.Context(), id)
	if err != nil {
		writeError(w, err)
		log.Warn("failed to get product", "id", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Success: true,
		Product: productDetail{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Price:       v.Price,
			Related:     v.Related,
			Image:       v.ImageURL(v.StoreSlug),
			Store: storeSummary{
				ID:        v.StoreID,
				Name:      v.StoreName,
				Slug:      v.StoreSlug,
				Phone:     v.StorePhone,
				Instagram: v.StoreInstagram,
			},
		},
	})
}

func (h ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.CreateProduct"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid multipart form"})
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	draft := domain.ProductDraft{
		StoreSlug:   r.FormValue("slug"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Related:     r.FormValue("related"),
	}

	image, ok := formUpload(w, r, "image")
	if image == nil && !ok {
		return
	}
	draft.Image = image

	product, err := h.service.CreateProduct(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		log.Error("failed to create product", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, createProductResponse{
		Success: true,
		Message: "product created",
		Product: productItem{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Related:     product.Related,
			Image:       product.ImageURL(draft.StoreSlug),
			StoreID:     product.StoreID,
			Slug:        draft.StoreSlug,
		},
	})

	log.Info("product created", "id", product.ID, "storeId", product.StoreID)
}

func (h ProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.UpdateProduct"
	log := slog.With("op", op)

	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid multipart form"})
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	upd := domain.ProductUpdate{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Related:     r.FormValue("related"),
	}

	image, ok := formUpload(w, r, "image")
	if image == nil && !ok {
		return
	}
	upd.Image = image

	if err := h.service.UpdateProduct(r.Context(), id, upd); err != nil {
		writeError(w, err)
		log.Warn("failed to update product", "id", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "product updated",
	})
}

func toProductsResponse(vs []domain.ProductWithStore) productsResponse {
	items := make([]productItem, 0, len(vs))
	for _, v := range vs {
		items = append(items, toProductItem(v))
	}
	return productsResponse{Success: true, Products: items}
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Message: "invalid product id"})
		return 0, false
	}
	return id, true
}
