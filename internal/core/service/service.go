// Package service holds the storefront core: store and product
// registries, leads, and the catalog ingestion orchestration.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
	"github.com/paratodos/storefront/pkg/slug"
)

var _ port.StoresService = (*Service)(nil)
var _ port.ProductsService = (*Service)(nil)
var _ port.LeadsService = (*Service)(nil)

type Service struct {
	stores           port.StoresRepository
	products         port.ProductsRepository
	leads            port.LeadsRepository
	files            port.FileStore
	textExtractor    port.TextExtractor
	productExtractor port.ProductExtractor
	placeholderImage string
}

func New(
	stores port.StoresRepository,
	products port.ProductsRepository,
	leads port.LeadsRepository,
	files port.FileStore,
	textExtractor port.TextExtractor,
	productExtractor port.ProductExtractor,
	placeholderImage string,
) Service {
	return Service{
		stores,
		products,
		leads,
		files,
		textExtractor,
		productExtractor,
		placeholderImage,
	}
}

// CreateStore persists the store with a fresh slug and both uploads,
// then runs catalog ingestion. Ingestion is best-effort: once the
// store row is committed, any pipeline failure degrades to
// ProductsExtracted == 0 and never fails the creation.
func (s Service) CreateStore(
	ctx context.Context, draft domain.StoreDraft,
) (domain.StoreReceipt, error) {
	const op = "Service.CreateStore"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateStoreDraft(draft); err != nil {
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	storeSlug, err := s.freeSlug(ctx, draft.Name)
	if err != nil {
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	logoName, err := s.files.SaveFile(
		storeSlug, draft.Logo.Filename, draft.Logo.Data,
	)
	if err != nil {
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	catalogName, err := s.files.SaveFile(
		storeSlug, draft.Catalog.Filename, draft.Catalog.Data,
	)
	if err != nil {
		s.cleanupUploads(storeSlug)
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	store := domain.Store{
		Name:        strings.TrimSpace(draft.Name),
		Slug:        storeSlug,
		Description: draft.Description,
		Owner:       draft.Owner,
		Email:       draft.Email,
		Phone:       draft.Phone,
		Instagram:   draft.Instagram,
		Address:     draft.Address,
		Color:       draft.Color,
		Logo:        logoName,
		Catalog:     catalogName,
	}

	if err := s.stores.SaveStore(ctx, &store); err != nil {
		s.cleanupUploads(storeSlug)
		return domain.StoreReceipt{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("store created", "slug", store.Slug, "id", store.ID)

	extracted := s.ingestCatalog(ctx, store)

	return domain.StoreReceipt{
		Slug:              store.Slug,
		ProductsExtracted: extracted,
	}, nil
}

// ingestCatalog runs the extraction pipeline for a committed store
// and returns the number of products persisted. Every failure is
// absorbed here.
func (s Service) ingestCatalog(ctx context.Context, store domain.Store) int {
	const op = "Service.ingestCatalog"
	log := slog.With("op", op, "slug", store.Slug)

	pdfPath, err := s.files.FilePath(store.Slug, store.Catalog)
	if err != nil {
		log.Error("failed to locate catalog file", "err", err)
		return 0
	}

	text, err := s.textExtractor.ExtractText(ctx, pdfPath)
	if err != nil {
		log.Error("failed to extract catalog text", "err", err)
		return 0
	}
	if text == "" {
		log.Info("catalog has no extractable text")
		return 0
	}

	records, err := s.productExtractor.ExtractProducts(ctx, text)
	if err != nil {
		log.Error("failed to extract products", "err", err)
		return 0
	}
	if len(records) == 0 {
		log.Info("model returned no products")
		return 0
	}

	ps := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		ps = append(ps, domain.Product{
			Name:        rec.Name,
			Description: rec.Description,
			Price:       rec.Price,
			Image:       s.placeholderImage,
			StoreID:     store.ID,
		})
	}

	if err := s.products.SaveProducts(ctx, ps); err != nil {
		log.Error("failed to save extracted products", "err", err)
		return 0
	}

	log.Info("catalog ingested", "nProducts", len(ps))
	return len(ps)
}

// freeSlug derives the base slug from the name and linearly probes
// base, base-1, base-2, ... until an unused one is found. The unique
// constraint remains the final arbiter for concurrent creations.
func (s Service) freeSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", domain.ValidationError(
			"store name must contain letters or digits",
		)
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := s.stores.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s Service) cleanupUploads(storeSlug string) {
	if err := s.files.RemoveDir(storeSlug); err != nil {
		slog.Error("failed to remove store uploads",
			"slug", storeSlug, "err", err)
	}
}

func validateStoreDraft(d domain.StoreDraft) error {
	name := strings.TrimSpace(d.Name)
	if len(name) < 2 {
		return domain.ValidationError(
			"store name must be at least 2 characters",
		)
	}
	if d.Logo.Data == nil || d.Logo.Filename == "" {
		return domain.ValidationError("logo file is required")
	}
	if d.Catalog.Data == nil || d.Catalog.Filename == "" {
		return domain.ValidationError("catalog file is required")
	}
	return nil
}

func (s Service) StoreBySlug(
	ctx context.Context, storeSlug string,
) (domain.Store, error) {
	const op = "Service.StoreBySlug"

	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("%s: %w", op, err)
	}

	store, err := s.stores.StoreBySlug(ctx, storeSlug)
	if err != nil {
		return domain.Store{}, fmt.Errorf("%s: %w", op, err)
	}
	return store, nil
}

func (s Service) Stores(ctx context.Context) ([]domain.Store, error) {
	const op = "Service.Stores"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stores, err := s.stores.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stores, nil
}

func (s Service) CreateProduct(
	ctx context.Context, draft domain.ProductDraft,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(draft.Name) == "" {
		return domain.Product{}, fmt.Errorf(
			"%s: %w", op, domain.ValidationError("product name is required"),
		)
	}

	store, err := s.stores.StoreBySlug(ctx, draft.StoreSlug)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	var image string
	if draft.Image != nil {
		image, err = s.files.SaveFile(
			store.Slug, draft.Image.Filename, draft.Image.Data,
		)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	product := domain.Product{
		Name:        strings.TrimSpace(draft.Name),
		Description: draft.Description,
		Price:       draft.Price,
		Related:     draft.Related,
		Image:       image,
		StoreID:     store.ID,
	}

	if err := s.products.SaveProduct(ctx, &product); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s Service) Product(
	ctx context.Context, id int64,
) (domain.ProductWithStore, error) {
	const op = "Service.Product"

	if err := ctx.Err(); err != nil {
		return domain.ProductWithStore{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return domain.ProductWithStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s Service) StoreProducts(
	ctx context.Context, storeSlug string,
) ([]domain.ProductWithStore, error) {
	const op = "Service.StoreProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store, err := s.stores.StoreBySlug(ctx, storeSlug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.products.ProductsByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vs := make([]domain.ProductWithStore, 0, len(products))
	for _, p := range products {
		vs = append(vs, domain.ProductWithStore{
			Product:        p,
			StoreName:      store.Name,
			StoreSlug:      store.Slug,
			StorePhone:     store.Phone,
			StoreInstagram: store.Instagram,
		})
	}
	return vs, nil
}

func (s Service) Products(
	ctx context.Context,
) ([]domain.ProductWithStore, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s Service) UpdateProduct(
	ctx context.Context, id int64, upd domain.ProductUpdate,
) error {
	const op = "Service.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(upd.Name) == "" {
		return fmt.Errorf(
			"%s: %w", op, domain.ValidationError("product name is required"),
		)
	}

	current, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	product := current.Product
	product.Name = strings.TrimSpace(upd.Name)
	product.Description = upd.Description
	product.Price = upd.Price
	product.Related = upd.Related

	if upd.Image != nil {
		stored, err := s.files.SaveFile(
			current.StoreSlug, upd.Image.Filename, upd.Image.Data,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		product.Image = stored
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateLead records interest in a product after checking that the
// product actually belongs to the given store.
func (s Service) CreateLead(
	ctx context.Context, productID, storeID int64,
) (domain.Lead, error) {
	const op = "Service.CreateLead"

	if err := ctx.Err(); err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	store, err := s.stores.StoreByID(ctx, storeID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	if product.StoreID != store.ID {
		return domain.Lead{}, fmt.Errorf("%s: %w", op,
			domain.ValidationError(
				"product does not belong to the specified store",
			),
		)
	}

	lead := domain.Lead{
		ProductID: product.ID,
		StoreID:   store.ID,
		Status:    domain.LeadStatusPending,
	}

	if err := s.leads.SaveLead(ctx, &lead); err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}
	return lead, nil
}

func (s Service) StoreLeadCount(
	ctx context.Context, storeSlug string,
) (int64, error) {
	const op = "Service.StoreLeadCount"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	store, err := s.stores.StoreBySlug(ctx, storeSlug)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.leads.CountLeadsByStore(ctx, store.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
