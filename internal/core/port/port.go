package port

import (
	"context"
	"io"

	"github.com/paratodos/storefront/internal/core/domain"
)

// Inbound ports implemented by the core service.

type StoresService interface {
	CreateStore(context.Context, domain.StoreDraft) (domain.StoreReceipt, error)
	StoreBySlug(context.Context, string) (domain.Store, error)
	Stores(context.Context) ([]domain.Store, error)
}

type ProductsService interface {
	CreateProduct(context.Context, domain.ProductDraft) (domain.Product, error)
	Product(context.Context, int64) (domain.ProductWithStore, error)
	StoreProducts(context.Context, string) ([]domain.ProductWithStore, error)
	Products(context.Context) ([]domain.ProductWithStore, error)
	UpdateProduct(context.Context, int64, domain.ProductUpdate) error
}

type LeadsService interface {
	CreateLead(ctx context.Context, productID, storeID int64) (domain.Lead, error)
	StoreLeadCount(context.Context, string) (int64, error)
}

// Outbound ports implemented by adapters.

type StoresRepository interface {
	SaveStore(context.Context, *domain.Store) error
	StoreBySlug(context.Context, string) (domain.Store, error)
	StoreByID(context.Context, int64) (domain.Store, error)
	Stores(context.Context) ([]domain.Store, error)
	SlugExists(context.Context, string) (bool, error)
}

type ProductsRepository interface {
	SaveProduct(context.Context, *domain.Product) error
	SaveProducts(context.Context, []domain.Product) error
	ProductByID(context.Context, int64) (domain.ProductWithStore, error)
	ProductsByStore(ctx context.Context, storeID int64) ([]domain.Product, error)
	Products(context.Context) ([]domain.ProductWithStore, error)
	UpdateProduct(context.Context, domain.Product) error
}

type LeadsRepository interface {
	SaveLead(context.Context, *domain.Lead) error
	CountLeadsByStore(ctx context.Context, storeID int64) (int64, error)
}

// TextExtractor yields the plain text of an uploaded catalog file.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ProductExtractor turns catalog text into product records via the
// language model.
type ProductExtractor interface {
	ExtractProducts(ctx context.Context, text string) ([]domain.ExtractedProduct, error)
}

type FileStore interface {
	SaveFile(slug, filename string, src io.Reader) (stored string, err error)
	FilePath(slug, filename string) (string, error)
	RemoveDir(slug string) error
}
