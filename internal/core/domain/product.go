package domain

import (
	"strings"
	"time"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Related     string
	Image       string
	StoreID     int64
	CreatedAt   time.Time
}

// ImageURL resolves the stored image reference for clients.
// An absolute external URL is returned verbatim, a local filename
// resolves under the owning store's upload directory.
func (p Product) ImageURL(storeSlug string) string {
	if p.Image == "" {
		return ""
	}
	if strings.HasPrefix(p.Image, "http") {
		return p.Image
	}
	return "/uploads/" + storeSlug + "/" + p.Image
}

// ProductWithStore is a product joined with its owning-store summary.
type ProductWithStore struct {
	Product
	StoreName      string
	StoreSlug      string
	StorePhone     string
	StoreInstagram string
}

// ExtractedProduct is a transient record parsed from the model's
// catalog response. It is never persisted as-is.
type ExtractedProduct struct {
	Name        string
	Description string
	Price       string
}

type ProductDraft struct {
	StoreSlug   string
	Name        string
	Description string
	Price       string
	Related     string
	Image       *FileUpload
}

type ProductUpdate struct {
	Name        string
	Description string
	Price       string
	Related     string
	Image       *FileUpload
}
