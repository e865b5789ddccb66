package domain

import (
	"io"
	"time"
)

type Store struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Owner       string
	Email       string
	Phone       string
	Instagram   string
	Address     string
	Color       string
	Logo        string
	Catalog     string
	CreatedAt   time.Time
}

// LogoURL returns the server-relative path of the store logo,
// or an empty string when no logo was uploaded.
func (s Store) LogoURL() string {
	if s.Logo == "" {
		return ""
	}
	return "/uploads/" + s.Slug + "/" + s.Logo
}

// FileUpload is a multipart file payload streamed from a request.
type FileUpload struct {
	Filename string
	Data     io.Reader
}

// StoreDraft carries the creation form fields plus both uploads.
type StoreDraft struct {
	Name        string
	Description string
	Owner       string
	Email       string
	Phone       string
	Instagram   string
	Address     string
	Color       string
	Logo        FileUpload
	Catalog     FileUpload
}

// StoreReceipt reports the outcome of a store creation.
// ProductsExtracted counts the catalog products persisted by the
// best-effort ingestion run and is zero whenever ingestion failed.
type StoreReceipt struct {
	Slug              string
	ProductsExtracted int
}
