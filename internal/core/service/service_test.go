package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paratodos/storefront/internal/core/domain"
)

type fakeStores struct {
	slugs   map[string]bool
	bySlug  map[string]domain.Store
	byID    map[int64]domain.Store
	saved   []domain.Store
	saveErr error
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		slugs:  make(map[string]bool),
		bySlug: make(map[string]domain.Store),
		byID:   make(map[int64]domain.Store),
	}
}

func (f *fakeStores) SaveStore(_ context.Context, v *domain.Store) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	v.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *v)
	return nil
}

func (f *fakeStores) StoreBySlug(_ context.Context, slug string) (domain.Store, error) {
	v, ok := f.bySlug[slug]
	if !ok {
		return domain.Store{}, domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeStores) StoreByID(_ context.Context, id int64) (domain.Store, error) {
	v, ok := f.byID[id]
	if !ok {
		return domain.Store{}, domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeStores) Stores(context.Context) ([]domain.Store, error) {
	return f.saved, nil
}

func (f *fakeStores) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

type fakeProducts struct {
	batches [][]domain.Product
	saved   []domain.Product
	byID    map[int64]domain.ProductWithStore
	updated []domain.Product
	saveErr error
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: make(map[int64]domain.ProductWithStore)}
}

func (f *fakeProducts) SaveProduct(_ context.Context, v *domain.Product) error {
	v.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *v)
	return nil
}

func (f *fakeProducts) SaveProducts(_ context.Context, vs []domain.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.batches = append(f.batches, vs)
	return nil
}

func (f *fakeProducts) ProductByID(_ context.Context, id int64) (domain.ProductWithStore, error) {
	v, ok := f.byID[id]
	if !ok {
		return domain.ProductWithStore{}, domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeProducts) ProductsByStore(_ context.Context, storeID int64) ([]domain.Product, error) {
	var vs []domain.Product
	for _, v := range f.saved {
		if v.StoreID == storeID {
			vs = append(vs, v)
		}
	}
	return vs, nil
}

func (f *fakeProducts) Products(context.Context) ([]domain.ProductWithStore, error) {
	return nil, nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, v domain.Product) error {
	f.updated = append(f.updated, v)
	return nil
}

type fakeLeads struct {
	saved []domain.Lead
}

func (f *fakeLeads) SaveLead(_ context.Context, v *domain.Lead) error {
	v.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *v)
	return nil
}

func (f *fakeLeads) CountLeadsByStore(context.Context, int64) (int64, error) {
	return int64(len(f.saved)), nil
}

type fakeFiles struct {
	saved   map[string][]string
	removed []string
	saveErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: make(map[string][]string)}
}

func (f *fakeFiles) SaveFile(slug, filename string, _ io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved[slug] = append(f.saved[slug], filename)
	return filename, nil
}

func (f *fakeFiles) FilePath(slug, filename string) (string, error) {
	return "/uploads-root/" + slug + "/" + filename, nil
}

func (f *fakeFiles) RemoveDir(slug string) error {
	f.removed = append(f.removed, slug)
	return nil
}

type fakeTextExtractor struct {
	text string
	err  error
}

func (f fakeTextExtractor) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeProductExtractor struct {
	records []domain.ExtractedProduct
	err     error
	calls   int
}

func (f *fakeProductExtractor) ExtractProducts(
	context.Context, string,
) ([]domain.ExtractedProduct, error) {
	f.calls++
	return f.records, f.err
}

type deps struct {
	stores    *fakeStores
	products  *fakeProducts
	leads     *fakeLeads
	files     *fakeFiles
	text      fakeTextExtractor
	extractor *fakeProductExtractor
}

func newService(d deps) Service {
	return New(
		d.stores, d.products, d.leads, d.files, d.text, d.extractor,
		"https://img.example/placeholder",
	)
}

func validDraft() domain.StoreDraft {
	return domain.StoreDraft{
		Name:    "Acme Shop",
		Phone:   "+58 412 0000000",
		Logo:    domain.FileUpload{Filename: "logo.png", Data: strings.NewReader("png")},
		Catalog: domain.FileUpload{Filename: "catalog.pdf", Data: strings.NewReader("pdf")},
	}
}

func TestCreateStore(t *testing.T) {
	t.Run("SlugProbe", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.stores.slugs["acme-shop"] = true
		d.stores.slugs["acme-shop-1"] = true
		s := newService(d)

		receipt, err := s.CreateStore(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, "acme-shop-2", receipt.Slug)
		require.Len(t, d.stores.saved, 1)
		assert.Equal(t, "acme-shop-2", d.stores.saved[0].Slug)
	})

	t.Run("SequentialSlugs", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		want := []string{"acme-shop", "acme-shop-1", "acme-shop-2"}
		for i, expected := range want {
			draft := validDraft()
			draft.Name = fmt.Sprintf("Acme Shop %s", strings.Repeat("!", i))

			receipt, err := s.CreateStore(context.Background(), draft)
			require.NoError(t, err)
			assert.Equal(t, expected, receipt.Slug)
			d.stores.slugs[receipt.Slug] = true
		}
	})

	t.Run("ExtractionFailureStillSucceeds", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{text: "some catalog text"},
			extractor: &fakeProductExtractor{err: errors.New("model unreachable")},
		}
		s := newService(d)

		receipt, err := s.CreateStore(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, 0, receipt.ProductsExtracted)
		assert.Len(t, d.stores.saved, 1)
	})

	t.Run("IngestsProducts", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text: fakeTextExtractor{text: "Widget 10 USD"},
			extractor: &fakeProductExtractor{records: []domain.ExtractedProduct{
				{Name: "Widget", Price: "10"},
				{Name: "Gadget", Description: "a gadget"},
			}},
		}
		s := newService(d)

		receipt, err := s.CreateStore(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, 2, receipt.ProductsExtracted)

		require.Len(t, d.products.batches, 1)
		batch := d.products.batches[0]
		require.Len(t, batch, 2)
		assert.Equal(t, "Widget", batch[0].Name)
		assert.Equal(t, "10", batch[0].Price)
		assert.Equal(t, d.stores.saved[0].ID, batch[0].StoreID)
		assert.Equal(t, "https://img.example/placeholder", batch[0].Image)
	})

	t.Run("EmptyTextSkipsModel", func(t *testing.T) {
		extractor := &fakeProductExtractor{}
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{text: ""},
			extractor: extractor,
		}
		s := newService(d)

		receipt, err := s.CreateStore(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, 0, receipt.ProductsExtracted)
		assert.Zero(t, extractor.calls)
	})

	t.Run("BatchFailureYieldsZero", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text: fakeTextExtractor{text: "catalog"},
			extractor: &fakeProductExtractor{records: []domain.ExtractedProduct{
				{Name: "Widget"},
			}},
		}
		d.products.saveErr = errors.New("db down")
		s := newService(d)

		receipt, err := s.CreateStore(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, 0, receipt.ProductsExtracted)
	})

	t.Run("ShortNameRejected", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		draft := validDraft()
		draft.Name = "A"
		_, err := s.CreateStore(context.Background(), draft)

		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Empty(t, d.stores.saved)
	})

	t.Run("MissingCatalogRejected", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		draft := validDraft()
		draft.Catalog = domain.FileUpload{}
		_, err := s.CreateStore(context.Background(), draft)

		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("InsertFailureCleansUploads", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.stores.saveErr = domain.ErrConflict
		s := newService(d)

		_, err := s.CreateStore(context.Background(), validDraft())
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, d.files.removed, "acme-shop")
	})
}

func TestStoreProducts(t *testing.T) {
	t.Run("DecoratesWithStore", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.stores.bySlug["acme-shop"] = domain.Store{
			ID: 7, Name: "Acme Shop", Slug: "acme-shop",
			Phone: "+58 412", Instagram: "@acme",
		}
		d.products.saved = []domain.Product{
			{ID: 1, Name: "Widget", StoreID: 7},
			{ID: 2, Name: "Other", StoreID: 9},
		}
		s := newService(d)

		vs, err := s.StoreProducts(context.Background(), "acme-shop")
		require.NoError(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "Widget", vs[0].Name)
		assert.Equal(t, "acme-shop", vs[0].StoreSlug)
		assert.Equal(t, "+58 412", vs[0].StorePhone)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		_, err := s.StoreProducts(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("UnknownSlug", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		_, err := s.CreateProduct(context.Background(), domain.ProductDraft{
			StoreSlug: "nope",
			Name:      "Widget",
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, d.products.saved)
	})

	t.Run("SavesImageUnderStoreDir", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.stores.bySlug["acme-shop"] = domain.Store{ID: 7, Slug: "acme-shop"}
		s := newService(d)

		product, err := s.CreateProduct(context.Background(), domain.ProductDraft{
			StoreSlug: "acme-shop",
			Name:      "  Widget  ",
			Price:     "10",
			Image:     &domain.FileUpload{Filename: "w.png", Data: strings.NewReader("png")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, int64(7), product.StoreID)
		assert.Equal(t, "w.png", product.Image)
		assert.Equal(t, []string{"w.png"}, d.files.saved["acme-shop"])

		require.Len(t, d.products.saved, 1)
		assert.Equal(t, int64(7), d.products.saved[0].StoreID)
	})

	t.Run("BlankNameRejected", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.stores.bySlug["acme-shop"] = domain.Store{ID: 7, Slug: "acme-shop"}
		s := newService(d)

		_, err := s.CreateProduct(context.Background(), domain.ProductDraft{
			StoreSlug: "acme-shop",
			Name:      "   ",
		})
		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Empty(t, d.products.saved)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("ReplacesImageUnderStoreDir", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.products.byID[3] = domain.ProductWithStore{
			Product:   domain.Product{ID: 3, Name: "Widget", StoreID: 7, Image: "https://ext/img.png"},
			StoreSlug: "acme-shop",
		}
		s := newService(d)

		err := s.UpdateProduct(context.Background(), 3, domain.ProductUpdate{
			Name:  "Widget v2",
			Price: "12",
			Image: &domain.FileUpload{Filename: "new.png", Data: strings.NewReader("png")},
		})
		require.NoError(t, err)

		require.Len(t, d.products.updated, 1)
		assert.Equal(t, "Widget v2", d.products.updated[0].Name)
		assert.Equal(t, "new.png", d.products.updated[0].Image)
		assert.Equal(t, []string{"new.png"}, d.files.saved["acme-shop"])
	})

	t.Run("NotFound", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		s := newService(d)

		err := s.UpdateProduct(context.Background(), 99, domain.ProductUpdate{Name: "X"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCreateLead(t *testing.T) {
	t.Run("Mismatch", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.products.byID[1] = domain.ProductWithStore{
			Product: domain.Product{ID: 1, StoreID: 7},
		}
		d.stores.byID[8] = domain.Store{ID: 8}
		s := newService(d)

		_, err := s.CreateLead(context.Background(), 1, 8)
		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("Created", func(t *testing.T) {
		d := deps{
			stores: newFakeStores(), products: newFakeProducts(),
			leads: &fakeLeads{}, files: newFakeFiles(),
			text:      fakeTextExtractor{},
			extractor: &fakeProductExtractor{},
		}
		d.products.byID[1] = domain.ProductWithStore{
			Product: domain.Product{ID: 1, StoreID: 7},
		}
		d.stores.byID[7] = domain.Store{ID: 7}
		s := newService(d)

		lead, err := s.CreateLead(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.LeadStatusPending, lead.Status)
		assert.NotZero(t, lead.ID)
	})
}
