package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Simple", "Acme Shop", "acme-shop"},
		{"AlreadySlug", "acme-shop", "acme-shop"},
		{"ExtraSpaces", "  Acme   Shop  ", "acme-shop"},
		{"Underscores", "acme_shop", "acme-shop"},
		{"Punctuation", "Acme Shop, C.A.", "acme-shop-ca"},
		{"NonASCIIDropped", "Café París", "caf-pars"},
		{"Digits", "Tienda 24/7", "tienda-247"},
		{"Empty", "", ""},
		{"OnlySymbols", "!!!", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}
