package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/paratodos/storefront/internal/core/domain"
)

// ErrNoProductList reports a JSON object response with no
// array-valued entry to take the products from.
var ErrNoProductList = errors.New("no product list in response")

type rawProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
}

// ParseProductList decodes the model's raw response into product
// records. It accepts a bare JSON array or an object wrapping the
// array under some key, in which case the first array-valued entry
// in document order wins. Entries without a name are dropped
// silently. Anything else fails closed to an error; the caller
// resolves that to zero products.
func ParseProductList(raw string) ([]domain.ExtractedProduct, error) {
	const op = "openai.ParseProductList"

	text := strings.TrimSpace(stripMarkdownFences(raw))

	list, err := candidateList(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, fmt.Errorf("%s: invalid product array: %w", op, err)
	}

	var records []domain.ExtractedProduct
	for _, item := range items {
		var rp rawProduct
		if err := json.Unmarshal(item, &rp); err != nil {
			continue
		}
		name := strings.TrimSpace(rp.Name)
		if name == "" {
			continue
		}
		records = append(records, domain.ExtractedProduct{
			Name:        name,
			Description: rp.Description,
			Price:       priceText(rp.Price),
		})
	}

	return records, nil
}

// candidateList locates the JSON array holding the products.
func candidateList(text string) (json.RawMessage, error) {
	switch {
	case strings.HasPrefix(text, "["):
		return json.RawMessage(text), nil
	case strings.HasPrefix(text, "{"):
		return firstArrayEntry(text)
	case text == "":
		return nil, errors.New("empty response")
	default:
		if !json.Valid([]byte(text)) {
			return nil, errors.New("response is not valid JSON")
		}
		return nil, errors.New("unexpected response shape")
	}
}

// firstArrayEntry scans the object's top-level entries in document
// order and returns the value of the first one holding an array.
// encoding/json maps lose key order, so the scan walks the decoder
// token stream instead.
func firstArrayEntry(text string) (json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}

		if strings.HasPrefix(strings.TrimSpace(string(value)), "[") {
			return value, nil
		}
	}

	return nil, ErrNoProductList
}

// priceText tolerates the model returning the price as a JSON number
// instead of the requested string.
func priceText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

var fencesRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

func stripMarkdownFences(text string) string {
	if m := fencesRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return text
}
