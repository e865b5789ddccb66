package openai

import (
	"strings"
	"unicode/utf8"
)

// maxCatalogChars caps the catalog text embedded in the prompt so the
// request stays within the model's input limits. Truncation is blunt
// and may cut mid-product; the parser accepts whatever valid JSON the
// model still produces.
const maxCatalogChars = 15000

const extractionInstruction = `Extract the list of products from the store catalog text below.

Respond with a JSON array where every element has these keys:
- "name": string, the product name (required)
- "description": string, a short product description (optional)
- "price": string, the price exactly as written in the catalog (optional)

If you have to wrap the array in an object, use a single key whose value is the array.
Do not invent products that are not in the catalog.

Catalog text:

`

// BuildPrompt embeds the catalog text into the extraction
// instruction, truncating it to maxCatalogChars first. The cut never
// splits a rune, so the prompt stays valid UTF-8. The returned flag
// reports whether truncation happened.
func BuildPrompt(text string) (prompt string, truncated bool) {
	if len(text) > maxCatalogChars {
		cut := maxCatalogChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
		truncated = true
	}

	var b strings.Builder
	b.Grow(len(extractionInstruction) + len(text))
	b.WriteString(extractionInstruction)
	b.WriteString(text)
	return b.String(), truncated
}
