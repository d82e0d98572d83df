// Package analysis implements the per-message decision pipeline: entity
// extraction, sentence-scoped sentiment aggregation and the buy verdict.
// Everything here is pure with respect to the venue; the only inputs are the
// message text and the immutable symbol catalog.
package analysis

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"tweettrader/src/catalog"
)

// EntitySet is a deduplicated set of assets detected in one message.
type EntitySet map[catalog.Entry]struct{}

// Token tags discarded before catalog matching. Digit sequences and dates
// produce too many false positives against short tickers.
var ignoreTags = map[string]struct{}{
	"CD": {}, // cardinal numbers
}

// Extract tokenizes text and matches each surviving token against the
// catalog, uppercased against tickers and lowercased against names. It is a
// pure function; an empty result is a valid outcome, not an error.
func Extract(text string, cat *catalog.Catalog) (EntitySet, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenize text: %w", err)
	}

	found := make(EntitySet)
	for _, tok := range doc.Tokens() {
		if _, skip := ignoreTags[tok.Tag]; skip {
			continue
		}
		word := strings.ToLower(tok.Text)
		if entry, ok := cat.LookupByTicker(strings.ToUpper(word)); ok {
			found[entry] = struct{}{}
		} else if entry, ok := cat.LookupByName(word); ok {
			found[entry] = struct{}{}
		}
	}
	return found, nil
}
