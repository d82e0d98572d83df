// Package catalog holds the ticker/name mapping used for entity extraction.
// The catalog is built once at startup from the venue's market listing and is
// never mutated afterwards, so concurrent readers need no locking.
package catalog

import "strings"

// Entry pairs an exchange ticker with the asset's human-readable name.
// Tickers are uppercase, names lowercase, always.
type Entry struct {
	Ticker string
	Name   string
}

// MarketDescriptor is the shape the venue's market listing provides.
type MarketDescriptor struct {
	Symbol   string
	LongName string
}

// Catalog is a bijective ticker <-> name mapping. One name per ticker and
// one ticker per name for the lifetime of a run.
type Catalog struct {
	byTicker map[string]Entry
	byName   map[string]Entry
}

// New returns an empty catalog. Extraction against an empty catalog finds
// nothing, which is the degraded mode when the market listing is unavailable.
func New() *Catalog {
	return &Catalog{
		byTicker: map[string]Entry{},
		byName:   map[string]Entry{},
	}
}

// Load builds a catalog from the venue market listing. Descriptors with a
// blank symbol or name are skipped, as is any descriptor that would break
// the bijection (first entry wins).
func Load(markets []MarketDescriptor) *Catalog {
	c := New()
	for _, m := range markets {
		ticker := strings.ToUpper(strings.TrimSpace(m.Symbol))
		name := strings.ToLower(strings.TrimSpace(m.LongName))
		if ticker == "" || name == "" {
			continue
		}
		if _, exists := c.byTicker[ticker]; exists {
			continue
		}
		if _, exists := c.byName[name]; exists {
			continue
		}
		entry := Entry{Ticker: ticker, Name: name}
		c.byTicker[ticker] = entry
		c.byName[name] = entry
	}
	return c
}

// LookupByTicker resolves an uppercase ticker token, e.g. "BTC".
func (c *Catalog) LookupByTicker(token string) (Entry, bool) {
	e, ok := c.byTicker[token]
	return e, ok
}

// LookupByName resolves a lowercase name token, e.g. "bitcoin".
func (c *Catalog) LookupByName(token string) (Entry, bool) {
	e, ok := c.byName[token]
	return e, ok
}

// Len reports how many assets the catalog knows about.
func (c *Catalog) Len() int {
	return len(c.byTicker)
}
