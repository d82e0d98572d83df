package catalog

import "testing"

func TestLoad_NormalizesCase(t *testing.T) {
	c := Load([]MarketDescriptor{
		{Symbol: "xrp", LongName: "Ripple"},
		{Symbol: "BTC", LongName: "Bitcoin"},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	e, ok := c.LookupByTicker("XRP")
	if !ok {
		t.Fatal("expected XRP to resolve")
	}
	if e.Ticker != "XRP" || e.Name != "ripple" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if _, ok := c.LookupByName("bitcoin"); !ok {
		t.Fatal("expected bitcoin to resolve by name")
	}
}

func TestLoad_KeepsBijection(t *testing.T) {
	c := Load([]MarketDescriptor{
		{Symbol: "BTC", LongName: "Bitcoin"},
		{Symbol: "BTC", LongName: "Bitcoin Clone"},
		{Symbol: "XBT", LongName: "bitcoin"},
		{Symbol: "", LongName: "nameless"},
		{Symbol: "NON", LongName: ""},
	})

	if c.Len() != 1 {
		t.Fatalf("expected duplicates and blanks to be skipped, got %d entries", c.Len())
	}

	e, _ := c.LookupByName("bitcoin")
	if e.Ticker != "BTC" {
		t.Fatalf("first entry should win, got ticker %s", e.Ticker)
	}
}

func TestLookup_Misses(t *testing.T) {
	c := Load([]MarketDescriptor{{Symbol: "XVG", LongName: "Verge"}})

	if _, ok := c.LookupByTicker("xvg"); ok {
		t.Fatal("ticker lookup is case-sensitive by contract, lowercase must miss")
	}
	if _, ok := c.LookupByName("Verge"); ok {
		t.Fatal("name lookup is case-sensitive by contract, uppercase must miss")
	}
	if _, ok := c.LookupByTicker("DOGE"); ok {
		t.Fatal("unknown ticker must miss")
	}
}

func TestNew_EmptyCatalogFindsNothing(t *testing.T) {
	c := New()
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d", c.Len())
	}
	if _, ok := c.LookupByTicker("BTC"); ok {
		t.Fatal("empty catalog must not resolve anything")
	}
}
