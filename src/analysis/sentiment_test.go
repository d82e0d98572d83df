package analysis

import (
	"math"
	"strings"
	"testing"

	"tweettrader/src/catalog"
)

// wordScorer is a deterministic stand-in for the lexicon scorer.
type wordScorer struct{}

func (wordScorer) Score(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	if strings.Contains(lower, "love") || strings.Contains(lower, "moon") {
		score += 0.6
	}
	if strings.Contains(lower, "crashing") || strings.Contains(lower, "dead") {
		score -= 0.8
	}
	return score
}

var (
	xrp = catalog.Entry{Ticker: "XRP", Name: "ripple"}
	btc = catalog.Entry{Ticker: "BTC", Name: "bitcoin"}
	xvg = catalog.Entry{Ticker: "XVG", Name: "verge"}
)

func TestAggregate_AccumulatesPerSentence(t *testing.T) {
	text := "I love XRP. XRP to the moon. Bitcoin is crashing."
	entities := EntitySet{xrp: {}, btc: {}}

	tally, overall, err := Aggregate(text, entities, wordScorer{})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got := tally[xrp]; math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("XRP tally: expected 1.2, got %f", got)
	}
	if got := tally[btc]; math.Abs(got-(-0.8)) > 1e-9 {
		t.Fatalf("BTC tally: expected -0.8, got %f", got)
	}
	// The overall score is a single pass over the whole text, not a sum of
	// sentence scores: love/moon count once (+0.6), crashing counts (-0.8).
	if math.Abs(overall-(-0.2)) > 1e-9 {
		t.Fatalf("overall: expected -0.2, got %f", overall)
	}
}

func TestAggregate_FirstContributionNotDropped(t *testing.T) {
	tally, _, err := Aggregate("XVG is dead", EntitySet{xvg: {}}, wordScorer{})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	got, ok := tally[xvg]
	if !ok {
		t.Fatal("entity mentioned in the only sentence must have a tally entry")
	}
	if math.Abs(got-(-0.8)) > 1e-9 {
		t.Fatalf("first sentence score must be kept, expected -0.8 got %f", got)
	}
}

func TestAggregate_EntityNotInAnySentenceGetsNoEntry(t *testing.T) {
	// The entity was detected (e.g. on OCR text merged oddly) but its token
	// never appears inside a sentence, so it must stay out of the tally.
	tally, _, err := Aggregate("nothing to see here.", EntitySet{xrp: {}}, wordScorer{})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if _, ok := tally[xrp]; ok {
		t.Fatal("entity absent from every sentence must not be scored")
	}
}

func TestAggregate_MatchesTickerOrName(t *testing.T) {
	text := "I love ripple today. XRP is crashing now."
	tally, _, err := Aggregate(text, EntitySet{xrp: {}}, wordScorer{})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// Both sentences contribute: one matched by name, one by ticker.
	if got := tally[xrp]; math.Abs(got-(-0.2)) > 1e-9 {
		t.Fatalf("expected -0.2, got %f", got)
	}
}
