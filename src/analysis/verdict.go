package analysis

import "sort"

// Verdict decides which tickers to buy for one message. Entities with a
// non-negative tally are candidates (a tie at exactly zero is buy-eligible).
// A negative overall tone vetoes every candidate. Otherwise the denylisted
// majors are removed and the rest is returned, sorted for determinism.
func Verdict(tally Tally, overall float64, denylist map[string]struct{}) []string {
	if overall < 0 {
		return nil
	}

	var toBuy []string
	for entity, score := range tally {
		if score < 0 {
			continue
		}
		if _, blocked := denylist[entity.Ticker]; blocked {
			continue
		}
		toBuy = append(toBuy, entity.Ticker)
	}
	sort.Strings(toBuy)
	return toBuy
}
