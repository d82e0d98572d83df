package analysis

import "tweettrader/src/catalog"

// Analyze runs the full decision pipeline for one message text:
// extraction, sentence-scoped aggregation, verdict. An empty result means
// no action; it is the normal outcome for most messages.
func Analyze(text string, cat *catalog.Catalog, scorer Scorer, denylist map[string]struct{}) ([]string, error) {
	entities, err := Extract(text, cat)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}

	tally, overall, err := Aggregate(text, entities, scorer)
	if err != nil {
		return nil, err
	}

	return Verdict(tally, overall, denylist), nil
}
