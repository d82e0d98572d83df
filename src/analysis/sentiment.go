package analysis

import (
	"fmt"
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
	"github.com/jonreiter/govader"

	"tweettrader/src/catalog"
)

// Scorer turns a span of text into a polarity in [-1, 1]. Pluggable so the
// lexicon/model behind it can be swapped without touching the aggregation.
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with the VADER lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// Tally maps each detected entity to its accumulated polarity. Per-sentence
// contributions are in [-1, 1] but the sum is unbounded.
type Tally map[catalog.Entry]float64

// Aggregate scores every sentence of text and, for each detected entity whose
// ticker or name literally appears among that sentence's lowercase words,
// adds the sentence polarity to the entity's tally. An entity that never
// reappears inside a sentence gets no tally entry at all and is therefore
// out of the verdict's consideration set. The second return value is the
// document-level polarity of the whole text.
func Aggregate(text string, entities EntitySet, scorer Scorer) (Tally, float64, error) {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, 0, fmt.Errorf("split sentences: %w", err)
	}

	tally := make(Tally)
	for _, sentence := range doc.Sentences() {
		words := sentenceWords(sentence.Text)
		polarity := scorer.Score(sentence.Text)

		for entity := range entities {
			_, hasTicker := words[strings.ToLower(entity.Ticker)]
			_, hasName := words[entity.Name]
			if !hasTicker && !hasName {
				continue
			}
			// First contribution starts from zero, not from a dropped score.
			if _, seen := tally[entity]; !seen {
				tally[entity] = 0
			}
			tally[entity] += polarity
		}
	}

	return tally, scorer.Score(text), nil
}

// sentenceWords lowercases a sentence and splits it on non-alphanumerics.
func sentenceWords(sentence string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		words[w] = struct{}{}
	}
	return words
}
