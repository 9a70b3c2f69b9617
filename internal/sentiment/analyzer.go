// Package sentiment scores free-text feedback comments on a [-1, 1] scale
// using a small built-in valence lexicon with negation and intensifier
// handling. It is deterministic, allocation-light, and safe for concurrent
// use: the analyzer carries only immutable lookup tables after construction.
//
// The package deliberately stays rule-based. Comments are one or two short
// sentences; a lexicon over wellbeing vocabulary is accurate enough for the
// effectiveness signal and keeps scoring reproducible across runs.
package sentiment

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display classification thresholds on the raw score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Analyzer scores text against a valence lexicon. The zero value is not
// usable; construct with New.
type Analyzer struct {
	lexicon      map[string]float64
	negations    map[string]struct{}
	intensifiers map[string]float64
	titler       cases.Caser
}

// New returns an Analyzer backed by the built-in lexicon.
func New() *Analyzer {
	return &Analyzer{
		lexicon:      defaultLexicon,
		negations:    negations,
		intensifiers: intensifiers,
		titler:       cases.Title(language.English),
	}
}

// Score analyzes text and returns a sentiment score in [-1, 1], positive
// meaning favorable. Text with no sentiment-bearing words scores exactly 0.
//
// Scoring walks the token stream once: each lexicon hit contributes its
// valence, scaled by an immediately preceding intensifier and flipped by a
// negation within the two preceding tokens. The sum is averaged over the
// number of hits and clamped, so verbose comments are not rewarded for
// repetition alone.
func (a *Analyzer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var total float64
	hits := 0
	for i, tok := range tokens {
		valence, ok := a.lexicon[tok]
		if !ok {
			continue
		}
		if scale, ok := a.intensifiers[prev(tokens, i, 1)]; ok {
			valence *= scale
		}
		if a.negated(tokens, i) {
			valence = -valence
		}
		total += valence
		hits++
	}
	if hits == 0 {
		return 0
	}

	score := total / float64(hits)
	return clamp(score, -1, 1)
}

// Classify maps a raw score onto its display label: "Positive" for scores
// >= 0.05, "Negative" for scores <= -0.05, "Neutral" otherwise. The label is
// a reporting aid only and independent of the effectiveness classification.
func (a *Analyzer) Classify(score float64) string {
	switch {
	case score >= positiveThreshold:
		return a.titler.String("positive")
	case score <= negativeThreshold:
		return a.titler.String("negative")
	default:
		return a.titler.String("neutral")
	}
}

// negated reports whether a negation token occurs within the two tokens
// preceding position i.
func (a *Analyzer) negated(tokens []string, i int) bool {
	for back := 1; back <= 2; back++ {
		if _, ok := a.negations[prev(tokens, i, back)]; ok {
			return true
		}
	}
	return false
}

// prev returns the token back positions before i, or "" when out of range.
func prev(tokens []string, i, back int) string {
	if i-back < 0 {
		return ""
	}
	return tokens[i-back]
}

// tokenize lowercases text and splits it into alphanumeric runs, dropping
// apostrophes so contractions collapse onto their negation forms
// ("didn't" -> "didnt").
func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' {
			return -1
		}
		return r
	}, text)

	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
