package mood

import (
	"sort"
	"time"
)

// DefaultAlpha is the additive smoothing constant applied when none is
// configured. One pseudo-count per label keeps single-observation histories
// from collapsing to a point mass while still letting the observed label win.
const DefaultAlpha = 1.0

// Distribution builds a smoothed probability distribution over the full
// vocabulary from a slice of observed labels. Every label receives alpha
// pseudo-counts before normalization, so all ten probabilities are strictly
// positive and sum to 1 even when history is empty (the cold-start case
// yields the uniform distribution). Labels outside the vocabulary are
// ignored.
//
// alpha values <= 0 fall back to DefaultAlpha.
func Distribution(history []Label, alpha float64) map[Label]float64 {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	counts := make(map[Label]float64, len(canonical))
	total := 0.0
	for _, l := range history {
		if !ValidLabel(l) {
			continue
		}
		counts[l]++
		total++
	}

	denom := total + alpha*float64(len(canonical))
	probs := make(map[Label]float64, len(canonical))
	for _, l := range canonical {
		probs[l] = (counts[l] + alpha) / denom
	}
	return probs
}

// Predict returns the most probable label of a distribution. Ties are broken
// by canonical ordering so that repeated runs over identical input always
// produce the same answer. An empty map predicts the first canonical label.
func Predict(probs map[Label]float64) Label {
	best := canonical[0]
	bestP := probs[best]
	for _, l := range canonical[1:] {
		if p := probs[l]; p > bestP {
			best, bestP = l, p
		}
	}
	return best
}

// Rank returns every vocabulary label ordered by descending probability,
// with the canonical ordering as a stable tie-break. Labels missing from
// probs are treated as probability 0 and sort last (still canonically
// ordered among themselves).
func Rank(probs map[Label]float64) []Label {
	out := Labels()
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := probs[out[i]], probs[out[j]]
		if pi != pj {
			return pi > pj
		}
		return out[i].rank() < out[j].rank()
	})
	return out
}

// Tier classifies how well a distribution ranked the observed outcome.
type Tier int

const (
	// TierTop1 means the actual label was the rank-1 prediction.
	TierTop1 Tier = iota
	// TierTop2 means the actual label ranked second.
	TierTop2
	// TierTop3 means the actual label ranked third.
	TierTop3
	// TierMissed means the actual label ranked fourth or worse.
	TierMissed
)

// Classify determines the match tier of actual against the probability
// ordering of probs. The four tiers are mutually exclusive and exhaustive,
// so every observed outcome lands in exactly one.
func Classify(probs map[Label]float64, actual Label) Tier {
	for i, l := range Rank(probs) {
		if l != actual {
			continue
		}
		switch i {
		case 0:
			return TierTop1
		case 1:
			return TierTop2
		case 2:
			return TierTop3
		}
		break
	}
	return TierMissed
}

// Observation is a single logged mood with its log time, used when several
// logs for the same user, category, and date must collapse into one
// ground-truth label.
type Observation struct {
	Label    Label
	LoggedAt time.Time
}

// Representative collapses a day's observations into the single label that
// stands for that day: the most frequent label wins; among labels tied for
// most frequent, the most recently logged one wins. Returns the zero Label
// when obs is empty.
func Representative(obs []Observation) Label {
	if len(obs) == 0 {
		return ""
	}

	counts := make(map[Label]int)
	latest := make(map[Label]time.Time)
	for _, o := range obs {
		counts[o.Label]++
		if o.LoggedAt.After(latest[o.Label]) {
			latest[o.Label] = o.LoggedAt
		}
	}

	var best Label
	for l := range counts {
		if best == "" {
			best = l
			continue
		}
		switch {
		case counts[l] > counts[best]:
			best = l
		case counts[l] == counts[best] && latest[l].After(latest[best]):
			best = l
		}
	}
	return best
}
