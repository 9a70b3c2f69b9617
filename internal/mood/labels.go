// Package mood provides the fixed mood vocabulary shared across prediction,
// recording, and comparison, together with the deterministic statistics that
// turn a user's logged history into per-cell probability distributions. It is
// intentionally small and dependency-free:
//
//   - One closed 10-label vocabulary, referenced by every component
//   - A single canonical label ordering used for all tie-breaks
//   - Additive (Laplace) smoothing so no label ever has zero probability
//   - Deterministic argmax, ranking, and match-tier classification
//
// The package never touches the database; callers feed it plain slices of
// labels and get back plain maps and slices.
package mood

import "time"

// Label is one of the ten fixed mood identifiers used throughout the
// application. The set is closed: values outside it are rejected at the
// boundary and never reach this package.
type Label string

// The full vocabulary. Five negative-polarity labels and five
// positive-polarity labels.
const (
	// Negative polarity
	Angry        Label = "angry"
	Bored        Label = "bored"
	Disappointed Label = "disappointed"
	Sad          Label = "sad"
	Tense        Label = "tense"

	// Positive polarity
	Calm    Label = "calm"
	Excited Label = "excited"
	Happy   Label = "happy"
	Pleased Label = "pleased"
	Relaxed Label = "relaxed"
)

// canonical is the single fixed ordering used for every tie-break in the
// engine: negative polarity first, then positive, alphabetical within each
// block. Prediction argmax, probability ranking, and comparison all break
// ties by position in this slice, which keeps the whole pipeline
// deterministic for identical input.
var canonical = []Label{
	Angry, Bored, Disappointed, Sad, Tense,
	Calm, Excited, Happy, Pleased, Relaxed,
}

// canonicalIndex maps each label to its position in the canonical ordering.
var canonicalIndex = func() map[Label]int {
	m := make(map[Label]int, len(canonical))
	for i, l := range canonical {
		m[l] = i
	}
	return m
}()

// Labels returns the full vocabulary in canonical order. The returned slice
// is a copy; callers may reorder it freely.
func Labels() []Label {
	out := make([]Label, len(canonical))
	copy(out, canonical)
	return out
}

// ValidLabel reports whether l belongs to the fixed vocabulary.
func ValidLabel(l Label) bool {
	_, ok := canonicalIndex[l]
	return ok
}

// Positive reports whether l carries positive polarity. Unknown labels are
// treated as non-positive.
func (l Label) Positive() bool {
	switch l {
	case Calm, Excited, Happy, Pleased, Relaxed:
		return true
	}
	return false
}

// rank returns the canonical tie-break position of l. Unknown labels sort
// after every known label.
func (l Label) rank() int {
	if i, ok := canonicalIndex[l]; ok {
		return i
	}
	return len(canonical)
}

// Category is one of the four tracked life domains.
type Category string

const (
	Activity Category = "activity"
	Social   Category = "social"
	Health   Category = "health"
	Sleep    Category = "sleep"
)

var categories = []Category{Activity, Social, Health, Sleep}

// Categories returns the four tracked categories in their fixed order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether c is one of the tracked categories.
func ValidCategory(c Category) bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// Weekday names a day of the prediction week. Weeks run Monday through
// Sunday, matching the weekStartDate/weekEndDate bounds of a weekly record.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns Monday..Sunday in order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

// WeekdayOf maps a calendar time to its prediction weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// Offset returns the zero-based day offset of w from Monday (Monday=0 ..
// Sunday=6). Unknown weekdays return -1.
func (w Weekday) Offset() int {
	for i, d := range weekdays {
		if d == w {
			return i
		}
	}
	return -1
}
