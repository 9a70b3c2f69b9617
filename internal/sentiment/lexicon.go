package sentiment

// Word valences for the built-in lexicon. Values are in [-1, 1]; strongly
// charged words sit near the extremes, mildly charged ones nearer the
// middle. The vocabulary is biased toward the language of short wellbeing
// feedback comments (the only text this engine ever scores).
var defaultLexicon = map[string]float64{
	// strong positive
	"amazing":   1.0,
	"awesome":   1.0,
	"excellent": 1.0,
	"fantastic": 1.0,
	"love":      1.0,
	"loved":     1.0,
	"perfect":   1.0,
	"wonderful": 1.0,

	// positive
	"best":       0.8,
	"better":     0.6,
	"calm":       0.6,
	"calmer":     0.6,
	"effective":  0.7,
	"encouraged": 0.6,
	"energized":  0.7,
	"enjoy":      0.7,
	"enjoyable":  0.7,
	"enjoyed":    0.7,
	"glad":       0.7,
	"good":       0.7,
	"grateful":   0.8,
	"great":      0.8,
	"happy":      0.8,
	"happier":    0.8,
	"help":       0.7,
	"helped":     0.8,
	"helpful":    0.8,
	"helps":      0.7,
	"improved":   0.7,
	"like":       0.5,
	"liked":      0.5,
	"motivated":  0.7,
	"nice":       0.6,
	"peaceful":   0.7,
	"pleasant":   0.6,
	"positive":   0.6,
	"recommend":  0.7,
	"refreshed":  0.7,
	"relax":      0.6,
	"relaxed":    0.7,
	"relaxing":   0.7,
	"relieved":   0.6,
	"soothing":   0.6,
	"thanks":     0.5,
	"thank":      0.5,
	"useful":     0.7,
	"work":       0.5,
	"works":      0.5,
	"worked":     0.5,

	// negative
	"anxious":       -0.6,
	"bad":           -0.7,
	"bland":         -0.4,
	"boring":        -0.5,
	"confusing":     -0.5,
	"difficult":     -0.4,
	"disappointed":  -0.7,
	"disappointing": -0.7,
	"dislike":       -0.6,
	"disliked":      -0.6,
	"frustrated":    -0.6,
	"frustrating":   -0.6,
	"hard":          -0.3,
	"ineffective":   -0.7,
	"mediocre":      -0.4,
	"overwhelmed":   -0.5,
	"pointless":     -0.7,
	"poor":          -0.6,
	"sad":           -0.6,
	"sadder":        -0.6,
	"stressed":      -0.6,
	"stressful":     -0.6,
	"tired":         -0.4,
	"uncomfortable": -0.5,
	"unhelpful":     -0.7,
	"useless":       -0.8,
	"worse":         -0.7,
	"worried":       -0.5,

	// strong negative
	"awful":    -1.0,
	"hate":     -1.0,
	"hated":    -1.0,
	"horrible": -1.0,
	"terrible": -1.0,
	"worst":    -1.0,
}

// negations invert the valence of the following sentiment-bearing word
// ("not helpful", "didn't work").
var negations = map[string]struct{}{
	"no":      {},
	"not":     {},
	"never":   {},
	"neither": {},
	"nor":     {},
	"cannot":  {},
	"cant":    {},
	"dont":    {},
	"didnt":   {},
	"doesnt":  {},
	"wasnt":   {},
	"werent":  {},
	"isnt":    {},
	"wont":    {},
	"wouldnt": {},
	"without": {},
}

// intensifiers scale the valence of the following sentiment-bearing word
// ("really helped", "slightly better").
var intensifiers = map[string]float64{
	"absolutely": 1.5,
	"completely": 1.4,
	"extremely":  1.5,
	"incredibly": 1.5,
	"quite":      1.1,
	"really":     1.3,
	"so":         1.2,
	"somewhat":   0.7,
	"slightly":   0.5,
	"totally":    1.4,
	"truly":      1.3,
	"very":       1.3,
}
