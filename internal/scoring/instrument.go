package scoring

import "math"

// RuleKind selects how an instrument turns normalized answers into a total
// and, for some instruments, a qualitative classification.
type RuleKind int

const (
	// Generic sums every numeric answer; no classification.
	Generic RuleKind = iota
	// ReverseCoded mirrors a fixed set of ordinal positions on the Likert
	// scale before summing (Rosenberg self-esteem).
	ReverseCoded
	// Averaged scores on the mean of all numeric answers instead of the sum
	// (MSPSS perceived social support).
	Averaged
	// ThresholdBanded keeps the generic sum but bands it into a label
	// (FLCAS foreign language anxiety).
	ThresholdBanded
	// CorrectnessScored counts correct (value 1) answers and scales the count
	// into word-family equivalents (vocabulary size test).
	CorrectnessScored
)

// Band maps a score at or above Min to a label. Bands are evaluated in
// order, so they must be sorted by descending Min; a Band with Min -Inf acts
// as the catch-all.
type Band struct {
	Min   float64
	Label string
}

// Rule is the tagged scoring variant for one instrument.
type Rule struct {
	Kind             RuleKind
	ReversedOrdinals map[int]bool
	ScalePoints      int
	Bands            []Band
}

// Registry maps a survey identity to its scoring rule. Identities absent
// from the registry score generically.
type Registry map[uint]Rule

// VSTMarker is the answer-option scale tag that forces correctness scoring
// regardless of survey identity.
const VSTMarker = "vst-4"

// DefaultRegistry returns the production instrument registry. The small
// integer identities are configuration inherited from the deployed survey
// catalogue: 2 Rosenberg, 5 MSPSS, 6 FLCAS, 7 vocabulary size test.
func DefaultRegistry() Registry {
	return Registry{
		2: {
			Kind:             ReverseCoded,
			ReversedOrdinals: map[int]bool{3: true, 5: true, 8: true, 9: true, 10: true},
			ScalePoints:      4,
			Bands: []Band{
				{Min: 36, Label: "Alta autoestima"},
				{Min: 26, Label: "Autoestima moderada (normal)"},
				{Min: math.Inf(-1), Label: "Baja autoestima"},
			},
		},
		5: {
			Kind: Averaged,
			// Published cutoffs name <=2.9 and 3.0-5.0; rounded means falling
			// between (2.91-2.99) classify as low support.
			Bands: []Band{
				{Min: 5.1, Label: "Alto apoyo percibido"},
				{Min: 3.0, Label: "Apoyo moderado"},
				{Min: math.Inf(-1), Label: "Bajo apoyo percibido"},
			},
		},
		6: {
			Kind: ThresholdBanded,
			Bands: []Band{
				{Min: 90, Label: "Ansiedad Alta"},
				{Min: 70, Label: "Ansiedad Moderada"},
				{Min: math.Inf(-1), Label: "Ansiedad Baja"},
			},
		},
		7: vstRule(),
	}
}

func vstRule() Rule {
	return Rule{
		Kind: CorrectnessScored,
		Bands: []Band{
			{Min: 10000, Label: "Dominio casi nativo"},
			{Min: 8000, Label: "Nivel alto"},
			{Min: 5000, Label: "Lectura no especializada"},
			{Min: 2000, Label: "Nivel básico"},
		},
	}
}

func classify(bands []Band, score float64) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	return ""
}

// looksLikeVST reports whether an answer set resembles a vocabulary size
// test: at least 20 numeric answers, all of them 0 or 1. A legitimately
// binary instrument of 20+ items would also match; the registry entry and
// the vst-4 option marker take precedence over this heuristic.
func looksLikeVST(answers []NormalizedAnswer) bool {
	n := 0
	for _, a := range answers {
		if !a.Numeric {
			continue
		}
		if a.Value != 0 && a.Value != 1 {
			return false
		}
		n++
	}
	return n >= 20
}
