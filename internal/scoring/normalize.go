package scoring

import (
	"strconv"
	"strings"
)

// RawAnswer is a single submitted (answer key, value) pair. The key is either
// a bare question id ("12") or a composite "12|miedo" for multi-part items.
type RawAnswer struct {
	Key   string `json:"questionId"`
	Value string `json:"answer"`
}

// NormalizedAnswer is a RawAnswer split into its base question id, optional
// sub-label and parsed numeric value. Numeric is false for values that do not
// parse; such answers are kept for display but never aggregated.
type NormalizedAnswer struct {
	Key      string
	BaseID   string
	SubLabel string
	Value    float64
	Numeric  bool
}

// Normalize splits each answer key on the first '|' and attempts a numeric
// parse of the value. Input order is preserved and the input is never
// modified, so the same raw answers can be normalized at submission time and
// again on every recompute.
func Normalize(raw []RawAnswer) []NormalizedAnswer {
	out := make([]NormalizedAnswer, 0, len(raw))
	for _, a := range raw {
		base, sub := SplitKey(a.Key)
		n := NormalizedAnswer{
			Key:      a.Key,
			BaseID:   base,
			SubLabel: sub,
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64); err == nil {
			n.Value = v
			n.Numeric = true
		}
		out = append(out, n)
	}
	return out
}

// SplitKey separates an answer key into its base question id and lowercase
// sub-label. Keys without a '|' have an empty sub-label.
func SplitKey(key string) (base, subLabel string) {
	if i := strings.Index(key, "|"); i >= 0 {
		return key[:i], strings.ToLower(key[i+1:])
	}
	return key, ""
}
