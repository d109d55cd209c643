package scoring

import (
	"strconv"
	"strings"
)

// SubscaleDef is a named contiguous ordinal range as stored in the survey
// configuration, e.g. ("Miedo/ansiedad", "1-24").
type SubscaleDef struct {
	Name       string
	RangeItems string
}

type subscaleRange struct {
	name  string
	start int
	end   int
}

// parseRange parses the "<start>-<end>" range string. Malformed ranges are
// skipped by the caller rather than failing the whole survey's scoring.
func parseRange(def SubscaleDef) (subscaleRange, bool) {
	start, end, found := strings.Cut(def.RangeItems, "-")
	if !found {
		return subscaleRange{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return subscaleRange{}, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return subscaleRange{}, false
	}
	return subscaleRange{name: def.Name, start: a, end: b}, true
}
