package scoring

import (
	"fmt"
	"math"
	"strings"
)

// SurveySource supplies the per-survey configuration the engine scores
// against. QuestionIDs failing is fatal for the scoring attempt; the other
// two lookups are best-effort and degrade to "feature absent".
type SurveySource interface {
	QuestionIDs(surveyID uint) ([]uint, error)
	SubscaleDefs(surveyID uint) ([]SubscaleDef, error)
	HasScaleMarker(surveyID uint, marker string) (bool, error)
}

// Summary is the scoring output for one (survey, answer set) evaluation.
// Avg and Classification are populated only by instrument-specific rules.
type Summary struct {
	Total          float64            `json:"total"`
	Subscales      map[string]float64 `json:"subscales"`
	Avg            *float64           `json:"avg,omitempty"`
	Classification string             `json:"classification,omitempty"`
}

// Engine converts raw answers into a Summary. It holds no mutable state:
// every Score call is independent and deterministic given the survey
// configuration at call time.
type Engine struct {
	src      SurveySource
	registry Registry
}

// NewEngine returns an Engine using the default instrument registry.
func NewEngine(src SurveySource) *Engine {
	return NewEngineWithRegistry(src, DefaultRegistry())
}

// NewEngineWithRegistry returns an Engine with a caller-supplied registry.
func NewEngineWithRegistry(src SurveySource, registry Registry) *Engine {
	return &Engine{src: src, registry: registry}
}

// Score computes the total, subscale scores and instrument-specific fields
// for one answer set. It fails only when the question order cannot be
// resolved; missing subscale configuration or marker data degrades to
// generic scoring.
func (e *Engine) Score(surveyID uint, raw []RawAnswer) (Summary, error) {
	ids, err := e.src.QuestionIDs(surveyID)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve question order for survey %d: %w", surveyID, err)
	}
	order := OrderMap(ids)
	answers := Normalize(raw)

	var total float64
	for _, a := range answers {
		if a.Numeric {
			total += a.Value
		}
	}

	subscales := make(map[string]float64)
	if defs, err := e.src.SubscaleDefs(surveyID); err == nil {
		for _, def := range defs {
			r, ok := parseRange(def)
			if !ok {
				continue
			}
			var sum float64
			for _, a := range answers {
				if !a.Numeric {
					continue
				}
				ord, known := order[a.BaseID]
				if known && ord >= r.start && ord <= r.end {
					sum += a.Value
				}
			}
			subscales[r.name] += sum
		}
	}

	// Fear/avoidance composite (LSAS-style multi-part items). Activates on
	// the sub-labels alone, independent of survey identity.
	var fear, avoid float64
	for _, a := range answers {
		if !a.Numeric {
			continue
		}
		switch {
		case strings.Contains(a.SubLabel, "miedo"):
			fear += a.Value
		case strings.Contains(a.SubLabel, "evitacion"):
			avoid += a.Value
		}
	}
	if fear > 0 || avoid > 0 {
		subscales["Miedo/ansiedad"] = fear
		subscales["Evitacion"] = avoid
	}

	summary := Summary{Total: total, Subscales: subscales}
	rule := e.ruleFor(surveyID, answers)

	switch rule.Kind {
	case ReverseCoded:
		var sum float64
		for _, a := range answers {
			if !a.Numeric {
				continue
			}
			if ord, known := order[a.BaseID]; known && rule.ReversedOrdinals[ord] {
				sum += float64(rule.ScalePoints+1) - a.Value
			} else {
				sum += a.Value
			}
		}
		summary.Total = sum
		summary.Classification = classify(rule.Bands, sum)

	case Averaged:
		var sum float64
		n := 0
		for _, a := range answers {
			if a.Numeric {
				sum += a.Value
				n++
			}
		}
		var mean float64
		if n > 0 {
			mean = round2(sum / float64(n))
		}
		summary.Total = mean
		summary.Avg = &mean
		summary.Classification = classify(rule.Bands, mean)
		summary.Subscales = make(map[string]float64)

	case ThresholdBanded:
		summary.Classification = classify(rule.Bands, summary.Total)

	case CorrectnessScored:
		correct := 0
		for _, a := range answers {
			if a.Numeric && a.Value == 1 {
				correct++
			}
		}
		summary.Total = float64(correct * 100)
		summary.Classification = classify(rule.Bands, summary.Total)
	}

	return summary, nil
}

// ruleFor resolves the instrument rule for a survey. Registered identities
// win; otherwise the vst-4 option marker and, failing that, the binary
// answer-set heuristic can still select correctness scoring.
func (e *Engine) ruleFor(surveyID uint, answers []NormalizedAnswer) Rule {
	if rule, ok := e.registry[surveyID]; ok {
		return rule
	}
	if marked, err := e.src.HasScaleMarker(surveyID, VSTMarker); err == nil && marked {
		return vstRule()
	}
	if looksLikeVST(answers) {
		return vstRule()
	}
	return Rule{Kind: Generic}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
