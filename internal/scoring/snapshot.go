package scoring

import "encoding/json"

// MarshalSnapshot flattens a Summary into the denormalized resumen_json
// column format: subscale names at the top level plus optional "avg" and
// "classification" keys. The total is persisted separately in its own
// column.
func MarshalSnapshot(s Summary) (string, error) {
	flat := make(map[string]interface{}, len(s.Subscales)+2)
	for name, v := range s.Subscales {
		flat[name] = v
	}
	if s.Avg != nil {
		flat["avg"] = *s.Avg
	}
	if s.Classification != "" {
		flat["classification"] = s.Classification
	}
	b, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalSnapshot rebuilds a Summary from the persisted total and
// resumen_json columns. Unparseable snapshots yield ok=false so callers can
// fall back to recomputing from the raw answers.
func UnmarshalSnapshot(total float64, resumen string) (Summary, bool) {
	var flat map[string]interface{}
	if err := json.Unmarshal([]byte(resumen), &flat); err != nil {
		return Summary{}, false
	}
	s := Summary{Total: total, Subscales: make(map[string]float64)}
	for k, v := range flat {
		switch k {
		case "classification":
			if label, ok := v.(string); ok {
				s.Classification = label
			}
		case "avg":
			if n, ok := v.(float64); ok {
				avg := n
				s.Avg = &avg
			}
		default:
			if n, ok := v.(float64); ok {
				s.Subscales[k] = n
			}
		}
	}
	return s, true
}
