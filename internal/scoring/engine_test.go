package scoring

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

type stubSource struct {
	ids       []uint
	idsErr    error
	defs      []SubscaleDef
	defsErr   error
	marker    bool
	markerErr error
}

func (s *stubSource) QuestionIDs(surveyID uint) ([]uint, error) {
	return s.ids, s.idsErr
}

func (s *stubSource) SubscaleDefs(surveyID uint) ([]SubscaleDef, error) {
	return s.defs, s.defsErr
}

func (s *stubSource) HasScaleMarker(surveyID uint, marker string) (bool, error) {
	return s.marker, s.markerErr
}

func seqIDs(n int) []uint {
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	return ids
}

func answers(pairs ...[2]string) []RawAnswer {
	out := make([]RawAnswer, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, RawAnswer{Key: p[0], Value: p[1]})
	}
	return out
}

func TestScoreGenericWithSubscales(t *testing.T) {
	src := &stubSource{
		ids: seqIDs(5),
		defs: []SubscaleDef{
			{Name: "A", RangeItems: "1-3"},
			{Name: "B", RangeItems: "4-5"},
		},
	}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers(
		[2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"},
		[2]string{"4", "5"}, [2]string{"5", "4"},
	))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 15 {
		t.Errorf("total = %v, want 15", sum.Total)
	}
	if sum.Subscales["A"] != 6 || sum.Subscales["B"] != 9 {
		t.Errorf("subscales = %v, want A:6 B:9", sum.Subscales)
	}
	if sum.Avg != nil || sum.Classification != "" {
		t.Errorf("generic scoring must not set avg/classification, got %+v", sum)
	}
}

func TestScoreDeterministic(t *testing.T) {
	src := &stubSource{ids: seqIDs(5), defs: []SubscaleDef{{Name: "A", RangeItems: "1-5"}}}
	eng := NewEngine(src)
	in := answers([2]string{"1", "2"}, [2]string{"2|miedo", "3"}, [2]string{"3", "nada"})

	first, err := eng.Score(10, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := eng.Score(10, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}

func TestNonNumericValuesExcludedFromAggregates(t *testing.T) {
	src := &stubSource{ids: seqIDs(2), defs: []SubscaleDef{{Name: "A", RangeItems: "1-2"}}}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers(
		[2]string{"1", "3"},
		[2]string{"2", "prefiero no responder"},
	))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 3 {
		t.Errorf("total = %v, want 3", sum.Total)
	}
	if sum.Subscales["A"] != 3 {
		t.Errorf("subscale A = %v, want 3", sum.Subscales["A"])
	}
}

func TestUnknownQuestionCountsTowardTotalOnly(t *testing.T) {
	src := &stubSource{ids: seqIDs(3), defs: []SubscaleDef{{Name: "A", RangeItems: "1-3"}}}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers(
		[2]string{"1", "2"},
		[2]string{"99", "4"}, // not part of the survey
	))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 6 {
		t.Errorf("total = %v, want 6", sum.Total)
	}
	if sum.Subscales["A"] != 2 {
		t.Errorf("subscale A = %v, want 2 (unknown question must not join any range)", sum.Subscales["A"])
	}
}

func TestQuestionLookupFailureIsFatal(t *testing.T) {
	src := &stubSource{idsErr: errors.New("db down")}
	eng := NewEngine(src)

	if _, err := eng.Score(10, answers([2]string{"1", "2"})); err == nil {
		t.Fatal("expected an error when the question order cannot be resolved")
	}
}

func TestSubscaleLookupFailureDegrades(t *testing.T) {
	src := &stubSource{ids: seqIDs(3), defsErr: errors.New("no such table")}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers([2]string{"1", "2"}, [2]string{"2", "3"}))
	if err != nil {
		t.Fatalf("subscale lookup failure must not abort scoring: %v", err)
	}
	if sum.Total != 5 {
		t.Errorf("total = %v, want 5", sum.Total)
	}
	if len(sum.Subscales) != 0 {
		t.Errorf("subscales = %v, want none", sum.Subscales)
	}
}

func TestMalformedRangesSkipped(t *testing.T) {
	src := &stubSource{
		ids: seqIDs(4),
		defs: []SubscaleDef{
			{Name: "Rota", RangeItems: "x-3"},
			{Name: "Rota", RangeItems: "1"},
			{Name: "Buena", RangeItems: "1-2"},
		},
	}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers([2]string{"1", "1"}, [2]string{"2", "1"}))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if _, ok := sum.Subscales["Rota"]; ok {
		t.Error("malformed range produced a subscale entry")
	}
	if sum.Subscales["Buena"] != 2 {
		t.Errorf("subscale Buena = %v, want 2", sum.Subscales["Buena"])
	}
}

func TestOverlappingAndRepeatedRangesAccumulate(t *testing.T) {
	src := &stubSource{
		ids: seqIDs(4),
		defs: []SubscaleDef{
			{Name: "A", RangeItems: "1-2"},
			{Name: "A", RangeItems: "2-3"}, // same name adds, never replaces
		},
	}
	eng := NewEngine(src)

	sum, err := eng.Score(10, answers(
		[2]string{"1", "1"}, [2]string{"2", "2"}, [2]string{"3", "4"},
	))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// Ordinal 2 sits in both ranges and is counted twice.
	if sum.Subscales["A"] != 9 {
		t.Errorf("subscale A = %v, want 9", sum.Subscales["A"])
	}
}

func TestFearAvoidanceComposite(t *testing.T) {
	cases := []struct {
		name string
		in   []RawAnswer
		want map[string]float64
	}{
		{
			name: "both present",
			in: answers(
				[2]string{"1|miedo", "2"},
				[2]string{"1|evitacion", "1"},
				[2]string{"2|miedo", "0"},
			),
			want: map[string]float64{"Miedo/ansiedad": 2, "Evitacion": 1},
		},
		{
			name: "fear only",
			in:   answers([2]string{"1|miedo", "3"}, [2]string{"1|evitacion", "0"}),
			want: map[string]float64{"Miedo/ansiedad": 3, "Evitacion": 0},
		},
		{
			name: "avoidance only",
			in:   answers([2]string{"1|miedo", "0"}, [2]string{"1|evitacion", "2"}),
			want: map[string]float64{"Miedo/ansiedad": 0, "Evitacion": 2},
		},
		{
			name: "both zero leaves keys absent",
			in:   answers([2]string{"1|miedo", "0"}, [2]string{"1|evitacion", "0"}),
			want: map[string]float64{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &stubSource{ids: seqIDs(2)}
			eng := NewEngine(src)
			sum, err := eng.Score(10, tc.in)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if !reflect.DeepEqual(sum.Subscales, tc.want) {
				t.Errorf("subscales = %v, want %v", sum.Subscales, tc.want)
			}
		})
	}
}

func TestScoreRosenbergReverseCoding(t *testing.T) {
	src := &stubSource{ids: seqIDs(10)}
	eng := NewEngine(src)

	in := make([]RawAnswer, 0, 10)
	for i := 1; i <= 10; i++ {
		in = append(in, RawAnswer{Key: strconv.Itoa(i), Value: "2"})
	}

	sum, err := eng.Score(2, in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// Ordinals 3,5,8,9,10 recode to 5-2=3: 5*2 + 5*3 = 25.
	if sum.Total != 25 {
		t.Errorf("total = %v, want 25", sum.Total)
	}
	if sum.Classification != "Baja autoestima" {
		t.Errorf("classification = %q, want Baja autoestima", sum.Classification)
	}
}

func TestRosenbergBands(t *testing.T) {
	cases := []struct {
		values []string
		want   string
	}{
		// 10 items, 5 reversed. All 1s: 5*1 + 5*(5-1) = 25.
		{[]string{"1", "1", "1", "1", "1", "1", "1", "1", "1", "1"}, "Baja autoestima"},
		// All 4s at direct items, 1s at reversed: 4*5 + 4*5 = 40.
		{[]string{"4", "4", "1", "4", "1", "4", "4", "1", "1", "1"}, "Alta autoestima"},
		// All 3s: 5*3 + 5*(5-3) = 25 -> Baja (tie resolved at <=25).
		{[]string{"3", "3", "3", "3", "3", "3", "3", "3", "3", "3"}, "Baja autoestima"},
		// Direct 3s, reversed 2s: 15 + 15 = 30.
		{[]string{"3", "3", "2", "3", "2", "3", "3", "2", "2", "2"}, "Autoestima moderada (normal)"},
	}

	src := &stubSource{ids: seqIDs(10)}
	eng := NewEngine(src)
	for _, tc := range cases {
		in := make([]RawAnswer, 0, 10)
		for i, v := range tc.values {
			in = append(in, RawAnswer{Key: strconv.Itoa(i + 1), Value: v})
		}
		sum, err := eng.Score(2, in)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if sum.Classification != tc.want {
			t.Errorf("values %v: classification = %q (total %v), want %q", tc.values, sum.Classification, sum.Total, tc.want)
		}
	}
}

func TestScoreMSPSSAverage(t *testing.T) {
	src := &stubSource{
		ids:  seqIDs(4),
		defs: []SubscaleDef{{Name: "Familia", RangeItems: "1-4"}},
	}
	eng := NewEngine(src)

	sum, err := eng.Score(5, answers(
		[2]string{"1", "4"}, [2]string{"2", "5"}, [2]string{"3", "6"}, [2]string{"4", "7"},
	))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 5.5 {
		t.Errorf("total = %v, want 5.5", sum.Total)
	}
	if sum.Avg == nil || *sum.Avg != 5.5 {
		t.Errorf("avg = %v, want 5.5", sum.Avg)
	}
	// 5.5 >= 5.1 lands in the high band, not the moderate one.
	if sum.Classification != "Alto apoyo percibido" {
		t.Errorf("classification = %q, want Alto apoyo percibido", sum.Classification)
	}
	if len(sum.Subscales) != 0 {
		t.Errorf("averaged scoring must discard subscales, got %v", sum.Subscales)
	}
}

func TestMSPSSBands(t *testing.T) {
	cases := []struct {
		values []string
		want   string
	}{
		{[]string{"2", "3"}, "Bajo apoyo percibido"},   // mean 2.5
		{[]string{"2.9", "3"}, "Bajo apoyo percibido"}, // mean 2.95, below the moderate threshold
		{[]string{"3", "3"}, "Apoyo moderado"},         // mean 3.0
		{[]string{"5", "5"}, "Apoyo moderado"},         // mean 5.0
		{[]string{"5", "6"}, "Alto apoyo percibido"},   // mean 5.5
		{[]string{"1", "1"}, "Bajo apoyo percibido"},   // mean 1.0
	}

	src := &stubSource{ids: seqIDs(2)}
	eng := NewEngine(src)
	for _, tc := range cases {
		sum, err := eng.Score(5, answers([2]string{"1", tc.values[0]}, [2]string{"2", tc.values[1]}))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if sum.Classification != tc.want {
			t.Errorf("values %v: classification = %q, want %q", tc.values, sum.Classification, tc.want)
		}
	}
}

func TestScoreFLCASThresholds(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{69, "Ansiedad Baja"},
		{70, "Ansiedad Moderada"},
		{89, "Ansiedad Moderada"},
		{90, "Ansiedad Alta"},
		{120, "Ansiedad Alta"},
	}

	src := &stubSource{ids: seqIDs(1)}
	eng := NewEngine(src)
	for _, tc := range cases {
		sum, err := eng.Score(6, answers([2]string{"1", strconv.FormatFloat(tc.total, 'f', -1, 64)}))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if sum.Total != tc.total {
			t.Errorf("total = %v, want %v (threshold banding keeps the generic sum)", sum.Total, tc.total)
		}
		if sum.Classification != tc.want {
			t.Errorf("total %v: classification = %q, want %q", tc.total, sum.Classification, tc.want)
		}
	}
}

func vstAnswers(n, correct int) []RawAnswer {
	in := make([]RawAnswer, 0, n)
	for i := 0; i < n; i++ {
		v := "0"
		if i < correct {
			v = "1"
		}
		in = append(in, RawAnswer{Key: strconv.Itoa(i + 1), Value: v})
	}
	return in
}

func TestScoreVSTByIdentity(t *testing.T) {
	cases := []struct {
		correct   int
		wantTotal float64
		wantLabel string
	}{
		{12, 1200, ""},
		{20, 2000, "Nivel básico"},
		{55, 5500, "Lectura no especializada"},
		{80, 8000, "Nivel alto"},
		{100, 10000, "Dominio casi nativo"},
	}

	src := &stubSource{ids: seqIDs(100)}
	eng := NewEngine(src)
	for _, tc := range cases {
		sum, err := eng.Score(7, vstAnswers(100, tc.correct))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if sum.Total != tc.wantTotal {
			t.Errorf("correct=%d: total = %v, want %v", tc.correct, sum.Total, tc.wantTotal)
		}
		if sum.Classification != tc.wantLabel {
			t.Errorf("correct=%d: classification = %q, want %q", tc.correct, sum.Classification, tc.wantLabel)
		}
	}
}

func TestVSTHeuristicOnUnregisteredSurvey(t *testing.T) {
	src := &stubSource{ids: seqIDs(25)}
	eng := NewEngine(src)

	// 20 binary answers trip the heuristic.
	sum, err := eng.Score(42, vstAnswers(20, 7))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 700 {
		t.Errorf("total = %v, want 700 (heuristic correctness scoring)", sum.Total)
	}

	// 19 binary answers do not.
	sum, err = eng.Score(42, vstAnswers(19, 7))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 7 {
		t.Errorf("total = %v, want 7 (generic sum)", sum.Total)
	}
}

func TestVSTMarkerProbe(t *testing.T) {
	src := &stubSource{ids: seqIDs(5), marker: true}
	eng := NewEngine(src)

	sum, err := eng.Score(42, vstAnswers(5, 3))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if sum.Total != 300 {
		t.Errorf("total = %v, want 300 (marker forces correctness scoring)", sum.Total)
	}
}

func TestMarkerProbeFailureDegrades(t *testing.T) {
	src := &stubSource{ids: seqIDs(5), marker: true, markerErr: errors.New("no tipo_escala column")}
	eng := NewEngine(src)

	sum, err := eng.Score(42, answers([2]string{"1", "2"}, [2]string{"2", "3"}))
	if err != nil {
		t.Fatalf("marker probe failure must not abort scoring: %v", err)
	}
	if sum.Total != 5 {
		t.Errorf("total = %v, want 5 (generic sum)", sum.Total)
	}
}

func TestSnapshotRecomputeAgreement(t *testing.T) {
	// The snapshot persisted at submission time and a recompute from raw
	// answers must agree on every instrument branch.
	branches := []struct {
		surveyID uint
		src      *stubSource
		in       []RawAnswer
	}{
		{10, &stubSource{ids: seqIDs(5), defs: []SubscaleDef{{Name: "A", RangeItems: "1-3"}}},
			answers([2]string{"1", "2"}, [2]string{"2", "3"}, [2]string{"3", "1"})},
		{2, &stubSource{ids: seqIDs(10)}, vstAnswers(10, 10)},
		{5, &stubSource{ids: seqIDs(4)},
			answers([2]string{"1", "4"}, [2]string{"2", "5"}, [2]string{"3", "6"}, [2]string{"4", "7"})},
		{6, &stubSource{ids: seqIDs(2)}, answers([2]string{"1", "40"}, [2]string{"2", "45"})},
		{7, &stubSource{ids: seqIDs(30)}, vstAnswers(30, 25)},
	}

	for _, b := range branches {
		eng := NewEngine(b.src)
		first, err := eng.Score(b.surveyID, b.in)
		if err != nil {
			t.Fatalf("survey %d: %v", b.surveyID, err)
		}
		snap, err := MarshalSnapshot(first)
		if err != nil {
			t.Fatalf("survey %d: marshal snapshot: %v", b.surveyID, err)
		}
		restored, ok := UnmarshalSnapshot(first.Total, snap)
		if !ok {
			t.Fatalf("survey %d: snapshot did not parse back", b.surveyID)
		}
		recomputed, err := eng.Score(b.surveyID, b.in)
		if err != nil {
			t.Fatalf("survey %d: %v", b.surveyID, err)
		}
		if !reflect.DeepEqual(restored, recomputed) {
			t.Errorf("survey %d: snapshot %+v != recompute %+v", b.surveyID, restored, recomputed)
		}
	}
}
