package scoring

import (
	"reflect"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	avg := 5.5
	in := Summary{
		Total:          5.5,
		Subscales:      map[string]float64{"Familia": 22, "Amigos": 18},
		Avg:            &avg,
		Classification: "Alto apoyo percibido",
	}

	snap, err := MarshalSnapshot(in)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	out, ok := UnmarshalSnapshot(in.Total, snap)
	if !ok {
		t.Fatal("snapshot did not parse back")
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed summary: %+v vs %+v", in, out)
	}
}

func TestUnmarshalSnapshotRejectsGarbage(t *testing.T) {
	if _, ok := UnmarshalSnapshot(10, "{truncated"); ok {
		t.Error("garbage snapshot reported ok; callers must recompute instead")
	}
}

func TestMarshalSnapshotOmitsEmptyOptionalFields(t *testing.T) {
	snap, err := MarshalSnapshot(Summary{Total: 15, Subscales: map[string]float64{"A": 6}})
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	out, ok := UnmarshalSnapshot(15, snap)
	if !ok {
		t.Fatal("snapshot did not parse back")
	}
	if out.Avg != nil || out.Classification != "" {
		t.Errorf("optional fields materialized from nothing: %+v", out)
	}
	if out.Subscales["A"] != 6 {
		t.Errorf("subscale lost: %+v", out.Subscales)
	}
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in    string
		start int
		end   int
		ok    bool
	}{
		{"1-3", 1, 3, true},
		{" 4 - 10 ", 4, 10, true},
		{"1", 0, 0, false},
		{"a-3", 0, 0, false},
		{"3-b", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		r, ok := parseRange(SubscaleDef{Name: "S", RangeItems: tc.in})
		if ok != tc.ok {
			t.Errorf("parseRange(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && (r.start != tc.start || r.end != tc.end) {
			t.Errorf("parseRange(%q) = %d-%d, want %d-%d", tc.in, r.start, r.end, tc.start, tc.end)
		}
	}
}
