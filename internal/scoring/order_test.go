package scoring

import "testing"

func TestOrderMapRanksByAscendingID(t *testing.T) {
	order := OrderMap([]uint{31, 7, 12})
	want := map[string]int{"7": 1, "12": 2, "31": 3}
	for id, ord := range want {
		if order[id] != ord {
			t.Errorf("order[%s] = %d, want %d", id, order[id], ord)
		}
	}
	if len(order) != 3 {
		t.Errorf("len = %d, want 3", len(order))
	}
}

func TestOrderMapEmptySurvey(t *testing.T) {
	if order := OrderMap(nil); len(order) != 0 {
		t.Errorf("empty survey produced %v", order)
	}
}

func TestOrderMapDoesNotMutateInput(t *testing.T) {
	ids := []uint{9, 2, 5}
	OrderMap(ids)
	if ids[0] != 9 || ids[1] != 2 || ids[2] != 5 {
		t.Errorf("input slice reordered: %v", ids)
	}
}
