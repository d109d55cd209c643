package query

import (
	"reflect"
	"testing"
)

func TestBuildSelectWithConditions(t *testing.T) {
	sql, args := NewQueryBuilder().
		Select("id", "fecha").
		From("resultados").
		Where("id_encuesta = ?", 5).
		Where("fecha >= ?", "2026-01-01").
		OrderBy("fecha DESC").
		Limit(10).
		Build()

	want := "SELECT id, fecha FROM resultados WHERE id_encuesta = ? AND fecha >= ? ORDER BY fecha DESC LIMIT 10"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []interface{}{5, "2026-01-01"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSelectStar(t *testing.T) {
	sql, args := NewQueryBuilder().From("usuarios").Build()
	if sql != "SELECT * FROM usuarios" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v", args)
	}
}
