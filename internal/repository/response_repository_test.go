package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultListColumnsFullSchema(t *testing.T) {
	cols := resultListColumns(func(string) (bool, error) { return true, nil })
	assert.Equal(t, []string{"id", "fecha", "id_usuario", "id_encuesta", "public_id", "puntaje_total", "resumen_json"}, cols)
}

func TestResultListColumnsLegacySchema(t *testing.T) {
	cols := resultListColumns(func(string) (bool, error) { return false, nil })
	assert.Equal(t, []string{"id", "fecha", "id_usuario", "id_encuesta"}, cols)
}

func TestResultListColumnsProbeFailureOmitsColumn(t *testing.T) {
	cols := resultListColumns(func(column string) (bool, error) {
		if column == "resumen_json" {
			return false, errors.New("probe failed")
		}
		return true, nil
	})
	assert.Equal(t, []string{"id", "fecha", "id_usuario", "id_encuesta", "public_id", "puntaje_total"}, cols)
}
