package db

import (
	"gorm.io/gorm"
)

// QueryExecutor handles database queries that sit outside the gorm models,
// mainly schema probes against deployments that predate the snapshot
// columns.
type QueryExecutor struct {
	DB *gorm.DB
}

// NewQueryExecutor creates a new instance of QueryExecutor.
func NewQueryExecutor(db *gorm.DB) *QueryExecutor {
	return &QueryExecutor{DB: db}
}

// IsFieldInTable checks if a field exists in a given table.
func (qe *QueryExecutor) IsFieldInTable(tableName, fieldName string) (bool, error) {
	var exists bool
	query := `SELECT COUNT(*) > 0 FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = ? AND COLUMN_NAME = ?`
	if err := qe.DB.Raw(query, tableName, fieldName).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}
