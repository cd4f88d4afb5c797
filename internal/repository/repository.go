// Package repository holds the GORM-backed persistence of categories, contacts and users.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// syncSequence moves a postgres serial sequence past rows inserted with explicit ids.
// Other dialects track auto increment values themselves.
func syncSequence(ctx context.Context, db *gorm.DB, table string) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
		table, table,
	)
	if err := db.WithContext(ctx).Exec(query).Error; err != nil {
		return fmt.Errorf("sync %s sequence: %w", table, err)
	}
	return nil
}

// ensureExists tells a vanished row apart from an update that changed nothing,
// since MySQL reports zero affected rows for both.
func ensureExists(db *gorm.DB, table interface{}, id int64) error {
	var count int64
	if err := db.Model(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
