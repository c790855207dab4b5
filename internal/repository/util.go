package repository

import (
	"errors"

	"gorm.io/gorm"
)

var errInvalidAffectedRows = errors.New("the number of affected rows is invalid")

// checkOne verifies that the statement touched exactly one row.
func checkOne(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errInvalidAffectedRows
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
