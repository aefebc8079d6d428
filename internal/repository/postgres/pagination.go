// internal/repository/postgres/pagination.go
package postgres

import (
	"fmt"

	"productstore/internal/util"
)

// validatePage rejects invalid pagination parameters before any statement is
// issued.
func validatePage(pageNumber, pageSize int) error {
	if pageNumber < 1 || pageSize < 1 {
		return fmt.Errorf("%w: page number and page size must each be >= 1", util.ErrInvalidInput)
	}
	return nil
}

// pageOffset converts a 1-based page number into a row offset.
func pageOffset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}
