// Package pgerrs classifies Postgres driver errors the repositories care about.
package pgerrs

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. Repositories translate these into their conflict sentinels so
// concurrent inserts surface as business conflicts, not generic failures.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolationCode
	}
	return false
}
