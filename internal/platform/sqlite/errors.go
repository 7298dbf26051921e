package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/phrazzld/tasks-api/internal/store"
)

// titleConstraint is how SQLite names the unique title column in constraint errors.
const titleConstraint = "tasks.title"

// MapError maps a SQLite error to the matching store error, wrapping the
// original for context. Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if IsUniqueViolation(err) {
		if strings.Contains(err.Error(), titleConstraint) {
			return fmt.Errorf("%w: %v", store.ErrTaskTitleExists, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	if IsConstraintViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	code, ok := errorCode(err)
	return ok && (code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsConstraintViolation reports whether err is any constraint failure.
func IsConstraintViolation(err error) bool {
	code, ok := errorCode(err)
	// Extended result codes keep the primary code in the low byte.
	return ok && code&0xff == sqlite3.SQLITE_CONSTRAINT
}

func errorCode(err error) (int, bool) {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code(), true
}
