// Package repository holds the SQL for listings, genres and shows. The
// sentinel values below let services and handlers tell failure scenarios
// apart without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrUserNotFound is returned when no users row matches the id (or the
// row has a different type than the caller asked for).
var ErrUserNotFound = errors.New("user not found")

// ErrUnknownGenre is returned when a submitted genre name is not in the
// genres table.
var ErrUnknownGenre = errors.New("unknown genre")

// ErrInvalidReference signals a foreign key violation, e.g. a show whose
// artist_id is not an artist.
var ErrInvalidReference = errors.New("invalid reference")

// ErrDuplicate signals a unique or primary key violation.
var ErrDuplicate = errors.New("duplicate entry")

// MySQL server error numbers mapped onto the sentinels above.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1216
	mysqlNoReferencedRow2 = 1452
	mysqlRowIsReferenced2 = 1451
)

// mapDriverError translates MySQL constraint failures into sentinels
// while keeping the driver error reachable through errors.As.
func mapDriverError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case mysqlNoReferencedRow, mysqlNoReferencedRow2, mysqlRowIsReferenced2:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return err
}
