package query

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

// Error kinds shared by every repository. Handlers switch on these with
// errors.Is and map them to HTTP statuses; raw driver errors never reach
// a handler.
var (
	// ErrNoFieldsToUpdate means an update payload was empty after
	// allow-list filtering. No statement was executed.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrNotFound means the targeted row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate resource")

	// ErrInvalidReference is a foreign-key violation.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidData is a check-constraint or column-domain violation.
	ErrInvalidData = errors.New("invalid data")

	// ErrStoreUnavailable means the store could not be reached in time.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MySQL server error numbers recognised by Classify.
const (
	mysqlDupEntry         = 1062 // ER_DUP_ENTRY
	mysqlNoReferencedRow  = 1216 // ER_NO_REFERENCED_ROW
	mysqlRowIsReferenced  = 1217 // ER_ROW_IS_REFERENCED
	mysqlRowIsReferenced2 = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlNoReferencedRow2 = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlBadNull          = 1048 // ER_BAD_NULL_ERROR
	mysqlDataOutOfRange   = 1264 // ER_WARN_DATA_OUT_OF_RANGE
	mysqlDataTooLong      = 1406 // ER_DATA_TOO_LONG
	mysqlCheckViolated    = 3819 // ER_CHECK_CONSTRAINT_VIOLATED
)

// Classify translates a driver-level error into one of the taxonomy
// kinds above, wrapping the original so the native text stays available
// for server-side logging. Errors that already carry a kind pass
// through unchanged; unknown errors are returned as-is and treated as
// internal by the handler layer.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNoFieldsToUpdate, ErrNotFound, ErrDuplicate,
		ErrInvalidReference, ErrInvalidData, ErrStoreUnavailable} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return wrapKind(ErrNotFound, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return wrapKind(ErrDuplicate, err)
		case mysqlNoReferencedRow, mysqlRowIsReferenced, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
			return wrapKind(ErrInvalidReference, err)
		case mysqlBadNull, mysqlDataOutOfRange, mysqlDataTooLong, mysqlCheckViolated:
			return wrapKind(ErrInvalidData, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &netErr) {
		return wrapKind(ErrStoreUnavailable, err)
	}
	return err
}

// wrapKind attaches a taxonomy kind to a driver error. errors.Is
// matches the kind while the wrapped text keeps the native detail.
func wrapKind(kind, err error) error {
	return fmt.Errorf("%w: %v", kind, err)
}
