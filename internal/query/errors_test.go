package query

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestClassify_MySQLErrorNumbers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number uint16
		want   error
	}{
		{1062, ErrDuplicate},
		{1451, ErrInvalidReference},
		{1452, ErrInvalidReference},
		{1216, ErrInvalidReference},
		{1217, ErrInvalidReference},
		{1048, ErrInvalidData},
		{1264, ErrInvalidData},
		{1406, ErrInvalidData},
		{3819, ErrInvalidData},
	}
	for _, tc := range cases {
		got := Classify(&mysql.MySQLError{Number: tc.number, Message: "boom"})
		if !errors.Is(got, tc.want) {
			t.Fatalf("number %d: got %v want kind %v", tc.number, got, tc.want)
		}
	}
}

func TestClassify_KeepsNativeDetail(t *testing.T) {
	t.Parallel()

	got := Classify(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'users.email'"})
	if !errors.Is(got, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", got)
	}
	if got.Error() == ErrDuplicate.Error() {
		t.Fatalf("native detail was dropped: %v", got)
	}
}

func TestClassify_ConnectionFailures(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		driver.ErrBadConn,
		mysql.ErrInvalidConn,
		context.DeadlineExceeded,
		fmt.Errorf("exec: %w", context.Canceled),
	} {
		if got := Classify(err); !errors.Is(got, ErrStoreUnavailable) {
			t.Fatalf("%v: got %v want ErrStoreUnavailable", err, got)
		}
	}
}

func TestClassify_NoRowsAndPassthrough(t *testing.T) {
	t.Parallel()

	if got := Classify(sql.ErrNoRows); !errors.Is(got, ErrNotFound) {
		t.Fatalf("sql.ErrNoRows: got %v", got)
	}

	// Kinds already assigned pass through unchanged.
	wrapped := fmt.Errorf("repo: %w", ErrNotFound)
	if got := Classify(wrapped); got != wrapped {
		t.Fatalf("pre-classified error was rewrapped: %v", got)
	}

	// Unknown errors are returned as-is for the handler layer to treat
	// as internal.
	plain := errors.New("something else")
	if got := Classify(plain); got != plain {
		t.Fatalf("unknown error was rewritten: %v", got)
	}

	if Classify(nil) != nil {
		t.Fatal("nil must classify to nil")
	}
}
