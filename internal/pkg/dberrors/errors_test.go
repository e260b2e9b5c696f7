package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_course_enrollment"}

	if !IsDuplicateConstraintError(dup, "uq_course_enrollment") {
		t.Error("matching constraint must be detected")
	}
	if IsDuplicateConstraintError(dup, "uq_class_enrollment") {
		t.Error("different constraint must not match")
	}
	if IsDuplicateConstraintError(errors.New("boom"), "uq_course_enrollment") {
		t.Error("plain error must not match")
	}

	// Wrapped errors are unwrapped via errors.As.
	wrapped := fmt.Errorf("insert enrollment: %w", dup)
	if !IsDuplicateConstraintError(wrapped, "uq_course_enrollment") {
		t.Error("wrapped pg error must be detected")
	}
}

func TestAsPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}

	got, ok := AsPgError(fmt.Errorf("create user: %w", pgErr))
	if !ok || got.ConstraintName != "uq_users_email" {
		t.Errorf("AsPgError = (%v, %v), want the wrapped pg error", got, ok)
	}

	if _, ok := AsPgError(errors.New("boom")); ok {
		t.Error("plain error must not extract")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key code must be detected")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not a foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("boom")) {
		t.Error("plain error must not match")
	}
}
