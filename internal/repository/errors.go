package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inkpost/internal/apperr"
)

// Postgres SQLSTATE codes the repository maps onto the error taxonomy.
const (
	codeUniqueViolation      = "23505"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeCrashShutdown        = "57P02"
	codeCannotConnectNow     = "57P03"

	slugConstraint = "articles_slug_key"
)

// translate maps a pgx error onto apperr kinds. slug is reported in
// DuplicateSlug errors.
func translate(op string, err error, slug string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == slugConstraint:
			return fmt.Errorf("%s: %w", op, apperr.NewDuplicateSlug(slug, err))
		case pgErr.Code == codeNotNullViolation:
			return fmt.Errorf("%s: %w", op, apperr.NewValidation(pgErr.ColumnName, "is required"))
		case pgErr.Code == codeCheckViolation:
			return fmt.Errorf("%s: %w", op, apperr.NewValidation(checkColumn(pgErr), "violates constraint "+pgErr.ConstraintName))
		case isTransientCode(pgErr.Code):
			return apperr.Unavailable(op, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if isTransient(err) {
		return apperr.Unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransientCode(code string) bool {
	switch code {
	case codeSerializationFailure, codeDeadlockDetected, codeAdminShutdown, codeCrashShutdown, codeCannotConnectNow:
		return true
	}
	// class 08: connection exception, class 53: insufficient resources
	return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "53")
}

func isTransient(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// checkColumn guesses the column from a "<table>_<column>_check" constraint.
func checkColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_"), "_check")
	if name == "" {
		return "article"
	}
	return name
}
