package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Timesheet-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de foreign key (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	return false
}

// writeError traduce violaciones de integridad a domain.ErrConflict y de CHECK a domain.ErrInvalidInput.
func writeError(op string, err error) error {
	if isUniqueViolation(err) || isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrConflict, op)
	}
	if isCheckViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullIfEmpty devuelve nil para strings vacíos (columnas NULL).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// derefStr devuelve "" para columnas NULL.
func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
