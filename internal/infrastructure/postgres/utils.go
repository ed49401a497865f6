package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// SQLSTATE que indican que otra transacción tiene el recurso; el caller puede reintentar.
const (
	codeLockNotAvailable     = "55P03" // lock_timeout vencido
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidTextRepr      = "22P02" // id que no es UUID
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure:
		return true
	}
	return false
}

// isUnknownReference: FK inexistente o id mal formado; ninguno puede corresponder a una fila.
func isUnknownReference(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeForeignKeyViolation || pgErr.Code == codeInvalidTextRepr
}

// mapError traduce errores del driver a errores de dominio.
// Bloqueos y deadlocks → ErrTransactionConflict; único → ErrDuplicate;
// FK o id inválido → ErrUnknownEntity; resto → PersistenceError.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return domain.ErrTransactionConflict
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isUnknownReference(err) {
		return domain.ErrUnknownEntity
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
