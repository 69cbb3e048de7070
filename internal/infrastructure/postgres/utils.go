package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/floreria-ops/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapTxError traduce fallas de serialización y deadlocks (40001, 40P01) a
// ErrConcurrencyConflict: el caller reintenta con una lectura fresca en lugar
// de sobrescribir en silencio.
func mapTxError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}
