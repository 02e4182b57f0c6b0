package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// archiveErr envuelve el error de escritura; un evento repetido se reporta como duplicado.
func archiveErr(op, shiftID string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("corte_historial.%s %s: %w", op, shiftID, domain.ErrDuplicate)
	}
	return fmt.Errorf("corte_historial.%s %s: %w", op, shiftID, err)
}
