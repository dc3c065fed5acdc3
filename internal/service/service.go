// Package service holds the business rules between the HTTP layer and the
// repositories. Services validate input, enforce the status machine and
// identity rules, and publish notification events.
package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chandrabharti/restaurant-api/internal/domain"
)

// mapNoRows translates the repository miss sentinel into the domain one so
// the HTTP layer only ever sees domain errors.
func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("repository error: %w", err)
}
