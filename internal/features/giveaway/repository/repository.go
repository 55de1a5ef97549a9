package repository

import (
	"context"
	"errors"

	"giveaway-engine/internal/features/giveaway/models"
)

var (
	ErrGiveawayNotFound = errors.New("giveaway not found")

	// ErrDrawConflict is returned by UpdateDrawCAS when another draw or
	// reroll landed first.
	ErrDrawConflict = errors.New("draw state changed concurrently")
)

// GiveawayRepository is the persistent giveaway store. The backing store is
// assumed to provide per-document atomic read-modify-write but no
// multi-document transactions; cross-entity consistency is the service's
// responsibility, by ordering.
type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *models.Giveaway) error
	GetByID(ctx context.Context, id models.GiveawayID) (*models.Giveaway, error)
	GetMany(ctx context.Context, ids []models.GiveawayID) ([]*models.Giveaway, error)
	Update(ctx context.Context, giveaway *models.Giveaway) error
	Delete(ctx context.Context, id models.GiveawayID) error
	ListByStatus(ctx context.Context, status models.GiveawayStatus) ([]*models.Giveaway, error)

	// UpdateDrawCAS persists giveaway only if the stored record's DrawAt
	// still equals prev. Callers wanting exactly-once draw semantics use
	// this as their mutual-exclusion guard; plain Update does not serialize
	// concurrent draws.
	UpdateDrawCAS(ctx context.Context, giveaway *models.Giveaway, prev *models.Giveaway) error
}
