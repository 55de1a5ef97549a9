package repository

import (
	"context"
	"errors"

	"giveaway-engine/internal/features/entry/models"
	gmodels "giveaway-engine/internal/features/giveaway/models"
)

var ErrEntryNotFound = errors.New("entry not found")

// EntryRepository is the append-only entry store. List returns entries in
// creation-time ascending order; the draw depends on that order being
// stable, so implementations must break timestamp ties deterministically.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	GetByID(ctx context.Context, id gmodels.EntryID) (*models.Entry, error)
	List(ctx context.Context, giveawayID gmodels.GiveawayID) ([]*models.Entry, error)
	Count(ctx context.Context, giveawayID gmodels.GiveawayID) (int64, error)
	Disqualify(ctx context.Context, id gmodels.EntryID) error
	DeleteAllForGiveaway(ctx context.Context, giveawayID gmodels.GiveawayID) error
	ListByParticipant(ctx context.Context, participant models.ParticipantIdentity) ([]*models.Entry, error)
}
