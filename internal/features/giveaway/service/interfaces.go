package service

import (
	"context"

	emodels "giveaway-engine/internal/features/entry/models"
	"giveaway-engine/internal/features/giveaway/models"
)

// GiveawayService is the engine's single entry point. Transport is the
// caller's concern; every operation is one request-response unit against
// the store with no internal retries.
type GiveawayService interface {
	Create(ctx context.Context, input *models.GiveawayCreate) (*models.GiveawayResponse, error)
	GetByID(ctx context.Context, id models.GiveawayID) (*models.GiveawayResponse, error)

	// Update applies a validated partial update. The returned broadcast is
	// non-nil when status or timing changed; publishing it is the caller's
	// side effect, not the engine's.
	Update(ctx context.Context, id models.GiveawayID, upd *models.GiveawayUpdate) (*models.GiveawayResponse, *models.StatusBroadcast, error)

	// Delete cascades to entries first and aborts if that fails.
	Delete(ctx context.Context, id models.GiveawayID) error

	Join(ctx context.Context, id models.GiveawayID, participant emodels.ParticipantIdentity) (*emodels.EntryResponse, error)
	ListEntries(ctx context.Context, id models.GiveawayID) ([]*emodels.EntryResponse, error)
	DisqualifyEntry(ctx context.Context, id models.GiveawayID, entryID models.EntryID) error

	Draw(ctx context.Context, id models.GiveawayID) (*models.DrawResponse, error)
	Reroll(ctx context.Context, id models.GiveawayID, position int) (*models.DrawResponse, error)

	Participations(ctx context.Context, participant emodels.ParticipantIdentity) ([]*models.ParticipationResponse, error)
}
