package service

import (
	"context"

	"giveaway-engine/internal/common/errors"
	emodels "giveaway-engine/internal/features/entry/models"
	"giveaway-engine/internal/features/giveaway/draw"
	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
)

// Draw snapshots the eligible entries in their stable creation order and
// runs the seeded selection over them. Zero eligible entries is not an
// error: the giveaway simply ends with no winners.
func (s *giveawayService) Draw(ctx context.Context, id models.GiveawayID) (*models.DrawResponse, error) {
	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("get giveaway", err)
	}

	ids, entriesByID, err := s.eligibleEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	seed, err := draw.NewSeed()
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := draw.Run(ids, giveaway.MaxWinners, seed, now)

	prev := *giveaway
	giveaway.Winners = result.Winners
	giveaway.WinnerProofs = result.Proofs
	giveaway.DrawSeed = result.Seed
	giveaway.DrawInputHash = result.InputHash
	giveaway.DrawInputSize = result.InputSize
	giveaway.DrawAt = &now
	giveaway.UpdatedAt = now

	if err := s.repo.UpdateDrawCAS(ctx, giveaway, &prev); err != nil {
		if err == repository.ErrDrawConflict {
			return nil, errors.New(errors.ErrCodeConflict, "another draw or reroll finished first")
		}
		return nil, errors.NewDatabaseError("persist draw", err)
	}

	s.logger.Info().
		Str("giveaway_id", id.String()).
		Int("input_size", result.InputSize).
		Int("winners", len(result.Winners)).
		Msg("Draw completed")

	return s.toDrawResponse(ctx, giveaway, entriesByID), nil
}

// Reroll re-selects exactly one winner position from a fresh snapshot. All
// other positions and their proofs stay untouched; the top-level draw
// fields are rewritten to describe this reroll. An empty pool fails without
// mutating anything.
func (s *giveawayService) Reroll(ctx context.Context, id models.GiveawayID, position int) (*models.DrawResponse, error) {
	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("get giveaway", err)
	}

	if position < 0 || position >= len(giveaway.Winners) {
		return nil, errors.NewInvalidConfigurationError("position is not an existing winner index").
			WithDetail("position", position).
			WithDetail("winners", len(giveaway.Winners))
	}

	ids, entriesByID, err := s.eligibleEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	seed, err := draw.NewSeed()
	if err != nil {
		return nil, err
	}

	now := s.now()
	picked, proof, err := draw.RerollPick(ids, giveaway.Winners, position, seed, now)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeEmptyPool {
			return nil, errors.NewEmptyPoolError(id.String())
		}
		return nil, err
	}

	prev := *giveaway
	giveaway.Winners = append([]models.EntryID(nil), prev.Winners...)
	giveaway.WinnerProofs = append([]models.WinnerProof(nil), prev.WinnerProofs...)
	giveaway.Winners[position] = picked
	giveaway.WinnerProofs[position] = *proof
	giveaway.DrawSeed = seed
	giveaway.DrawInputHash = proof.InputHash
	giveaway.DrawInputSize = proof.InputSize
	giveaway.DrawAt = &now
	giveaway.UpdatedAt = now

	if err := s.repo.UpdateDrawCAS(ctx, giveaway, &prev); err != nil {
		if err == repository.ErrDrawConflict {
			return nil, errors.New(errors.ErrCodeConflict, "another draw or reroll finished first")
		}
		return nil, errors.NewDatabaseError("persist reroll", err)
	}

	s.logger.Info().
		Str("giveaway_id", id.String()).
		Int("position", position).
		Str("entry_id", picked.String()).
		Msg("Winner rerolled")

	return s.toDrawResponse(ctx, giveaway, entriesByID), nil
}

// eligibleEntries returns the ordered non-disqualified entry ids, the draw
// universe, plus a lookup for enrichment.
func (s *giveawayService) eligibleEntries(ctx context.Context, id models.GiveawayID) ([]models.EntryID, map[models.EntryID]*emodels.Entry, error) {
	entries, err := s.entries.List(ctx, id)
	if err != nil {
		return nil, nil, errors.NewDatabaseError("list entries", err)
	}

	ids := make([]models.EntryID, 0, len(entries))
	byID := make(map[models.EntryID]*emodels.Entry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
		if entry.Disqualified {
			continue
		}
		ids = append(ids, entry.ID)
	}
	return ids, byID, nil
}

func (s *giveawayService) toDrawResponse(ctx context.Context, g *models.Giveaway, entriesByID map[models.EntryID]*emodels.Entry) *models.DrawResponse {
	response := &models.DrawResponse{
		GiveawayID:     g.ID,
		Winners:        g.Winners,
		WinnerProofs:   g.WinnerProofs,
		DrawSeed:       g.DrawSeed,
		DrawInputHash:  g.DrawInputHash,
		DrawInputSize:  g.DrawInputSize,
		WinnersDetails: s.winnersDetails(ctx, g.Winners, entriesByID),
	}
	if g.DrawAt != nil {
		response.DrawAt = *g.DrawAt
	}
	return response
}

// winnersDetails enriches winner ids with display info from the identity
// directory. A failed or partial lookup degrades to id-only details; the
// draw result itself never depends on the collaborator.
func (s *giveawayService) winnersDetails(ctx context.Context, winners []models.EntryID, entriesByID map[models.EntryID]*emodels.Entry) []models.WinnerDetail {
	userIDs := make([]string, 0, len(winners))
	for _, entryID := range winners {
		if entry, ok := entriesByID[entryID]; ok && entry.Participant.UserID != "" {
			userIDs = append(userIDs, entry.Participant.UserID)
		}
	}

	users, err := s.users.GetMany(ctx, userIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Winner enrichment lookup failed")
		users = nil
	}

	details := make([]models.WinnerDetail, len(winners))
	for i, entryID := range winners {
		detail := models.WinnerDetail{Position: i, EntryID: entryID}
		if entry, ok := entriesByID[entryID]; ok {
			detail.UserID = entry.Participant.UserID
			detail.AnonID = entry.Participant.AnonID
			if user, ok := users[entry.Participant.UserID]; ok {
				detail.Username = user.Username
				detail.AvatarURL = user.AvatarURL
			}
		}
		details[i] = detail
	}
	return details
}
