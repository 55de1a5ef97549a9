package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"giveaway-engine/internal/common/errors"
	emodels "giveaway-engine/internal/features/entry/models"
	entryrepo "giveaway-engine/internal/features/entry/repository"
	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
	userrepo "giveaway-engine/internal/features/user/repository"
)

type giveawayService struct {
	repo    repository.GiveawayRepository
	entries entryrepo.EntryRepository
	users   userrepo.UserDirectory
	logger  zerolog.Logger
	now     func() time.Time
}

func NewGiveawayService(
	repo repository.GiveawayRepository,
	entries entryrepo.EntryRepository,
	users userrepo.UserDirectory,
	logger zerolog.Logger,
) GiveawayService {
	return &giveawayService{
		repo:    repo,
		entries: entries,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *giveawayService) Create(ctx context.Context, input *models.GiveawayCreate) (*models.GiveawayResponse, error) {
	if input.EndAt != nil && input.DurationS != nil {
		return nil, errors.NewInvalidConfigurationError("end_at and duration_s are mutually exclusive")
	}
	if input.DurationS != nil && *input.DurationS <= 0 {
		return nil, errors.NewValidationError("duration_s", "must be positive")
	}
	if input.MaxWinners < 1 {
		return nil, errors.NewValidationError("max_winners", "must be at least 1")
	}

	now := s.now()
	giveaway := &models.Giveaway{
		ID:          models.NewGiveawayID(),
		Title:       input.Title,
		Description: input.Description,
		Eligibility: input.Eligibility,
		MaxWinners:  input.MaxWinners,
		Status:      models.GiveawayStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.EndAt != nil {
		endAt := *input.EndAt
		giveaway.EndAt = &endAt
	}
	if input.DurationS != nil {
		d := *input.DurationS
		remaining := d
		giveaway.DurationS = &d
		giveaway.RemainingS = &remaining
	}

	if err := s.repo.Create(ctx, giveaway); err != nil {
		return nil, errors.NewDatabaseError("create giveaway", err)
	}

	s.logger.Info().
		Str("giveaway_id", giveaway.ID.String()).
		Int("max_winners", giveaway.MaxWinners).
		Msg("Giveaway created")

	return s.toResponse(ctx, giveaway)
}

func (s *giveawayService) GetByID(ctx context.Context, id models.GiveawayID) (*models.GiveawayResponse, error) {
	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("get giveaway", err)
	}
	return s.toResponse(ctx, giveaway)
}

func (s *giveawayService) Update(ctx context.Context, id models.GiveawayID, upd *models.GiveawayUpdate) (*models.GiveawayResponse, *models.StatusBroadcast, error) {
	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, nil, errors.NewDatabaseError("get giveaway", err)
	}

	timingChanged := upd.HasTimingChange()

	if err := models.ApplyUpdate(giveaway, upd, s.now()); err != nil {
		return nil, nil, err
	}

	if err := s.repo.Update(ctx, giveaway); err != nil {
		return nil, nil, errors.NewDatabaseError("update giveaway", err)
	}

	s.logger.Debug().
		Str("giveaway_id", id.String()).
		Str("status", string(giveaway.Status)).
		Msg("Giveaway updated")

	response, err := s.toResponse(ctx, giveaway)
	if err != nil {
		return nil, nil, err
	}

	var broadcast *models.StatusBroadcast
	if timingChanged {
		b := models.NewBroadcast(giveaway)
		broadcast = &b
	}
	return response, broadcast, nil
}

// Delete removes a giveaway and its entries. Entries go first: if that
// fails the giveaway stays, so no orphaned entries can survive a partial
// cascade.
func (s *giveawayService) Delete(ctx context.Context, id models.GiveawayID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if err == repository.ErrGiveawayNotFound {
			return errors.NewGiveawayNotFoundError(id.String())
		}
		return errors.NewDatabaseError("get giveaway", err)
	}

	if err := s.entries.DeleteAllForGiveaway(ctx, id); err != nil {
		return errors.NewDependencyFailureError("delete giveaway entries", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete giveaway", err)
	}

	s.logger.Info().Str("giveaway_id", id.String()).Msg("Giveaway deleted")
	return nil
}

func (s *giveawayService) Join(ctx context.Context, id models.GiveawayID, participant emodels.ParticipantIdentity) (*emodels.EntryResponse, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("get giveaway", err)
	}

	if !models.IsOpen(giveaway, s.now()) {
		return nil, errors.New(errors.ErrCodeConflict, "giveaway is not open for entries")
	}
	if giveaway.Eligibility.MustBeLoggedIn && participant.Anonymous() {
		return nil, errors.NewValidationError("participant", "this giveaway requires a logged-in user")
	}

	entry := &emodels.Entry{
		ID:          models.NewEntryID(),
		GiveawayID:  id,
		Participant: participant,
		CreatedAt:   s.now(),
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("create entry", err)
	}

	return emodels.ToResponse(entry), nil
}

func (s *giveawayService) ListEntries(ctx context.Context, id models.GiveawayID) ([]*emodels.EntryResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if err == repository.ErrGiveawayNotFound {
			return nil, errors.NewGiveawayNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("get giveaway", err)
	}

	entries, err := s.entries.List(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("list entries", err)
	}

	responses := make([]*emodels.EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = emodels.ToResponse(entry)
	}
	return responses, nil
}

func (s *giveawayService) DisqualifyEntry(ctx context.Context, id models.GiveawayID, entryID models.EntryID) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if err == entryrepo.ErrEntryNotFound {
			return errors.NewEntryNotFoundError(entryID.String())
		}
		return errors.NewDatabaseError("get entry", err)
	}
	if entry.GiveawayID != id {
		return errors.NewEntryNotFoundError(entryID.String())
	}

	if err := s.entries.Disqualify(ctx, entryID); err != nil {
		return errors.NewDatabaseError("disqualify entry", err)
	}

	s.logger.Info().
		Str("giveaway_id", id.String()).
		Str("entry_id", entryID.String()).
		Msg("Entry disqualified")
	return nil
}

// Participations answers "which giveaways is this participant currently an
// eligible, unexpired participant of". Giveaways are fetched in one batch.
func (s *giveawayService) Participations(ctx context.Context, participant emodels.ParticipantIdentity) ([]*models.ParticipationResponse, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByParticipant(ctx, participant)
	if err != nil {
		return nil, errors.NewDatabaseError("list participant entries", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]models.GiveawayID, 0, len(entries))
	seen := make(map[models.GiveawayID]bool, len(entries))
	for _, entry := range entries {
		if entry.Disqualified || seen[entry.GiveawayID] {
			continue
		}
		seen[entry.GiveawayID] = true
		ids = append(ids, entry.GiveawayID)
	}

	giveaways, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("get giveaways", err)
	}
	byID := make(map[models.GiveawayID]*models.Giveaway, len(giveaways))
	for _, g := range giveaways {
		byID[g.ID] = g
	}

	now := s.now()
	responses := make([]*models.ParticipationResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.Disqualified {
			continue
		}
		g, ok := byID[entry.GiveawayID]
		if !ok {
			continue
		}
		switch g.Status {
		case models.GiveawayStatusDraft, models.GiveawayStatusClosed, models.GiveawayStatusCancelled:
			continue
		}
		if models.ClosedByTiming(g, now) {
			continue
		}

		responses = append(responses, &models.ParticipationResponse{
			GiveawayID:     g.ID,
			Title:          g.Title,
			Status:         g.Status,
			EndAt:          g.EndAt,
			DurationS:      g.DurationS,
			RemainingS:     g.RemainingS,
			StartAt:        g.StartAt,
			Eligibility:    g.Eligibility,
			EntryID:        entry.ID,
			EntryCreatedAt: entry.CreatedAt,
		})
	}

	return responses, nil
}

func (s *giveawayService) toResponse(ctx context.Context, g *models.Giveaway) (*models.GiveawayResponse, error) {
	count, err := s.entries.Count(ctx, g.ID)
	if err != nil {
		return nil, errors.NewDatabaseError("count entries", err)
	}

	return &models.GiveawayResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		Eligibility:  g.Eligibility,
		MaxWinners:   g.MaxWinners,
		Status:       g.Status,
		EndAt:        g.EndAt,
		DurationS:    g.DurationS,
		RemainingS:   g.RemainingS,
		StartAt:      g.StartAt,
		Open:         models.IsOpen(g, s.now()),
		Winners:      g.Winners,
		WinnerProofs: g.WinnerProofs,
		EntriesCount: count,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}, nil
}
