package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
)

// ExpirationService periodically closes giveaways whose deadline or
// countdown has elapsed while their stored status is still active. It is
// the only writer that flips status based on timing; the calculator and
// the participation query stay pure.
type ExpirationService struct {
	ctx      context.Context
	cancel   context.CancelFunc
	repo     repository.GiveawayRepository
	interval time.Duration
	logger   zerolog.Logger
	done     chan struct{}
	now      func() time.Time
}

func NewExpirationService(repo repository.GiveawayRepository, interval time.Duration, logger zerolog.Logger) *ExpirationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ExpirationService{
		ctx:      ctx,
		cancel:   cancel,
		repo:     repo,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start launches the sweep loop. Call Stop to shut it down.
func (s *ExpirationService) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()

	s.logger.Info().Dur("interval", s.interval).Msg("Expiration sweep started")
}

// Stop cancels the loop and waits for the current sweep to finish.
func (s *ExpirationService) Stop() {
	s.cancel()
	<-s.done
	s.logger.Info().Msg("Expiration sweep stopped")
}

func (s *ExpirationService) sweep() {
	ctx, cancel := context.WithTimeout(s.ctx, s.interval)
	defer cancel()

	active, err := s.repo.ListByStatus(ctx, models.GiveawayStatusActive)
	if err != nil {
		s.logger.Error().Err(err).Msg("Expiration sweep failed to list active giveaways")
		return
	}

	now := s.now()
	for _, giveaway := range active {
		if !models.ClosedByTiming(giveaway, now) {
			continue
		}

		status := models.GiveawayStatusClosed
		if err := models.ApplyUpdate(giveaway, &models.GiveawayUpdate{Status: &status}, now); err != nil {
			s.logger.Error().Err(err).
				Str("giveaway_id", giveaway.ID.String()).
				Msg("Expiration transition rejected")
			continue
		}

		if err := s.repo.Update(ctx, giveaway); err != nil {
			s.logger.Error().Err(err).
				Str("giveaway_id", giveaway.ID.String()).
				Msg("Failed to close expired giveaway")
			continue
		}

		s.logger.Info().
			Str("giveaway_id", giveaway.ID.String()).
			Msg("Giveaway closed by timing")
	}
}
