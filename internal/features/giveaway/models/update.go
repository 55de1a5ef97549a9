package models

import (
	"time"

	"giveaway-engine/internal/common/errors"
)

// GiveawayUpdate is the explicit partial-update shape. Every allowed field
// is an optional pointer; Validate runs before anything is applied, so a
// rejected update has no partial effect.
type GiveawayUpdate struct {
	Title       *string         `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string         `json:"description,omitempty" binding:"omitempty,max=1000"`
	Eligibility *Eligibility    `json:"eligibility,omitempty"`
	MaxWinners  *int            `json:"max_winners,omitempty" binding:"omitempty,min=1"`
	Status      *GiveawayStatus `json:"status,omitempty"`
	EndAt       *time.Time      `json:"end_at,omitempty"`
	DurationS   *int64          `json:"duration_s,omitempty"`
}

// Validate checks the update shape in isolation. Transition legality against
// the current record is the timing calculator's job.
func (u *GiveawayUpdate) Validate() error {
	if u.EndAt != nil && u.DurationS != nil {
		return errors.NewInvalidConfigurationError("end_at and duration_s are mutually exclusive")
	}
	if u.DurationS != nil && *u.DurationS <= 0 {
		return errors.NewValidationError("duration_s", "must be positive")
	}
	if u.MaxWinners != nil && *u.MaxWinners < 1 {
		return errors.NewValidationError("max_winners", "must be at least 1")
	}
	if u.Status != nil && !u.Status.Valid() {
		return errors.NewValidationError("status", "unknown status "+string(*u.Status))
	}
	return nil
}

// HasTimingChange reports whether the update touches timing or status.
func (u *GiveawayUpdate) HasTimingChange() bool {
	return u.Status != nil || u.EndAt != nil || u.DurationS != nil
}
