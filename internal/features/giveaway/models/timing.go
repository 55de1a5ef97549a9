package models

import (
	"fmt"
	"time"

	"giveaway-engine/internal/common/errors"
)

// Timing calculator: pure functions over a giveaway record and a requested
// update. Nothing here touches storage or the wall clock; callers pass now.

// ApplyUpdate validates u against g's current state and applies it. On error
// g is left untouched. now is the instant the update takes effect.
func ApplyUpdate(g *Giveaway, u *GiveawayUpdate, now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if g.Status.Terminal() && u.HasTimingChange() {
		return errors.NewInvalidConfigurationError(
			fmt.Sprintf("giveaway is %s and can no longer change status or timing", g.Status))
	}

	if u.Status != nil {
		if err := checkTransition(g.Status, *u.Status); err != nil {
			return err
		}
	}

	// Everything is validated; from here on the update cannot half-apply.

	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Eligibility != nil {
		g.Eligibility = *u.Eligibility
	}
	if u.MaxWinners != nil {
		g.MaxWinners = *u.MaxWinners
	}

	wasRunning := g.Running()

	switch {
	case u.EndAt != nil:
		// Fixed mode: an absolute deadline replaces any countdown state.
		endAt := *u.EndAt
		g.EndAt = &endAt
		g.DurationS = nil
		g.RemainingS = nil
		g.StartAt = nil

	case u.DurationS != nil:
		// Duration mode: a fresh duration resets the remaining budget.
		d := *u.DurationS
		g.DurationS = &d
		remaining := d
		g.RemainingS = &remaining
		g.EndAt = nil
		if wasRunning {
			// The countdown was ticking: restart it from the new budget
			// rather than counting the new budget from the stale start
			// instant.
			startAt := now
			g.StartAt = &startAt
		} else {
			g.StartAt = nil
		}
	}

	if u.Status != nil {
		applyStatus(g, *u.Status, wasRunning, now)
	}

	g.UpdatedAt = now
	return nil
}

func applyStatus(g *Giveaway, status GiveawayStatus, wasRunning bool, now time.Time) {
	switch status {
	case GiveawayStatusActive:
		if g.DurationMode() {
			if g.RemainingS == nil {
				remaining := *g.DurationS
				g.RemainingS = &remaining
			}
			// A redundant active update on a running countdown is a no-op;
			// re-seeding StartAt here would hand back the elapsed time.
			if !wasRunning {
				startAt := now
				g.StartAt = &startAt
			}
		}

	case GiveawayStatusPaused, GiveawayStatusClosed, GiveawayStatusCancelled:
		// Leaving the active state stops the countdown: fold the elapsed
		// time into the remaining budget and clear the start instant.
		if g.DurationMode() && wasRunning {
			freezeCountdown(g, now)
		}
	}

	g.Status = status
}

func freezeCountdown(g *Giveaway, now time.Time) {
	elapsed := int64(now.Sub(*g.StartAt).Seconds())
	remaining := int64(0)
	if g.RemainingS != nil {
		remaining = *g.RemainingS - elapsed
	}
	if remaining < 0 {
		remaining = 0
	}
	g.RemainingS = &remaining
	g.StartAt = nil
}

func checkTransition(from, to GiveawayStatus) error {
	if from == to {
		return nil
	}
	if to == GiveawayStatusCancelled {
		// Reachable from any non-closed state; terminal states are rejected
		// before this point.
		return nil
	}

	allowed := false
	switch from {
	case GiveawayStatusDraft:
		allowed = to == GiveawayStatusActive
	case GiveawayStatusActive:
		allowed = to == GiveawayStatusPaused || to == GiveawayStatusClosed
	case GiveawayStatusPaused:
		allowed = to == GiveawayStatusActive || to == GiveawayStatusClosed
	}

	if !allowed {
		return errors.NewInvalidConfigurationError(
			fmt.Sprintf("cannot transition from %s to %s", from, to))
	}
	return nil
}

// IsOpen reports whether the giveaway accepts new entries at now: status is
// active and the deadline or countdown has not elapsed.
func IsOpen(g *Giveaway, now time.Time) bool {
	if g.Status != GiveawayStatusActive {
		return false
	}
	if g.FixedMode() {
		return now.Before(*g.EndAt)
	}
	if g.DurationMode() {
		if g.RemainingS == nil || *g.RemainingS <= 0 {
			return false
		}
		if g.StartAt != nil {
			return deadline(g).After(now)
		}
		return true
	}
	// No timing configured yet; an active giveaway without a deadline is open.
	return true
}

// ClosedByTiming reports whether the deadline or countdown has elapsed,
// regardless of the stored status field. The participation query and the
// expiration sweep use this to catch giveaways whose status is stale.
func ClosedByTiming(g *Giveaway, now time.Time) bool {
	if g.FixedMode() {
		return !g.EndAt.After(now)
	}
	if g.DurationMode() {
		if g.RemainingS == nil || *g.RemainingS <= 0 {
			return true
		}
		if g.StartAt != nil {
			return !deadline(g).After(now)
		}
		return false
	}
	return false
}

// RemainingSeconds returns the seconds left before the giveaway closes by
// timing, floored at zero. Paused countdowns report their frozen budget.
func RemainingSeconds(g *Giveaway, now time.Time) int64 {
	switch {
	case g.FixedMode():
		left := int64(g.EndAt.Sub(now).Seconds())
		if left < 0 {
			return 0
		}
		return left
	case g.DurationMode():
		if g.RemainingS == nil {
			return 0
		}
		remaining := *g.RemainingS
		if g.StartAt != nil {
			remaining -= int64(now.Sub(*g.StartAt).Seconds())
		}
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return 0
}

func deadline(g *Giveaway) time.Time {
	return g.StartAt.Add(time.Duration(*g.RemainingS) * time.Second)
}
