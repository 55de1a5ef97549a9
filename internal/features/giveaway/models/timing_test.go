package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-engine/internal/common/errors"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func durationGiveaway(d int64) *Giveaway {
	remaining := d
	return &Giveaway{
		ID:         NewGiveawayID(),
		Title:      "summer drop",
		MaxWinners: 1,
		Status:     GiveawayStatusDraft,
		DurationS:  &d,
		RemainingS: &remaining,
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
}

func fixedGiveaway(endAt time.Time) *Giveaway {
	return &Giveaway{
		ID:         NewGiveawayID(),
		Title:      "summer drop",
		MaxWinners: 1,
		Status:     GiveawayStatusDraft,
		EndAt:      &endAt,
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
}

func statusUpdate(s GiveawayStatus) *GiveawayUpdate {
	return &GiveawayUpdate{Status: &s}
}

func TestApplyUpdate_ActivateStartsCountdown(t *testing.T) {
	g := durationGiveaway(600)

	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	assert.Equal(t, GiveawayStatusActive, g.Status)
	require.NotNil(t, g.StartAt)
	assert.Equal(t, t0, *g.StartAt)
	require.NotNil(t, g.RemainingS)
	assert.Equal(t, int64(600), *g.RemainingS)
}

func TestApplyUpdate_PauseFoldsElapsedIntoRemaining(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(120*time.Second)))

	assert.Equal(t, GiveawayStatusPaused, g.Status)
	require.NotNil(t, g.RemainingS)
	assert.Equal(t, int64(480), *g.RemainingS)
	assert.Nil(t, g.StartAt)
}

func TestApplyUpdate_ResumeRestartsFromFrozenBudget(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(120*time.Second)))

	resumeAt := t0.Add(300 * time.Second)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), resumeAt))

	assert.Equal(t, GiveawayStatusActive, g.Status)
	require.NotNil(t, g.StartAt)
	assert.Equal(t, resumeAt, *g.StartAt)
	assert.Equal(t, int64(480), *g.RemainingS)

	// Frozen budget of 480s counts from the resume instant.
	assert.True(t, IsOpen(g, resumeAt.Add(479*time.Second)))
	assert.False(t, IsOpen(g, resumeAt.Add(480*time.Second)))
	assert.True(t, ClosedByTiming(g, resumeAt.Add(480*time.Second)))
}

func TestApplyUpdate_RedundantActivateKeepsCountdown(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	// A repeated active update must not restart the countdown.
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0.Add(500*time.Second)))

	require.NotNil(t, g.StartAt)
	assert.Equal(t, t0, *g.StartAt)
	assert.Equal(t, int64(600), *g.RemainingS)
	assert.False(t, IsOpen(g, t0.Add(601*time.Second)))
	assert.True(t, ClosedByTiming(g, t0.Add(601*time.Second)))

	// A pause after the redundant update still folds the true elapsed time.
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(550*time.Second)))
	assert.Equal(t, int64(50), *g.RemainingS)
	assert.Nil(t, g.StartAt)
}

func TestApplyUpdate_PauseBeyondBudgetFloorsAtZero(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(2*time.Hour)))

	assert.Equal(t, int64(0), *g.RemainingS)
	assert.Equal(t, GiveawayStatusPaused, g.Status)
	assert.True(t, ClosedByTiming(g, t0.Add(2*time.Hour)))
}

func TestApplyUpdate_FixedModeClearsCountdownState(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	endAt := t0.Add(24 * time.Hour)
	require.NoError(t, ApplyUpdate(g, &GiveawayUpdate{EndAt: &endAt}, t0.Add(time.Minute)))

	require.NotNil(t, g.EndAt)
	assert.Equal(t, endAt, *g.EndAt)
	assert.Nil(t, g.DurationS)
	assert.Nil(t, g.RemainingS)
	assert.Nil(t, g.StartAt)
}

func TestApplyUpdate_FreshDurationRestartsRunningCountdown(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	at := t0.Add(200 * time.Second)
	d := int64(900)
	require.NoError(t, ApplyUpdate(g, &GiveawayUpdate{DurationS: &d}, at))

	assert.Equal(t, int64(900), *g.DurationS)
	assert.Equal(t, int64(900), *g.RemainingS)
	require.NotNil(t, g.StartAt)
	assert.Equal(t, at, *g.StartAt)
	assert.Nil(t, g.EndAt)
}

func TestApplyUpdate_FreshDurationOnPausedStaysFrozen(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(time.Minute)))

	d := int64(900)
	require.NoError(t, ApplyUpdate(g, &GiveawayUpdate{DurationS: &d}, t0.Add(2*time.Minute)))

	assert.Equal(t, int64(900), *g.RemainingS)
	assert.Nil(t, g.StartAt)
	assert.Equal(t, GiveawayStatusPaused, g.Status)
}

func TestApplyUpdate_BothTimingFieldsRejectedWithoutEffect(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))
	before := *g

	endAt := t0.Add(time.Hour)
	d := int64(300)
	title := "changed"
	err := ApplyUpdate(g, &GiveawayUpdate{Title: &title, EndAt: &endAt, DurationS: &d}, t0.Add(time.Minute))

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidConfiguration, appErr.Code)
	assert.Equal(t, before, *g)
}

func TestApplyUpdate_TransitionRules(t *testing.T) {
	cases := []struct {
		name string
		from GiveawayStatus
		to   GiveawayStatus
		ok   bool
	}{
		{"draft to active", GiveawayStatusDraft, GiveawayStatusActive, true},
		{"draft to paused", GiveawayStatusDraft, GiveawayStatusPaused, false},
		{"draft to closed", GiveawayStatusDraft, GiveawayStatusClosed, false},
		{"active to paused", GiveawayStatusActive, GiveawayStatusPaused, true},
		{"active to closed", GiveawayStatusActive, GiveawayStatusClosed, true},
		{"active to draft", GiveawayStatusActive, GiveawayStatusDraft, false},
		{"paused to active", GiveawayStatusPaused, GiveawayStatusActive, true},
		{"paused to closed", GiveawayStatusPaused, GiveawayStatusClosed, true},
		{"draft cancelled", GiveawayStatusDraft, GiveawayStatusCancelled, true},
		{"active cancelled", GiveawayStatusActive, GiveawayStatusCancelled, true},
		{"paused cancelled", GiveawayStatusPaused, GiveawayStatusCancelled, true},
		{"same status is a no-op", GiveawayStatusActive, GiveawayStatusActive, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := durationGiveaway(600)
			g.Status = tc.from
			if tc.from == GiveawayStatusActive {
				startAt := t0
				g.StartAt = &startAt
			}

			err := ApplyUpdate(g, statusUpdate(tc.to), t0.Add(time.Second))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tc.from, g.Status)
			}
		})
	}
}

func TestApplyUpdate_TerminalStatesFreezeTimingAndStatus(t *testing.T) {
	for _, terminal := range []GiveawayStatus{GiveawayStatusClosed, GiveawayStatusCancelled} {
		g := durationGiveaway(600)
		g.Status = terminal

		assert.Error(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

		d := int64(300)
		assert.Error(t, ApplyUpdate(g, &GiveawayUpdate{DurationS: &d}, t0))

		// Non-timing fields remain editable.
		title := "renamed"
		assert.NoError(t, ApplyUpdate(g, &GiveawayUpdate{Title: &title}, t0))
		assert.Equal(t, "renamed", g.Title)
	}
}

func TestIsOpen_FixedDeadline(t *testing.T) {
	g := fixedGiveaway(t0.Add(time.Hour))
	g.Status = GiveawayStatusActive

	assert.True(t, IsOpen(g, t0))
	assert.True(t, IsOpen(g, t0.Add(time.Hour-time.Second)))
	assert.False(t, IsOpen(g, t0.Add(time.Hour)))
	assert.False(t, IsOpen(g, t0.Add(2*time.Hour)))
}

func TestIsOpen_RequiresActiveStatus(t *testing.T) {
	g := fixedGiveaway(t0.Add(time.Hour))

	for _, status := range []GiveawayStatus{GiveawayStatusDraft, GiveawayStatusPaused, GiveawayStatusClosed, GiveawayStatusCancelled} {
		g.Status = status
		assert.False(t, IsOpen(g, t0), "status %s", status)
	}
}

func TestClosedByTiming_StaleActiveStatus(t *testing.T) {
	// Countdown ran out but no writer flipped the status yet.
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	late := t0.Add(601 * time.Second)
	assert.Equal(t, GiveawayStatusActive, g.Status)
	assert.True(t, ClosedByTiming(g, late))
	assert.False(t, IsOpen(g, late))
}

func TestClosedByTiming_PausedCountdownNeverExpires(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(time.Minute)))

	assert.False(t, ClosedByTiming(g, t0.Add(1000*time.Hour)))
}

func TestRemainingSeconds(t *testing.T) {
	g := durationGiveaway(600)
	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusActive), t0))

	assert.Equal(t, int64(600), RemainingSeconds(g, t0))
	assert.Equal(t, int64(450), RemainingSeconds(g, t0.Add(150*time.Second)))
	assert.Equal(t, int64(0), RemainingSeconds(g, t0.Add(time.Hour)))

	require.NoError(t, ApplyUpdate(g, statusUpdate(GiveawayStatusPaused), t0.Add(150*time.Second)))
	// Frozen budget ignores the clock.
	assert.Equal(t, int64(450), RemainingSeconds(g, t0.Add(time.Hour)))

	fixed := fixedGiveaway(t0.Add(time.Hour))
	assert.Equal(t, int64(3600), RemainingSeconds(fixed, t0))
	assert.Equal(t, int64(0), RemainingSeconds(fixed, t0.Add(2*time.Hour)))
}

func TestGiveawayUpdate_Validate(t *testing.T) {
	endAt := t0
	d := int64(60)
	bad := int64(0)
	winners := 0
	status := GiveawayStatus("bogus")

	assert.Error(t, (&GiveawayUpdate{EndAt: &endAt, DurationS: &d}).Validate())
	assert.Error(t, (&GiveawayUpdate{DurationS: &bad}).Validate())
	assert.Error(t, (&GiveawayUpdate{MaxWinners: &winners}).Validate())
	assert.Error(t, (&GiveawayUpdate{Status: &status}).Validate())
	assert.NoError(t, (&GiveawayUpdate{DurationS: &d}).Validate())
	assert.NoError(t, (&GiveawayUpdate{EndAt: &endAt}).Validate())
}
