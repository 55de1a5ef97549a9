package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "giveaway-engine/internal/common/errors"
	emodels "giveaway-engine/internal/features/entry/models"
	"giveaway-engine/internal/features/giveaway/draw"
	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
	umodels "giveaway-engine/internal/features/user/models"
)

func seedEntries(t *testing.T, h *testHarness, id models.GiveawayID, n int) []*emodels.EntryResponse {
	t.Helper()
	entries := make([]*emodels.EntryResponse, n)
	for i := 0; i < n; i++ {
		entries[i] = join(t, h, id, "u"+string(rune('a'+i)))
		h.advance(time.Second)
	}
	return entries
}

func TestDraw_PersistsWinnersAndProofs(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	seedEntries(t, h, created.ID, 10)

	response, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, response.Winners, 2)
	require.Len(t, response.WinnerProofs, 2)
	assert.Equal(t, 10, response.DrawInputSize)
	assert.Len(t, response.DrawSeed, 32)
	assert.NotEqual(t, response.Winners[0], response.Winners[1])

	stored := h.repo.giveaways[created.ID]
	assert.Equal(t, response.Winners, stored.Winners)
	assert.Equal(t, response.WinnerProofs, stored.WinnerProofs)
	assert.Equal(t, response.DrawSeed, stored.DrawSeed)
	assert.Equal(t, response.DrawInputHash, stored.DrawInputHash)
	require.NotNil(t, stored.DrawAt)
	assert.Equal(t, h.clock, *stored.DrawAt)
}

func TestDraw_Replayable(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	seedEntries(t, h, created.ID, 10)

	response, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)

	entries, err := h.svc.ListEntries(context.Background(), created.ID)
	require.NoError(t, err)
	ids := make([]models.EntryID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	assert.Equal(t, draw.InputHash(ids), response.DrawInputHash)
	assert.Equal(t, response.Winners, draw.Replay(ids, 2, response.DrawSeed))
}

func TestDraw_ExcludesDisqualified(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	entries := seedEntries(t, h, created.ID, 3)

	require.NoError(t, h.svc.DisqualifyEntry(context.Background(), created.ID, entries[0].ID))
	require.NoError(t, h.svc.DisqualifyEntry(context.Background(), created.ID, entries[2].ID))

	response, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, response.Winners, 1)
	assert.Equal(t, entries[1].ID, response.Winners[0])
	assert.Equal(t, 1, response.DrawInputSize)
}

func TestDraw_EmptyPoolYieldsNoWinners(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)

	response, err := h.svc.Draw(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Empty(t, response.Winners)
	assert.Empty(t, response.WinnerProofs)
	assert.Equal(t, 0, response.DrawInputSize)
}

func TestDraw_ConflictWhenAnotherDrawLandsFirst(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	seedEntries(t, h, created.ID, 5)

	h.repo.casErr = repository.ErrDrawConflict
	_, err := h.svc.Draw(context.Background(), created.ID)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestReroll_ChangesExactlyOnePosition(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	seedEntries(t, h, created.ID, 10)

	first, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)
	h.advance(time.Minute)

	rerolled, err := h.svc.Reroll(context.Background(), created.ID, 1)
	require.NoError(t, err)

	// Position 0 and its proof survive byte for byte.
	assert.Equal(t, first.Winners[0], rerolled.Winners[0])
	assert.Equal(t, first.WinnerProofs[0], rerolled.WinnerProofs[0])

	// Position 1 carries a proof from the reroll's own seed and snapshot.
	assert.Equal(t, 1, rerolled.WinnerProofs[1].Position)
	assert.Equal(t, rerolled.Winners[1], rerolled.WinnerProofs[1].EntryID)
	assert.NotEqual(t, first.DrawSeed, rerolled.DrawSeed)
	assert.Equal(t, h.clock, rerolled.DrawAt)

	// The other winner cannot be picked again.
	assert.NotEqual(t, rerolled.Winners[0], rerolled.Winners[1])

	stored := h.repo.giveaways[created.ID]
	assert.Equal(t, rerolled.Winners, stored.Winners)
	assert.Equal(t, rerolled.DrawSeed, stored.DrawSeed)
}

func TestReroll_PositionOutOfRange(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	seedEntries(t, h, created.ID, 5)

	_, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)

	for _, position := range []int{-1, 2, 99} {
		_, err := h.svc.Reroll(context.Background(), created.ID, position)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok, "position %d", position)
		assert.Equal(t, apperrors.ErrCodeInvalidConfiguration, appErr.Code)
	}
}

func TestReroll_EmptyPoolMutatesNothing(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	entries := seedEntries(t, h, created.ID, 2)

	first, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, first.Winners, 2)

	// Disqualify the incumbent at position 1; the only other eligible entry
	// holds position 0, so the reroll pool is empty.
	var incumbent models.EntryID
	for _, e := range entries {
		if e.ID == first.Winners[1] {
			incumbent = e.ID
		}
	}
	require.NoError(t, h.svc.DisqualifyEntry(context.Background(), created.ID, incumbent))

	before := *h.repo.giveaways[created.ID]
	_, err = h.svc.Reroll(context.Background(), created.ID, 1)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeEmptyPool, appErr.Code)
	assert.Equal(t, before, *h.repo.giveaways[created.ID])
}

func TestDraw_WinnerDetailsEnriched(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	entry := join(t, h, created.ID, "u1")

	require.NoError(t, h.users.Upsert(context.Background(), &umodels.User{
		ID:       "u1",
		Username: "alice",
	}))

	response, err := h.svc.Draw(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, response.WinnersDetails, 1)
	detail := response.WinnersDetails[0]
	assert.Equal(t, 0, detail.Position)
	assert.Equal(t, entry.ID, detail.EntryID)
	assert.Equal(t, "u1", detail.UserID)
	assert.Equal(t, "alice", detail.Username)
}

func TestDraw_WinnerDetailsDegradeOnLookupFailure(t *testing.T) {
	h := newHarness()
	created := createDurationGiveaway(t, h, 600)
	activate(t, h, created.ID)
	join(t, h, created.ID, "u1")

	h.users.getManyErr = errors.New("directory unavailable")
	response, err := h.svc.Draw(context.Background(), created.ID)

	require.NoError(t, err)
	require.Len(t, response.WinnersDetails, 1)
	assert.Equal(t, "u1", response.WinnersDetails[0].UserID)
	assert.Empty(t, response.WinnersDetails[0].Username)
}
