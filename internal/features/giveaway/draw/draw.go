// Package draw implements the seeded winner selection. Every pick is a pure
// function of the draw seed, the winner position, and the ordered entry id
// list, so a third party holding the stored artifacts can replay it.
package draw

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"giveaway-engine/internal/common/errors"
	"giveaway-engine/internal/features/giveaway/models"
)

// Result holds everything a draw produces. Winners and Proofs are index
// aligned; Seed/InputHash/InputSize describe the draw as a whole.
type Result struct {
	Winners   []models.EntryID
	Proofs    []models.WinnerProof
	Seed      string
	InputHash string
	InputSize int
	At        time.Time
}

// NewSeed returns a fresh 128-bit hex seed for a whole draw.
func NewSeed() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to generate draw seed")
	}
	return hex.EncodeToString(buf), nil
}

// InputHash hashes the exact ordered id list used as the draw universe.
// The list order is part of the audit contract, so ids are joined as-is.
func InputHash(ids []models.EntryID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}

// PositionSeed derives the per-position value from the draw seed.
func PositionSeed(seed string, position int) string {
	sum := sha256.Sum256([]byte(seed + ":" + strconv.Itoa(position)))
	return hex.EncodeToString(sum[:])
}

// pickIndex interprets the first 8 bytes of the position seed as an unsigned
// integer and reduces it onto the pool.
func pickIndex(positionSeed string, poolSize int) int {
	raw, _ := hex.DecodeString(positionSeed[:16])
	return int(binary.BigEndian.Uint64(raw) % uint64(poolSize))
}

// Run selects up to maxWinners winners from the ordered id list using seed.
// Zero eligible entries yields zero winners without error. The same seed and
// the same ordered list always reproduce the same result.
func Run(ids []models.EntryID, maxWinners int, seed string, at time.Time) *Result {
	inputHash := InputHash(ids)
	inputSize := len(ids)

	count := maxWinners
	if count > inputSize {
		count = inputSize
	}

	winners := make([]models.EntryID, 0, count)
	proofs := make([]models.WinnerProof, 0, count)
	taken := make(map[models.EntryID]bool, count)

	for position := 0; position < count; position++ {
		pool := make([]models.EntryID, 0, inputSize-position)
		for _, id := range ids {
			if !taken[id] {
				pool = append(pool, id)
			}
		}

		posSeed := PositionSeed(seed, position)
		picked := pool[pickIndex(posSeed, len(pool))]
		taken[picked] = true

		winners = append(winners, picked)
		proofs = append(proofs, models.WinnerProof{
			Position:  position,
			Seed:      posSeed,
			EntryID:   picked,
			At:        at,
			InputHash: inputHash,
			InputSize: inputSize,
		})
	}

	return &Result{
		Winners:   winners,
		Proofs:    proofs,
		Seed:      seed,
		InputHash: inputHash,
		InputSize: inputSize,
		At:        at,
	}
}

// RerollPick re-selects a single position. ids is the fresh eligible
// universe, keep the current winner list; every winner at another position
// is excluded from the pool while the incumbent at position stays eligible.
// An empty pool is an error and nothing is selected.
func RerollPick(ids []models.EntryID, keep []models.EntryID, position int, seed string, at time.Time) (models.EntryID, *models.WinnerProof, error) {
	excluded := make(map[models.EntryID]bool, len(keep))
	for i, id := range keep {
		if i != position {
			excluded[id] = true
		}
	}

	pool := make([]models.EntryID, 0, len(ids))
	for _, id := range ids {
		if !excluded[id] {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		return "", nil, errors.New(errors.ErrCodeEmptyPool, "no eligible entries left to reroll from")
	}

	posSeed := PositionSeed(seed, position)
	picked := pool[pickIndex(posSeed, len(pool))]

	return picked, &models.WinnerProof{
		Position:  position,
		Seed:      posSeed,
		EntryID:   picked,
		At:        at,
		InputHash: InputHash(ids),
		InputSize: len(ids),
	}, nil
}

// Replay recomputes the winner list from stored artifacts. Auditors compare
// it against the persisted winners to verify a draw.
func Replay(ids []models.EntryID, maxWinners int, seed string) []models.EntryID {
	return Run(ids, maxWinners, seed, time.Time{}).Winners
}
