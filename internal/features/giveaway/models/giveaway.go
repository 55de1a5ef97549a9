package models

import (
	"time"

	"github.com/google/uuid"
)

// GiveawayID is an opaque giveaway identifier. Keeping it distinct from
// EntryID prevents cross-entity id mixing in repository calls.
type GiveawayID string

// EntryID is an opaque entry identifier. Winner slots reference entries by
// this type, so it lives next to the giveaway record that embeds them.
type EntryID string

func NewGiveawayID() GiveawayID {
	return GiveawayID(uuid.New().String())
}

func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}

func (id GiveawayID) String() string { return string(id) }
func (id EntryID) String() string    { return string(id) }

// GiveawayStatus represents the lifecycle status of a giveaway.
type GiveawayStatus string

const (
	GiveawayStatusDraft     GiveawayStatus = "draft"
	GiveawayStatusActive    GiveawayStatus = "active"
	GiveawayStatusPaused    GiveawayStatus = "paused"
	GiveawayStatusClosed    GiveawayStatus = "closed"
	GiveawayStatusCancelled GiveawayStatus = "cancelled"
)

// Terminal reports whether no further status transitions are allowed.
func (s GiveawayStatus) Terminal() bool {
	return s == GiveawayStatusClosed || s == GiveawayStatusCancelled
}

func (s GiveawayStatus) Valid() bool {
	switch s {
	case GiveawayStatusDraft, GiveawayStatusActive, GiveawayStatusPaused,
		GiveawayStatusClosed, GiveawayStatusCancelled:
		return true
	}
	return false
}

// Eligibility holds the flags gating entry creation. Enforcing them beyond
// the logged-in check is the caller's concern; the record only stores them.
type Eligibility struct {
	MustBeLoggedIn           bool   `json:"must_be_logged_in"`
	MustHaveJoinedEventID    string `json:"must_have_joined_event_id,omitempty"`
	RequirePhotoUsageConsent bool   `json:"require_photo_usage_consent"`
	RequireProfilePublic     bool   `json:"require_profile_public"`
	DeviceFingerprinting     bool   `json:"device_fingerprinting"`
}

// WinnerProof is the audit record for one winner position. Re-deriving the
// position seed from the giveaway's draw seed over the hashed input list
// must reproduce the stored entry id.
type WinnerProof struct {
	Position  int       `json:"position"`
	Seed      string    `json:"seed"`
	EntryID   EntryID   `json:"entry_id"`
	At        time.Time `json:"at"`
	InputHash string    `json:"input_hash"`
	InputSize int       `json:"input_size"`
}

// Giveaway is the persisted giveaway record.
//
// Timing is one of two mutually exclusive modes:
//   - fixed: EndAt set; DurationS, RemainingS, StartAt nil
//   - duration: DurationS set (RemainingS is the budget left, StartAt the
//     instant the countdown last resumed, nil while paused); EndAt nil
type Giveaway struct {
	ID          GiveawayID  `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Eligibility Eligibility `json:"eligibility"`
	MaxWinners  int         `json:"max_winners"`

	Status GiveawayStatus `json:"status"`

	EndAt      *time.Time `json:"end_at,omitempty"`
	DurationS  *int64     `json:"duration_s,omitempty"`
	RemainingS *int64     `json:"remaining_s,omitempty"`
	StartAt    *time.Time `json:"start_at,omitempty"`

	Winners       []EntryID     `json:"winners,omitempty"`
	WinnerProofs  []WinnerProof `json:"winner_proofs,omitempty"`
	DrawSeed      string        `json:"draw_seed,omitempty"`
	DrawInputHash string        `json:"draw_input_hash,omitempty"`
	DrawInputSize int           `json:"draw_input_size"`
	DrawAt        *time.Time    `json:"draw_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMode reports whether the giveaway runs a pausable countdown.
func (g *Giveaway) DurationMode() bool {
	return g.DurationS != nil
}

// FixedMode reports whether closing is governed by an absolute timestamp.
func (g *Giveaway) FixedMode() bool {
	return g.EndAt != nil
}

// Running reports whether a duration-mode countdown is currently ticking.
func (g *Giveaway) Running() bool {
	return g.Status == GiveawayStatusActive && g.StartAt != nil
}

// GiveawayCreate carries the fields for creating a giveaway in draft.
type GiveawayCreate struct {
	Title       string      `json:"title" binding:"required,min=1,max=200"`
	Description string      `json:"description" binding:"max=1000"`
	Eligibility Eligibility `json:"eligibility"`
	MaxWinners  int         `json:"max_winners" binding:"required,min=1"`
	EndAt       *time.Time  `json:"end_at,omitempty"`
	DurationS   *int64      `json:"duration_s,omitempty"`
}

// GiveawayResponse is the external projection of a giveaway record.
type GiveawayResponse struct {
	ID           GiveawayID     `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Eligibility  Eligibility    `json:"eligibility"`
	MaxWinners   int            `json:"max_winners"`
	Status       GiveawayStatus `json:"status"`
	EndAt        *time.Time     `json:"end_at,omitempty"`
	DurationS    *int64         `json:"duration_s,omitempty"`
	RemainingS   *int64         `json:"remaining_s,omitempty"`
	StartAt      *time.Time     `json:"start_at,omitempty"`
	Open         bool           `json:"open"`
	Winners      []EntryID      `json:"winners,omitempty"`
	WinnerProofs []WinnerProof  `json:"winner_proofs,omitempty"`
	EntriesCount int64          `json:"entries_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StatusBroadcast is the payload the caller publishes to subscribed viewers
// after a successful status/timing update. The engine only produces it.
type StatusBroadcast struct {
	ID         GiveawayID     `json:"id"`
	Status     GiveawayStatus `json:"status"`
	StartAt    *time.Time     `json:"start_at,omitempty"`
	EndAt      *time.Time     `json:"end_at,omitempty"`
	DurationS  *int64         `json:"duration_s,omitempty"`
	RemainingS *int64         `json:"remaining_s,omitempty"`
}

// Topic returns the per-giveaway broadcast topic.
func (b StatusBroadcast) Topic() string {
	return "giveaway:" + string(b.ID)
}

// NewBroadcast snapshots the giveaway's broadcastable fields.
func NewBroadcast(g *Giveaway) StatusBroadcast {
	return StatusBroadcast{
		ID:         g.ID,
		Status:     g.Status,
		StartAt:    g.StartAt,
		EndAt:      g.EndAt,
		DurationS:  g.DurationS,
		RemainingS: g.RemainingS,
	}
}
