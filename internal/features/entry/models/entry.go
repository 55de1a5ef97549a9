package models

import (
	"time"

	"giveaway-engine/internal/common/errors"
	gmodels "giveaway-engine/internal/features/giveaway/models"
)

// ParticipantIdentity is either a logged-in user id or an anonymous device
// id, never both.
type ParticipantIdentity struct {
	UserID string `json:"user_id,omitempty"`
	AnonID string `json:"anon_id,omitempty"`
}

func (p ParticipantIdentity) Validate() error {
	if (p.UserID == "") == (p.AnonID == "") {
		return errors.NewValidationError("participant", "exactly one of user_id and anon_id must be set")
	}
	return nil
}

// Anonymous reports whether the identity is a device id, not a user.
func (p ParticipantIdentity) Anonymous() bool {
	return p.AnonID != ""
}

// Key returns the index key for the identity, stable across both kinds.
func (p ParticipantIdentity) Key() string {
	if p.UserID != "" {
		return "user:" + p.UserID
	}
	return "anon:" + p.AnonID
}

// Entry is one participation record. Entries are append-only: the only
// mutation ever applied is disqualification, and removal happens solely
// through the giveaway cascade delete.
type Entry struct {
	ID           gmodels.EntryID     `json:"id"`
	GiveawayID   gmodels.GiveawayID  `json:"giveaway_id"`
	Participant  ParticipantIdentity `json:"participant"`
	Disqualified bool                `json:"disqualified"`
	CreatedAt    time.Time           `json:"created_at"`
}

// EntryResponse is the external projection of an entry.
type EntryResponse struct {
	ID           gmodels.EntryID    `json:"id"`
	GiveawayID   gmodels.GiveawayID `json:"giveaway_id"`
	UserID       string             `json:"user_id,omitempty"`
	AnonID       string             `json:"anon_id,omitempty"`
	Disqualified bool               `json:"disqualified"`
	CreatedAt    time.Time          `json:"created_at"`
}

func ToResponse(e *Entry) *EntryResponse {
	return &EntryResponse{
		ID:           e.ID,
		GiveawayID:   e.GiveawayID,
		UserID:       e.Participant.UserID,
		AnonID:       e.Participant.AnonID,
		Disqualified: e.Disqualified,
		CreatedAt:    e.CreatedAt,
	}
}
