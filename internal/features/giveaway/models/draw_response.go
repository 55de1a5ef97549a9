package models

import "time"

// WinnerDetail enriches a winner position with participant display info
// from the identity directory. Anonymous or unknown participants fall back
// to their raw ids.
type WinnerDetail struct {
	Position  int     `json:"position"`
	EntryID   EntryID `json:"entry_id"`
	UserID    string  `json:"user_id,omitempty"`
	AnonID    string  `json:"anon_id,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

// DrawResponse is returned by both draw and reroll; the top-level draw
// fields describe the most recent draw-related mutation.
type DrawResponse struct {
	GiveawayID     GiveawayID     `json:"giveaway_id"`
	Winners        []EntryID      `json:"winners"`
	WinnerProofs   []WinnerProof  `json:"winner_proofs"`
	DrawSeed       string         `json:"draw_seed"`
	DrawInputHash  string         `json:"draw_input_hash"`
	DrawInputSize  int            `json:"draw_input_size"`
	DrawAt         time.Time      `json:"draw_at"`
	WinnersDetails []WinnerDetail `json:"winners_details"`
}

// ParticipationResponse is the compact projection served by the
// participation query: the giveaway's live state plus the caller's entry.
type ParticipationResponse struct {
	GiveawayID     GiveawayID     `json:"giveaway_id"`
	Title          string         `json:"title"`
	Status         GiveawayStatus `json:"status"`
	EndAt          *time.Time     `json:"end_at,omitempty"`
	DurationS      *int64         `json:"duration_s,omitempty"`
	RemainingS     *int64         `json:"remaining_s,omitempty"`
	StartAt        *time.Time     `json:"start_at,omitempty"`
	Eligibility    Eligibility    `json:"eligibility"`
	EntryID        EntryID        `json:"entry_id"`
	EntryCreatedAt time.Time      `json:"entry_created_at"`
}
