package models

import "time"

// ActivityLog is a server-produced audit entry; read-only here.
type ActivityLog struct {
	ID           int       `json:"id"`
	TournamentID int       `json:"tournament_id"`
	Actor        string    `json:"actor"`
	Action       string    `json:"action"`
	GolferID     *int      `json:"golfer_id,omitempty"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}
