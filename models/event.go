package models

// GolferEventType names the three pushes the real-time channel delivers.
type GolferEventType string

const (
	GolferCreated GolferEventType = "golfer.created"
	GolferUpdated GolferEventType = "golfer.updated"
	GolferDeleted GolferEventType = "golfer.deleted"
)

// GolferEvent is one message from the real-time channel. Golfer is set for
// created/updated; GolferID always identifies the record.
type GolferEvent struct {
	Type         GolferEventType `json:"type"`
	TournamentID int             `json:"tournament_id"`
	GolferID     int             `json:"golfer_id"`
	Golfer       *Golfer         `json:"golfer,omitempty"`
}
