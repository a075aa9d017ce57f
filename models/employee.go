package models

// EmployeeNumber grants the employee entry fee to whoever registers with it.
type EmployeeNumber struct {
	ID             int    `json:"id"`
	TournamentID   int    `json:"tournament_id"`
	Number         string `json:"number"`
	Used           bool   `json:"used"`
	UsedByGolferID *int   `json:"used_by_golfer_id,omitempty"`
}
