package models

import "strconv"

// Group is a playing group (foursome by default) assigned to a starting hole.
type Group struct {
	ID                int      `json:"id"`
	TournamentID      int      `json:"tournament_id"`
	GroupNumber       int      `json:"group_number"`
	HoleNumber        *int     `json:"hole_number,omitempty"`
	HolePositionLabel string   `json:"hole_position_label"`
	Members           []Golfer `json:"members"`
}

// Label returns the server label, or derives "<hole><letter>" when the
// server left it empty. Letter is the group's position on that hole, 0-based.
func (g Group) Label(position int) string {
	if g.HolePositionLabel != "" {
		return g.HolePositionLabel
	}
	if g.HoleNumber == nil {
		return "Unassigned"
	}
	return HolePositionLabel(*g.HoleNumber, position)
}

// HolePositionLabel builds labels like "7A", "7B".
func HolePositionLabel(hole, position int) string {
	if position < 0 {
		position = 0
	}
	letter := string(rune('A' + position%26))
	return strconv.Itoa(hole) + letter
}

// Clone deep-copies the group and its members.
func (g Group) Clone() Group {
	c := g
	c.HoleNumber = cloneInt(g.HoleNumber)
	c.Members = make([]Golfer, len(g.Members))
	for i, m := range g.Members {
		c.Members[i] = m.Clone()
	}
	return c
}

// CreateGroupInput is sent when an admin adds a new group.
type CreateGroupInput struct {
	HoleNumber *int `json:"hole_number,omitempty"`
}
