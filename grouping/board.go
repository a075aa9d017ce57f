// Package grouping models the group-management screen: confirmed golfers who
// have no group yet, and the groups themselves. A golfer is in exactly one
// place at a time, either Unassigned or one group's Members.
package grouping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Dosada05/golf-admin/models"
)

// Unassigned is the destination id for "take the golfer out of any group".
const Unassigned = 0

var (
	ErrGroupFull      = errors.New("group is already full")
	ErrGroupNotFound  = errors.New("group not found on board")
	ErrGolferNotFound = errors.New("golfer not found on board")
)

type Board struct {
	TeamSize   int             `json:"team_size"`
	Unassigned []models.Golfer `json:"unassigned"`
	Groups     []models.Group  `json:"groups"`
}

// NewBoard builds a board from the server's golfer list and groups. Only
// confirmed golfers are placeable; a golfer the server lists twice is kept
// in the first group that names it.
func NewBoard(golfers []models.Golfer, groups []models.Group, teamSize int) *Board {
	if teamSize <= 0 {
		teamSize = models.DefaultTeamSize
	}
	b := &Board{
		TeamSize:   teamSize,
		Unassigned: []models.Golfer{},
		Groups:     make([]models.Group, 0, len(groups)),
	}

	placed := make(map[int]bool)
	for _, g := range groups {
		g = g.Clone()
		members := make([]models.Golfer, 0, len(g.Members))
		for _, m := range g.Members {
			if placed[m.ID] {
				continue
			}
			placed[m.ID] = true
			members = append(members, m)
		}
		g.Members = members
		b.Groups = append(b.Groups, g)
	}
	for _, g := range golfers {
		if g.RegistrationStatus != models.RegistrationConfirmed || placed[g.ID] {
			continue
		}
		placed[g.ID] = true
		b.Unassigned = append(b.Unassigned, g.Clone())
	}
	return b
}

func (b *Board) Clone() *Board {
	c := &Board{
		TeamSize:   b.TeamSize,
		Unassigned: make([]models.Golfer, len(b.Unassigned)),
		Groups:     make([]models.Group, len(b.Groups)),
	}
	for i, g := range b.Unassigned {
		c.Unassigned[i] = g.Clone()
	}
	for i, g := range b.Groups {
		c.Groups[i] = g.Clone()
	}
	return c
}

func (b *Board) groupIndex(groupID int) int {
	return slices.IndexFunc(b.Groups, func(g models.Group) bool { return g.ID == groupID })
}

// Group returns a copy of the group with groupID.
func (b *Board) Group(groupID int) (models.Group, bool) {
	i := b.groupIndex(groupID)
	if i < 0 {
		return models.Group{}, false
	}
	return b.Groups[i].Clone(), true
}

// Locate returns the group holding golferID, or Unassigned.
func (b *Board) Locate(golferID int) (int, bool) {
	for _, g := range b.Unassigned {
		if g.ID == golferID {
			return Unassigned, true
		}
	}
	for _, grp := range b.Groups {
		for _, m := range grp.Members {
			if m.ID == golferID {
				return grp.ID, true
			}
		}
	}
	return 0, false
}

// Remaining is the number of open slots in the group.
func (b *Board) Remaining(groupID int) int {
	i := b.groupIndex(groupID)
	if i < 0 {
		return 0
	}
	if r := b.TeamSize - len(b.Groups[i].Members); r > 0 {
		return r
	}
	return 0
}

// CanAccept reports whether n more golfers fit. Unassigned always accepts.
func (b *Board) CanAccept(groupID, n int) bool {
	if groupID == Unassigned {
		return true
	}
	if b.groupIndex(groupID) < 0 {
		return false
	}
	return n <= b.Remaining(groupID)
}

// Move takes golferID out of wherever it is and appends it to dest. It returns
// the source location. Moving a golfer onto its current location is a no-op.
func (b *Board) Move(golferID, dest int) (int, error) {
	from, ok := b.Locate(golferID)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrGolferNotFound, golferID)
	}
	if from == dest {
		return from, nil
	}
	if dest != Unassigned && b.groupIndex(dest) < 0 {
		return from, fmt.Errorf("%w: %d", ErrGroupNotFound, dest)
	}
	if !b.CanAccept(dest, 1) {
		return from, fmt.Errorf("%w: group %d holds %d", ErrGroupFull, dest, b.TeamSize)
	}

	golfer := b.take(golferID, from)
	if dest == Unassigned {
		golfer.GroupID = nil
		golfer.HoleNumber = nil
		golfer.HolePositionLabel = nil
		b.Unassigned = append(b.Unassigned, golfer)
		return from, nil
	}
	i := b.groupIndex(dest)
	golfer.GroupID = models.IntPtr(dest)
	b.Groups[i].Members = append(b.Groups[i].Members, golfer)
	return from, nil
}

// RemoveGroup drops the group and returns its members to Unassigned.
func (b *Board) RemoveGroup(groupID int) error {
	i := b.groupIndex(groupID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrGroupNotFound, groupID)
	}
	for _, m := range b.Groups[i].Members {
		m.GroupID = nil
		m.HoleNumber = nil
		m.HolePositionLabel = nil
		b.Unassigned = append(b.Unassigned, m)
	}
	b.Groups = slices.Delete(b.Groups, i, i+1)
	return nil
}

func (b *Board) take(golferID, from int) models.Golfer {
	if from == Unassigned {
		i := slices.IndexFunc(b.Unassigned, func(g models.Golfer) bool { return g.ID == golferID })
		g := b.Unassigned[i]
		b.Unassigned = slices.Delete(b.Unassigned, i, i+1)
		return g
	}
	gi := b.groupIndex(from)
	members := b.Groups[gi].Members
	i := slices.IndexFunc(members, func(g models.Golfer) bool { return g.ID == golferID })
	g := members[i]
	b.Groups[gi].Members = slices.Delete(members, i, i+1)
	return g
}

// GolferIDs lists every placed golfer, unassigned first.
func (b *Board) GolferIDs() []int {
	var out []int
	for _, g := range b.Unassigned {
		out = append(out, g.ID)
	}
	for _, grp := range b.Groups {
		for _, m := range grp.Members {
			out = append(out, m.ID)
		}
	}
	return out
}

// Verify returns an error if any golfer appears in more than one place.
func (b *Board) Verify() error {
	seen := make(map[int]bool)
	for _, id := range b.GolferIDs() {
		if seen[id] {
			return fmt.Errorf("golfer %d appears more than once", id)
		}
		seen[id] = true
	}
	return nil
}
