package roster

import (
	"slices"

	"github.com/Dosada05/golf-admin/models"
)

// ApplyCreated appends g, or replaces the existing record with the same id.
func ApplyCreated(golfers []models.Golfer, g models.Golfer) []models.Golfer {
	return upsert(golfers, g)
}

// ApplyUpdated replaces the record with g's id; unknown ids are appended.
func ApplyUpdated(golfers []models.Golfer, g models.Golfer) []models.Golfer {
	return upsert(golfers, g)
}

// ApplyDeleted removes the record with id, if present.
func ApplyDeleted(golfers []models.Golfer, id int) []models.Golfer {
	out := make([]models.Golfer, 0, len(golfers))
	for _, existing := range golfers {
		if existing.ID != id {
			out = append(out, existing)
		}
	}
	return out
}

func upsert(golfers []models.Golfer, g models.Golfer) []models.Golfer {
	out := slices.Clone(golfers)
	for i := range out {
		if out[i].ID == g.ID {
			out[i] = g
			return out
		}
	}
	return append(out, g)
}

// IndexByID returns the position of id in golfers, or -1.
func IndexByID(golfers []models.Golfer, id int) int {
	return slices.IndexFunc(golfers, func(g models.Golfer) bool { return g.ID == id })
}

// CheckInQueue lists confirmed golfers still to check in, by starting hole.
func CheckInQueue(golfers []models.Golfer) []models.Golfer {
	f := Filter{RegistrationStatus: string(models.RegistrationConfirmed), CheckIn: NotCheckedIn}
	return SortGolfers(SortGolfers(FilterGolfers(golfers, f), DefaultSort()), Sort{Key: SortHole})
}
