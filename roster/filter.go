// Package roster filters, sorts and splices the in-memory golfer list shown
// on the dashboard, reports and check-in screens. Everything here is pure:
// inputs are never modified and results are new slices.
package roster

import (
	"strconv"
	"strings"

	"github.com/Dosada05/golf-admin/models"
)

// Filter sentinels.
const (
	All          = "all"
	Active       = "active" // confirmed + waitlist
	Unassigned   = "unassigned"
	CheckedIn    = "checked_in"
	NotCheckedIn = "not_checked_in"
)

// Filter holds the predicates of the list screens. Empty strings behave like All.
type Filter struct {
	Search             string `json:"search"`
	PaymentStatus      string `json:"payment_status"`
	PaymentType        string `json:"payment_type"`
	RegistrationStatus string `json:"registration_status"`
	CheckIn            string `json:"check_in"`
	Hole               string `json:"hole"`
}

// DefaultFilter is the dashboard's initial view: confirmed registrants only.
func DefaultFilter() Filter {
	return Filter{
		PaymentStatus:      All,
		PaymentType:        All,
		RegistrationStatus: string(models.RegistrationConfirmed),
		CheckIn:            All,
		Hole:               All,
	}
}

// Match reports whether g satisfies every active predicate.
func (f Filter) Match(g models.Golfer) bool {
	if !matchSearch(f.Search, g) {
		return false
	}
	if !isAll(f.PaymentStatus) && string(g.PaymentStatus) != f.PaymentStatus {
		return false
	}
	if !isAll(f.PaymentType) && string(g.PaymentType) != f.PaymentType {
		return false
	}
	if !matchRegistration(f.RegistrationStatus, g.RegistrationStatus) {
		return false
	}
	switch f.CheckIn {
	case CheckedIn:
		if !g.CheckedIn {
			return false
		}
	case NotCheckedIn:
		if g.CheckedIn {
			return false
		}
	}
	return matchHole(f.Hole, g)
}

// FilterGolfers returns the golfers matching f, in their original order.
func FilterGolfers(golfers []models.Golfer, f Filter) []models.Golfer {
	out := make([]models.Golfer, 0, len(golfers))
	for _, g := range golfers {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// Apply filters then sorts.
func Apply(golfers []models.Golfer, f Filter, s Sort) []models.Golfer {
	return SortGolfers(FilterGolfers(golfers, f), s)
}

func isAll(v string) bool {
	return v == "" || v == All
}

func matchSearch(q string, g models.Golfer) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	fields := []string{g.FullName(), g.Email, models.Deref(g.Company)}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchRegistration(want string, got models.RegistrationStatus) bool {
	switch want {
	case "", All:
		return true
	case Active:
		return got == models.RegistrationConfirmed || got == models.RegistrationWaitlist
	default:
		return string(got) == want
	}
}

func matchHole(want string, g models.Golfer) bool {
	if isAll(want) {
		return true
	}
	label, assigned := HoleLabel(g)
	if want == Unassigned {
		return !assigned
	}
	n, err := strconv.Atoi(want)
	if err != nil {
		// A slot label such as "7A".
		return assigned && strings.EqualFold(strings.TrimSpace(want), label)
	}
	if g.HoleNumber != nil {
		return *g.HoleNumber == n
	}
	if assigned {
		num, _, hasNum := splitLabel(label)
		return hasNum && num == n
	}
	return false
}

// HoleLabel is the golfer's starting slot ("7A"); ok is false when unassigned.
func HoleLabel(g models.Golfer) (string, bool) {
	if g.HolePositionLabel != nil && *g.HolePositionLabel != "" {
		return *g.HolePositionLabel, true
	}
	if g.HoleNumber != nil {
		return strconv.Itoa(*g.HoleNumber), true
	}
	return "", false
}
