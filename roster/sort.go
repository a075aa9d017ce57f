package roster

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/Dosada05/golf-admin/models"
)

type SortKey string

const (
	SortName               SortKey = "name"
	SortEmail              SortKey = "email"
	SortCompany            SortKey = "company"
	SortCreatedAt          SortKey = "created_at"
	SortPaymentStatus      SortKey = "payment_status"
	SortRegistrationStatus SortKey = "registration_status"
	SortHole               SortKey = "hole"
	SortCheckedIn          SortKey = "checked_in"
)

// UnassignedHoleSentinel is what an unassigned golfer shows in the hole column.
const UnassignedHoleSentinel = "zzz"

type Sort struct {
	Key  SortKey `json:"key"`
	Desc bool    `json:"desc"`
}

func DefaultSort() Sort {
	return Sort{Key: SortName}
}

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortName, SortEmail, SortCompany, SortCreatedAt, SortPaymentStatus,
		SortRegistrationStatus, SortHole, SortCheckedIn:
		return k, nil
	case "":
		return SortName, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortGolfers returns a stably sorted copy. Records missing the sort value
// (no company, no hole) go last in both directions.
func SortGolfers(golfers []models.Golfer, s Sort) []models.Golfer {
	out := slices.Clone(golfers)
	if out == nil {
		out = []models.Golfer{}
	}
	slices.SortStableFunc(out, func(a, b models.Golfer) int {
		return compareBy(s, a, b)
	})
	return out
}

func compareBy(s Sort, a, b models.Golfer) int {
	var (
		c                  int
		missingA, missingB bool
	)
	switch s.Key {
	case SortEmail:
		c = strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	case SortCompany:
		ca, cb := strings.TrimSpace(models.Deref(a.Company)), strings.TrimSpace(models.Deref(b.Company))
		missingA, missingB = ca == "", cb == ""
		c = strings.Compare(strings.ToLower(ca), strings.ToLower(cb))
	case SortCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case SortPaymentStatus:
		c = strings.Compare(string(a.PaymentStatus), string(b.PaymentStatus))
	case SortRegistrationStatus:
		c = strings.Compare(string(a.RegistrationStatus), string(b.RegistrationStatus))
	case SortHole:
		la, okA := HoleLabel(a)
		lb, okB := HoleLabel(b)
		missingA, missingB = !okA, !okB
		c = CompareHoleLabels(la, lb)
	case SortCheckedIn:
		c = compareBool(a.CheckedIn, b.CheckedIn)
	default:
		c = compareNames(a, b)
	}

	switch {
	case missingA && missingB:
		return 0
	case missingA:
		return 1
	case missingB:
		return -1
	}
	if s.Desc {
		return -c
	}
	return c
}

func compareNames(a, b models.Golfer) int {
	if c := strings.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
		return c
	}
	return strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// CompareHoleLabels orders labels by hole number, then by suffix, so that
// "7A" < "7B" < "10A". Labels without a number sort after numbered ones, and
// the unassigned sentinel sorts after everything.
func CompareHoleLabels(a, b string) int {
	if a == b {
		return 0
	}
	if a == UnassignedHoleSentinel {
		return 1
	}
	if b == UnassignedHoleSentinel {
		return -1
	}
	na, sa, okA := splitLabel(a)
	nb, sb, okB := splitLabel(b)
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB && na != nb:
		if na < nb {
			return -1
		}
		return 1
	}
	if c := strings.Compare(strings.ToUpper(sa), strings.ToUpper(sb)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// splitLabel splits "10B" into (10, "B", true).
func splitLabel(label string) (int, string, bool) {
	label = strings.TrimSpace(label)
	i := 0
	n := 0
	for i < len(label) && unicode.IsDigit(rune(label[i])) {
		n = n*10 + int(label[i]-'0')
		i++
	}
	if i == 0 {
		return 0, label, false
	}
	return n, label[i:], true
}
