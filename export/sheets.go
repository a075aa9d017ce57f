// Package export turns golfer and group collections into named sheets and
// writes them as an xlsx workbook.
package export

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/roster"
)

// Fallback cell values.
const (
	Missing        = "-"
	UnassignedHole = "Unassigned"
)

// Row cells are string, int or float64.
type Row []any

type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

type Report string

const (
	ReportGolfers   Report = "golfers"
	ReportCheckIn   Report = "check-in"
	ReportPayments  Report = "payments"
	ReportFoursomes Report = "foursomes"
	ReportContacts  Report = "contacts"
	ReportFull      Report = "full-report"
)

func ParseReport(s string) (Report, error) {
	switch r := Report(s); r {
	case ReportGolfers, ReportCheckIn, ReportPayments, ReportFoursomes, ReportContacts, ReportFull:
		return r, nil
	}
	return "", fmt.Errorf("unknown report %q", s)
}

// Filename is "<report>-<YYYY-MM-DD>.xlsx".
func Filename(r Report, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", r, now.Format("2006-01-02"))
}

// Build assembles the sheets of a report.
func Build(r Report, golfers []models.Golfer, groups []models.Group, teamSize int) []Sheet {
	switch r {
	case ReportGolfers:
		return []Sheet{FullList(golfers)}
	case ReportCheckIn:
		return []Sheet{CheckInSheet(golfers)}
	case ReportPayments:
		return []Sheet{PaymentSummary(golfers)}
	case ReportFoursomes:
		return []Sheet{FoursomesByHole(groups, teamSize)}
	case ReportContacts:
		return []Sheet{ContactList(golfers)}
	}
	return []Sheet{
		FullList(golfers),
		CheckInSheet(golfers),
		PaymentSummary(golfers),
		FoursomesByHole(groups, teamSize),
		ContactList(golfers),
	}
}

func FullList(golfers []models.Golfer) Sheet {
	s := Sheet{
		Name: "Golfers",
		Columns: []string{
			"ID", "First Name", "Last Name", "Email", "Phone", "Company",
			"Registration Status", "Payment Status", "Payment Type", "Payment Method",
			"Amount Paid", "Checked In", "Hole", "Employee", "Employee Number",
			"Payment Notes", "Registered At",
		},
		Rows: []Row{},
	}
	for _, g := range golfers {
		s.Rows = append(s.Rows, Row{
			g.ID,
			g.FirstName,
			g.LastName,
			g.Email,
			orMissing(g.Phone),
			orMissing(g.Company),
			string(g.RegistrationStatus),
			string(g.PaymentStatus),
			string(g.PaymentType),
			orMissing(g.PaymentMethod),
			dollars(g.AmountPaidCents),
			yesNo(g.CheckedIn),
			holeLabel(g),
			yesNo(g.IsEmployee),
			orMissing(g.EmployeeNumber),
			orMissing(g.PaymentNotes),
			g.CreatedAt.Format(time.RFC3339),
		})
	}
	return s
}

// CheckInSheet lists confirmed golfers by starting hole.
func CheckInSheet(golfers []models.Golfer) Sheet {
	s := Sheet{
		Name:    "Check-In",
		Columns: []string{"Hole", "Name", "Company", "Phone", "Payment Status", "Checked In"},
		Rows:    []Row{},
	}
	f := roster.Filter{RegistrationStatus: string(models.RegistrationConfirmed)}
	sorted := roster.Apply(golfers, f, roster.Sort{Key: roster.SortHole})
	for _, g := range sorted {
		s.Rows = append(s.Rows, Row{
			holeLabel(g),
			g.FullName(),
			orMissing(g.Company),
			orMissing(g.Phone),
			string(g.PaymentStatus),
			yesNo(g.CheckedIn),
		})
	}
	return s
}

// PaymentSummary has one row per golfer followed by a blank row and totals.
func PaymentSummary(golfers []models.Golfer) Sheet {
	s := Sheet{
		Name:    "Payments",
		Columns: []string{"Name", "Email", "Payment Type", "Payment Status", "Payment Method", "Amount Paid", "Notes"},
		Rows:    []Row{},
	}

	counts := map[models.PaymentStatus]int{}
	var collected, refunded int
	for _, g := range golfers {
		s.Rows = append(s.Rows, Row{
			g.FullName(),
			g.Email,
			string(g.PaymentType),
			string(g.PaymentStatus),
			orMissing(g.PaymentMethod),
			dollars(g.AmountPaidCents),
			orMissing(g.PaymentNotes),
		})
		counts[g.PaymentStatus]++
		if g.AmountPaidCents == nil {
			continue
		}
		switch g.PaymentStatus {
		case models.PaymentPaid:
			collected += *g.AmountPaidCents
		case models.PaymentRefunded:
			refunded += *g.AmountPaidCents
		}
	}
	if len(golfers) == 0 {
		return s
	}

	s.Rows = append(s.Rows,
		Row{},
		Row{"Paid", counts[models.PaymentPaid]},
		Row{"Unpaid", counts[models.PaymentUnpaid]},
		Row{"Refunded", counts[models.PaymentRefunded]},
		Row{"Total Collected", float64(collected) / 100},
		Row{"Total Refunded", float64(refunded) / 100},
		Row{"Net Revenue", float64(collected-refunded) / 100},
	)
	return s
}

// FoursomesByHole pivots groups into one row per group with a column per slot.
// A group holding more than teamSize members widens the sheet so nobody is left out.
func FoursomesByHole(groups []models.Group, teamSize int) Sheet {
	if teamSize <= 0 {
		teamSize = models.DefaultTeamSize
	}
	slots := teamSize
	for _, g := range groups {
		slots = max(slots, len(g.Members))
	}
	s := Sheet{Name: "Foursomes", Columns: []string{"Hole", "Group"}, Rows: []Row{}}
	for i := 1; i <= slots; i++ {
		s.Columns = append(s.Columns, "Player "+strconv.Itoa(i))
	}

	type labelled struct {
		label string
		group models.Group
	}
	perHole := map[int]int{}
	rows := make([]labelled, 0, len(groups))
	for _, g := range groups {
		pos := 0
		if g.HoleNumber != nil {
			pos = perHole[*g.HoleNumber]
			perHole[*g.HoleNumber]++
		}
		rows = append(rows, labelled{label: g.Label(pos), group: g})
	}
	slices.SortStableFunc(rows, func(a, b labelled) int {
		return roster.CompareHoleLabels(sortable(a.label), sortable(b.label))
	})

	for _, r := range rows {
		row := Row{r.label, r.group.GroupNumber}
		for i := 0; i < slots; i++ {
			if i < len(r.group.Members) {
				row = append(row, r.group.Members[i].FullName())
			} else {
				row = append(row, Missing)
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func ContactList(golfers []models.Golfer) Sheet {
	s := Sheet{
		Name:    "Contacts",
		Columns: []string{"Name", "Email", "Phone", "Company"},
		Rows:    []Row{},
	}
	for _, g := range golfers {
		s.Rows = append(s.Rows, Row{g.FullName(), g.Email, orMissing(g.Phone), orMissing(g.Company)})
	}
	return s
}

func orMissing(s *string) string {
	if s == nil || *s == "" {
		return Missing
	}
	return *s
}

func holeLabel(g models.Golfer) string {
	if l, ok := roster.HoleLabel(g); ok {
		return l
	}
	return UnassignedHole
}

func sortable(label string) string {
	if label == UnassignedHole {
		return roster.UnassignedHoleSentinel
	}
	return label
}

func dollars(cents *int) any {
	if cents == nil {
		return Missing
	}
	return float64(*cents) / 100
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
