package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/golf-admin/models"
)

func sample() []models.Golfer {
	return []models.Golfer{
		{
			ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
			Company:            models.StringPtr("Acme"),
			Phone:              models.StringPtr("555-0100"),
			RegistrationStatus: models.RegistrationConfirmed,
			PaymentStatus:      models.PaymentPaid,
			PaymentType:        models.PaymentTypeStripe,
			AmountPaidCents:    models.IntPtr(12500),
			HoleNumber:         models.IntPtr(10),
			HolePositionLabel:  models.StringPtr("10A"),
		},
		{
			ID: 2, FirstName: "Bob", LastName: "Ray", Email: "bob@example.com",
			RegistrationStatus: models.RegistrationConfirmed,
			PaymentStatus:      models.PaymentUnpaid,
			PaymentType:        models.PaymentTypePayOnDay,
		},
		{
			ID: 3, FirstName: "Cat", LastName: "Ng", Email: "cat@example.com",
			RegistrationStatus: models.RegistrationConfirmed,
			PaymentStatus:      models.PaymentRefunded,
			PaymentType:        models.PaymentTypeStripe,
			AmountPaidCents:    models.IntPtr(2500),
			HolePositionLabel:  models.StringPtr("7B"),
		},
		{
			ID: 4, FirstName: "Dan", LastName: "Oz", Email: "dan@example.com",
			RegistrationStatus: models.RegistrationCancelled,
			PaymentStatus:      models.PaymentUnpaid,
			PaymentType:        models.PaymentTypePayOnDay,
		},
	}
}

func TestMissingValuesRenderFallbacks(t *testing.T) {
	s := FullList(sample())
	require.Len(t, s.Rows, 4)
	bob := s.Rows[1]
	assert.Equal(t, Missing, bob[4], "phone")
	assert.Equal(t, Missing, bob[5], "company")
	assert.Equal(t, Missing, bob[10], "amount")
	assert.Equal(t, UnassignedHole, bob[12], "hole")
	assert.Equal(t, Missing, bob[15], "notes")

	ann := s.Rows[0]
	assert.Equal(t, "Acme", ann[5])
	assert.Equal(t, 125.0, ann[10])
	assert.Equal(t, "10A", ann[12])

	for _, row := range s.Rows {
		assert.Len(t, row, len(s.Columns))
	}
}

func TestEmptyInputGivesHeaderOnlySheets(t *testing.T) {
	for _, s := range Build(ReportFull, nil, nil, 4) {
		assert.NotEmpty(t, s.Columns, s.Name)
		assert.Empty(t, s.Rows, s.Name)
	}
}

func TestCheckInSheetSortedByHole(t *testing.T) {
	s := CheckInSheet(sample())
	require.Len(t, s.Rows, 3, "cancelled golfers are left off")
	assert.Equal(t, "7B", s.Rows[0][0])
	assert.Equal(t, "10A", s.Rows[1][0])
	assert.Equal(t, UnassignedHole, s.Rows[2][0])
}

func TestPaymentSummaryTotals(t *testing.T) {
	s := PaymentSummary(sample())
	require.Len(t, s.Rows, 4+1+6)

	totals := map[string]any{}
	for _, r := range s.Rows[5:] {
		totals[r[0].(string)] = r[1]
	}
	assert.Equal(t, 1, totals["Paid"])
	assert.Equal(t, 2, totals["Unpaid"])
	assert.Equal(t, 1, totals["Refunded"])
	assert.Equal(t, 125.0, totals["Total Collected"])
	assert.Equal(t, 25.0, totals["Total Refunded"])
	assert.Equal(t, 100.0, totals["Net Revenue"])
}

func TestFoursomesByHole(t *testing.T) {
	ann, bob := sample()[0], sample()[1]
	groups := []models.Group{
		{ID: 1, GroupNumber: 3, HoleNumber: models.IntPtr(10), Members: []models.Golfer{ann, bob}},
		{ID: 2, GroupNumber: 1, HoleNumber: models.IntPtr(7)},
		{ID: 3, GroupNumber: 2},
		{ID: 4, GroupNumber: 4, HoleNumber: models.IntPtr(7)},
	}
	s := FoursomesByHole(groups, 4)
	assert.Equal(t, []string{"Hole", "Group", "Player 1", "Player 2", "Player 3", "Player 4"}, s.Columns)
	require.Len(t, s.Rows, 4)

	assert.Equal(t, Row{"7A", 1, Missing, Missing, Missing, Missing}, s.Rows[0])
	assert.Equal(t, "7B", s.Rows[1][0])
	assert.Equal(t, Row{"10A", 3, "Ann Lee", "Bob Ray", Missing, Missing}, s.Rows[2])
	assert.Equal(t, UnassignedHole, s.Rows[3][0])
}

func TestFoursomesKeepsOverfullGroups(t *testing.T) {
	members := make([]models.Golfer, 5)
	for i := range members {
		members[i] = models.Golfer{ID: i + 1, FirstName: "P", LastName: string(rune('B' + i))}
	}
	groups := []models.Group{
		{ID: 1, GroupNumber: 1, HoleNumber: models.IntPtr(7), Members: members},
		{ID: 2, GroupNumber: 2, HoleNumber: models.IntPtr(9), Members: members[:1]},
	}
	s := FoursomesByHole(groups, 4)

	assert.Equal(t, []string{"Hole", "Group", "Player 1", "Player 2", "Player 3", "Player 4", "Player 5"}, s.Columns)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, Row{"7A", 1, "P B", "P C", "P D", "P E", "P F"}, s.Rows[0])
	assert.Equal(t, Row{"9A", 2, "P B", Missing, Missing, Missing, Missing}, s.Rows[1])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 6, 3, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "payments-2026-06-03.xlsx", Filename(ReportPayments, now))
	assert.Equal(t, "full-report-2026-06-03.xlsx", Filename(ReportFull, now))
}

func TestParseReport(t *testing.T) {
	r, err := ParseReport("check-in")
	require.NoError(t, err)
	assert.Equal(t, ReportCheckIn, r)

	_, err = ParseReport("everything")
	assert.Error(t, err)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Build(ReportFull, sample(), nil, 4)...))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Golfers", "Check-In", "Payments", "Foursomes", "Contacts"}, f.GetSheetList())

	rows, err := f.GetRows("Contacts")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Company"}, rows[0])
	assert.Equal(t, []string{"Bob Ray", "bob@example.com", "-", "-"}, rows[2])

	rows, err = f.GetRows("Foursomes")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSXNeedsSheets(t *testing.T) {
	assert.ErrorIs(t, WriteXLSX(&bytes.Buffer{}), ErrNoSheets)
}
