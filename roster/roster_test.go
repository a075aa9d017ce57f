package roster

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/models"
)

func golfer(id int, first, last string, reg models.RegistrationStatus, pay models.PaymentStatus) models.Golfer {
	return models.Golfer{
		ID:                 id,
		FirstName:          first,
		LastName:           last,
		Email:              first + "@example.com",
		RegistrationStatus: reg,
		PaymentStatus:      pay,
		PaymentType:        models.PaymentTypeStripe,
		CreatedAt:          time.Date(2026, 5, 1, 0, 0, id, 0, time.UTC),
	}
}

func fiveGolfers() []models.Golfer {
	return []models.Golfer{
		golfer(1, "Ann", "Lee", models.RegistrationConfirmed, models.PaymentPaid),
		golfer(2, "Bob", "Ray", models.RegistrationConfirmed, models.PaymentPaid),
		golfer(3, "Cat", "Ng", models.RegistrationConfirmed, models.PaymentUnpaid),
		golfer(4, "Dan", "Oz", models.RegistrationWaitlist, models.PaymentUnpaid),
		golfer(5, "Eve", "Po", models.RegistrationCancelled, models.PaymentRefunded),
	}
}

func ids(golfers []models.Golfer) []int {
	out := make([]int, len(golfers))
	for i, g := range golfers {
		out[i] = g.ID
	}
	return out
}

func TestDefaultFilterShowsConfirmedOnly(t *testing.T) {
	got := FilterGolfers(fiveGolfers(), DefaultFilter())
	assert.Equal(t, []int{1, 2, 3}, ids(got))
	for _, g := range got {
		assert.NotEqual(t, models.RegistrationCancelled, g.RegistrationStatus)
	}
}

func TestActiveAndAllRegistrationSentinels(t *testing.T) {
	f := DefaultFilter()
	f.RegistrationStatus = Active
	assert.Equal(t, []int{1, 2, 3, 4}, ids(FilterGolfers(fiveGolfers(), f)))

	f.RegistrationStatus = All
	assert.Len(t, FilterGolfers(fiveGolfers(), f), 5)
}

func TestSearchMatchesNameEmailCompany(t *testing.T) {
	list := fiveGolfers()
	list[3].Company = models.StringPtr("Acme Turf")

	assert.Equal(t, []int{1}, ids(FilterGolfers(list, Filter{Search: "ann lee"})))
	assert.Equal(t, []int{2}, ids(FilterGolfers(list, Filter{Search: "BOB@"})))
	assert.Equal(t, []int{4}, ids(FilterGolfers(list, Filter{Search: "turf"})))
	assert.Len(t, FilterGolfers(list, Filter{Search: "   "}), 5)
}

func TestCheckInAndHoleFilters(t *testing.T) {
	list := fiveGolfers()
	list[0].CheckedIn = true
	list[0].HoleNumber = models.IntPtr(7)
	list[1].HolePositionLabel = models.StringPtr("10A")

	assert.Equal(t, []int{1}, ids(FilterGolfers(list, Filter{CheckIn: CheckedIn})))
	assert.Equal(t, []int{2, 3, 4, 5}, ids(FilterGolfers(list, Filter{CheckIn: NotCheckedIn})))
	assert.Equal(t, []int{1}, ids(FilterGolfers(list, Filter{Hole: "7"})))
	assert.Equal(t, []int{2}, ids(FilterGolfers(list, Filter{Hole: "10"})))
	assert.Equal(t, []int{3, 4, 5}, ids(FilterGolfers(list, Filter{Hole: Unassigned})))
	assert.Empty(t, FilterGolfers(list, Filter{Hole: "abc"}))
}

func TestHoleFilterMatchesSlotLabels(t *testing.T) {
	list := fiveGolfers()
	list[0].HoleNumber = models.IntPtr(7)
	list[0].HolePositionLabel = models.StringPtr("7A")
	list[1].HoleNumber = models.IntPtr(7)
	list[1].HolePositionLabel = models.StringPtr("7B")
	list[2].HoleNumber = models.IntPtr(10)

	assert.Equal(t, []int{1, 2}, ids(FilterGolfers(list, Filter{Hole: "7"})))
	assert.Equal(t, []int{1}, ids(FilterGolfers(list, Filter{Hole: "7A"})))
	assert.Equal(t, []int{2}, ids(FilterGolfers(list, Filter{Hole: "7b"})))
	assert.Equal(t, []int{3}, ids(FilterGolfers(list, Filter{Hole: "10"})))
	assert.Empty(t, FilterGolfers(list, Filter{Hole: "10A"}))
}

func TestFilterIsSoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	regs := []models.RegistrationStatus{models.RegistrationConfirmed, models.RegistrationWaitlist, models.RegistrationCancelled}
	pays := []models.PaymentStatus{models.PaymentPaid, models.PaymentUnpaid, models.PaymentRefunded}

	var list []models.Golfer
	for i := 1; i <= 200; i++ {
		g := golfer(i, "G", "X", regs[rng.Intn(3)], pays[rng.Intn(3)])
		g.CheckedIn = rng.Intn(2) == 0
		if rng.Intn(2) == 0 {
			g.PaymentType = models.PaymentTypePayOnDay
		}
		list = append(list, g)
	}

	filters := []Filter{
		DefaultFilter(),
		{PaymentStatus: "paid", CheckIn: CheckedIn},
		{RegistrationStatus: Active, PaymentType: "pay_on_day"},
		{RegistrationStatus: "waitlist", PaymentStatus: "unpaid", CheckIn: NotCheckedIn},
	}
	for _, f := range filters {
		got := FilterGolfers(list, f)
		kept := map[int]bool{}
		for _, g := range got {
			assert.True(t, f.Match(g))
			kept[g.ID] = true
		}
		for _, g := range list {
			if !kept[g.ID] {
				assert.False(t, f.Match(g), "golfer %d excluded but matches", g.ID)
			}
		}
	}
}

func TestSortIsStable(t *testing.T) {
	list := fiveGolfers()
	got := SortGolfers(list, Sort{Key: SortPaymentStatus})
	// paid: 1,2 ; refunded: 5 ; unpaid: 3,4 — original order kept inside each bucket
	assert.Equal(t, []int{1, 2, 5, 3, 4}, ids(got))

	got = SortGolfers(list, Sort{Key: SortPaymentStatus, Desc: true})
	assert.Equal(t, []int{3, 4, 5, 1, 2}, ids(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	list := fiveGolfers()
	_ = SortGolfers(list, Sort{Key: SortName, Desc: true})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(list))
}

func TestMissingValuesSortLastBothDirections(t *testing.T) {
	list := fiveGolfers()[:3]
	list[0].HolePositionLabel = models.StringPtr("10A")
	list[2].HolePositionLabel = models.StringPtr("7B")

	assert.Equal(t, []int{3, 1, 2}, ids(SortGolfers(list, Sort{Key: SortHole})))
	assert.Equal(t, []int{1, 3, 2}, ids(SortGolfers(list, Sort{Key: SortHole, Desc: true})))

	list[1].Company = models.StringPtr("Zeta")
	assert.Equal(t, 2, SortGolfers(list, Sort{Key: SortCompany})[0].ID)
	assert.Equal(t, 2, SortGolfers(list, Sort{Key: SortCompany, Desc: true})[0].ID)
}

func TestCompareHoleLabels(t *testing.T) {
	ordered := []string{"1A", "7A", "7B", "10A", "10B", "18", "Tee", UnassignedHoleSentinel}
	for i := 0; i < len(ordered)-1; i++ {
		assert.Negative(t, CompareHoleLabels(ordered[i], ordered[i+1]), "%s < %s", ordered[i], ordered[i+1])
		assert.Positive(t, CompareHoleLabels(ordered[i+1], ordered[i]))
	}
	assert.Zero(t, CompareHoleLabels("7a", "7a"))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("hole")
	require.NoError(t, err)
	assert.Equal(t, SortHole, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortName, k)

	_, err = ParseSortKey("shoe_size")
	assert.Error(t, err)
}

func TestSplices(t *testing.T) {
	list := fiveGolfers()[:2]

	created := ApplyCreated(list, golfer(9, "Zed", "Al", models.RegistrationConfirmed, models.PaymentUnpaid))
	assert.Equal(t, []int{1, 2, 9}, ids(created))
	assert.Len(t, list, 2)

	changed := golfer(2, "Bob", "Ray", models.RegistrationConfirmed, models.PaymentRefunded)
	updated := ApplyUpdated(created, changed)
	assert.Equal(t, []int{1, 2, 9}, ids(updated))
	assert.Equal(t, models.PaymentRefunded, updated[1].PaymentStatus)

	dup := ApplyCreated(updated, changed)
	assert.Len(t, dup, 3)

	deleted := ApplyDeleted(updated, 1)
	assert.Equal(t, []int{2, 9}, ids(deleted))
	assert.Equal(t, []int{2, 9}, ids(ApplyDeleted(deleted, 404)))
	assert.Equal(t, -1, IndexByID(deleted, 1))
}

func TestCheckInQueue(t *testing.T) {
	list := fiveGolfers()
	list[0].CheckedIn = true
	list[1].HolePositionLabel = models.StringPtr("12A")
	list[2].HolePositionLabel = models.StringPtr("3B")

	assert.Equal(t, []int{3, 2}, ids(CheckInQueue(list)))
}
