package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreExpiresIdleWizards(t *testing.T) {
	clock := now
	s := NewStore(30*time.Minute, nil)
	s.now = func() time.Time { return clock }

	a, err := s.Create(1, Individual)
	require.NoError(t, err)
	b, err := s.Create(1, Organization)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	clock = clock.Add(20 * time.Minute)
	_, err = s.Update(a.ID, func(w *Wizard, now time.Time) error {
		return w.Save(Form{Contact: validContact()}, now)
	})
	require.NoError(t, err)

	clock = clock.Add(15 * time.Minute)
	_, err = s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Contact.FirstName)

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestStoreKeepsWizardsAwaitingPayment(t *testing.T) {
	clock := now
	s := NewStore(30*time.Minute, nil)
	s.SetPaymentWindow(2 * time.Hour)
	s.now = func() time.Time { return clock }

	paying, err := s.Create(1, Individual)
	require.NoError(t, err)
	idle, err := s.Create(1, Individual)
	require.NoError(t, err)
	_, err = s.Update(paying.ID, func(w *Wizard, now time.Time) error {
		w.AwaitPayment("cs_1", "https://checkout.example/cs_1", now)
		return nil
	})
	require.NoError(t, err)

	clock = clock.Add(90 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	got, err := s.Get(paying.ID)
	require.NoError(t, err)
	assert.Equal(t, StepAwaitingPayment, got.Step)
	_, err = s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	clock = clock.Add(time.Hour)
	_, err = s.Get(paying.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore(0, nil)
	w, err := s.Create(3, Individual)
	require.NoError(t, err)

	got, _ := s.Get(w.ID)
	got.Step = StepDone

	again, _ := s.Get(w.ID)
	assert.Equal(t, StepContact, again.Step)
	assert.Equal(t, 3, again.TournamentID)
}
