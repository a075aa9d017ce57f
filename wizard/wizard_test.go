package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/utils"
)

var now = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

func validContact() *Contact {
	return &Contact{FirstName: " Ann ", LastName: "Lee", Email: "ann@example.com"}
}

func validDetails() *Details {
	return &Details{WaiverAccepted: true}
}

func TestVariantsHaveDifferentStepCounts(t *testing.T) {
	ind, err := New("a", 1, Individual, now)
	require.NoError(t, err)
	org, err := New("b", 1, Organization, now)
	require.NoError(t, err)

	assert.Equal(t, []Step{StepContact, StepDetails, StepPayment}, ind.Steps())
	assert.Equal(t, []Step{StepContact, StepOrganization, StepDetails, StepPayment}, org.Steps())

	_, err = New("c", 1, "team", now)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNextBlocksOnInvalidStep(t *testing.T) {
	w, _ := New("a", 1, Individual, now)

	err := w.Next(Form{Contact: &Contact{FirstName: "Ann", Email: "not-an-email"}}, now)
	var fe utils.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "last_name")
	assert.Contains(t, fe, "email")
	assert.NotContains(t, fe, "first_name")
	assert.Equal(t, StepContact, w.Step)
	assert.Equal(t, "Ann", w.Contact.FirstName, "invalid input is still kept")
}

func TestWalkForwardAndBackKeepsData(t *testing.T) {
	w, _ := New("a", 1, Organization, now)

	require.NoError(t, w.Next(Form{Contact: validContact()}, now))
	assert.Equal(t, StepOrganization, w.Step)
	assert.Equal(t, "Ann", w.Contact.FirstName)

	require.NoError(t, w.Next(Form{Organization: &OrganizationInfo{Name: "Acme"}}, now))
	require.NoError(t, w.Next(Form{Details: validDetails()}, now))
	assert.Equal(t, StepPayment, w.Step)
	pos, total := w.Position()
	assert.Equal(t, 4, pos)
	assert.Equal(t, 4, total)

	require.NoError(t, w.Back(now))
	require.NoError(t, w.Back(now))
	assert.Equal(t, StepOrganization, w.Step)
	assert.Equal(t, "Acme", w.Organization.Name)
	assert.True(t, w.Details.WaiverAccepted)

	require.NoError(t, w.Back(now))
	assert.ErrorIs(t, w.Back(now), ErrFirstStep)
}

func TestEmployeeNumberRequiredForEmployees(t *testing.T) {
	w, _ := New("a", 1, Individual, now)
	require.NoError(t, w.Next(Form{Contact: validContact()}, now))

	err := w.Next(Form{Details: &Details{IsEmployee: true, WaiverAccepted: true}}, now)
	var fe utils.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "employee_number")

	err = w.Next(Form{Details: &Details{WaiverAccepted: false}}, now)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be accepted", fe["waiver_accepted"])

	require.NoError(t, w.Next(Form{Details: &Details{IsEmployee: true, EmployeeNumber: " E-42 ", WaiverAccepted: true}}, now))
	assert.Equal(t, "E-42", w.Details.EmployeeNumber)
}

func paymentReady(t *testing.T, v Variant) *Wizard {
	t.Helper()
	w, _ := New("a", 1, v, now)
	require.NoError(t, w.Next(Form{Contact: validContact()}, now))
	if v == Organization {
		require.NoError(t, w.Next(Form{Organization: &OrganizationInfo{Name: "Acme", ContactTitle: "CFO"}}, now))
	}
	require.NoError(t, w.Next(Form{Details: validDetails()}, now))
	return w
}

func TestSubmitLifecycle(t *testing.T) {
	w := paymentReady(t, Individual)

	assert.ErrorIs(t, w.Next(Form{Payment: &Payment{Type: models.PaymentTypeStripe}}, now), ErrLastStep)

	require.NoError(t, w.BeginSubmit(Form{}, now))
	assert.ErrorIs(t, w.BeginSubmit(Form{}, now), ErrSubmitting)

	w.Fail(errors.New("card declined"), now)
	assert.Equal(t, StepPayment, w.Step)
	assert.Equal(t, "card declined", w.Error)
	require.NoError(t, w.Save(Form{Payment: &Payment{Type: models.PaymentTypePayOnDay}}, now), "still editable after failure")

	require.NoError(t, w.BeginSubmit(Form{Payment: &Payment{Type: models.PaymentTypeStripe}}, now))
	w.AwaitPayment("cs_1", "https://checkout.example/cs_1", now)
	assert.ErrorIs(t, w.Save(Form{}, now), ErrAwaitingPayment)

	w.Complete(77, now)
	assert.Equal(t, StepDone, w.Step)
	assert.ErrorIs(t, w.Save(Form{}, now), ErrFinished)
	assert.ErrorIs(t, w.Back(now), ErrFinished)
}

func TestBackFromAwaitingPayment(t *testing.T) {
	w := paymentReady(t, Individual)
	require.NoError(t, w.BeginSubmit(Form{Payment: &Payment{Type: models.PaymentTypeStripe}}, now))
	w.AwaitPayment("cs_1", "https://checkout.example/cs_1", now)

	require.NoError(t, w.Back(now))
	assert.Equal(t, StepPayment, w.Step)
	assert.Empty(t, w.CheckoutSessionID)
}

func TestBeginSubmitRequiresPaymentStep(t *testing.T) {
	w, _ := New("a", 1, Individual, now)
	assert.ErrorIs(t, w.BeginSubmit(Form{}, now), ErrNotPaymentStep)
}

func TestInput(t *testing.T) {
	w := paymentReady(t, Organization)
	w.Payment.Type = models.PaymentTypeStripe

	in := w.Input(models.PaymentPaid, models.IntPtr(15000), now)
	assert.Equal(t, "Ann", in.FirstName)
	assert.Equal(t, "Acme", models.Deref(in.Company))
	assert.Equal(t, models.PaymentPaid, in.PaymentStatus)
	assert.Equal(t, 15000, *in.AmountPaidCents)
	assert.Equal(t, "stripe", models.Deref(in.PaymentMethod))
	assert.Equal(t, "Organization contact: CFO", models.Deref(in.PaymentNotes))
	assert.Nil(t, in.Phone)
	assert.Nil(t, in.EmployeeNumber)
	require.NotNil(t, in.WaiverSignedAt)

	w.Payment.Type = models.PaymentTypePayOnDay
	in = w.Input(models.PaymentUnpaid, models.IntPtr(15000), now)
	assert.Nil(t, in.AmountPaidCents)
	assert.Nil(t, in.PaymentMethod)
}
