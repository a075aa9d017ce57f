// Package wizard is the multi-step public registration form. A Wizard moves
// forward only when the current step validates and never drops data on Back.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/utils"
)

type Variant string

const (
	Individual   Variant = "individual"
	Organization Variant = "organization"
)

type Step string

const (
	StepContact         Step = "contact"
	StepOrganization    Step = "organization"
	StepDetails         Step = "details"
	StepPayment         Step = "payment"
	StepAwaitingPayment Step = "awaiting_payment"
	StepDone            Step = "done"
)

var (
	ErrUnknownVariant  = errors.New("unknown registration variant")
	ErrFinished        = errors.New("registration is already complete")
	ErrAwaitingPayment = errors.New("registration is waiting for payment")
	ErrSubmitting      = errors.New("registration is being submitted")
	ErrFirstStep       = errors.New("already on the first step")
	ErrLastStep        = errors.New("already on the last step; submit instead")
	ErrNotPaymentStep  = errors.New("registration can only be submitted from the payment step")
)

type Contact struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

type OrganizationInfo struct {
	Name         string `json:"organization_name" validate:"required,max=120"`
	ContactTitle string `json:"contact_title,omitempty" validate:"omitempty,max=80"`
}

type Details struct {
	Company        string `json:"company,omitempty" validate:"omitempty,max=120"`
	IsEmployee     bool   `json:"is_employee"`
	EmployeeNumber string `json:"employee_number,omitempty" validate:"required_if=IsEmployee true,max=40"`
	WaiverAccepted bool   `json:"waiver_accepted" validate:"eq=true"`
}

type Payment struct {
	Type models.PaymentType `json:"payment_type" validate:"required,oneof=stripe pay_on_day"`
}

// Form carries the sections a browser posts; nil sections are left as they are.
type Form struct {
	Contact      *Contact          `json:"contact,omitempty"`
	Organization *OrganizationInfo `json:"organization,omitempty"`
	Details      *Details          `json:"details,omitempty"`
	Payment      *Payment          `json:"payment,omitempty"`
}

type Wizard struct {
	ID                string           `json:"id"`
	TournamentID      int              `json:"tournament_id"`
	Variant           Variant          `json:"variant"`
	Step              Step             `json:"step"`
	Contact           Contact          `json:"contact"`
	Organization      OrganizationInfo `json:"organization"`
	Details           Details          `json:"details"`
	Payment           Payment          `json:"payment"`
	Error             string           `json:"error,omitempty"`
	CheckoutURL       string           `json:"checkout_url,omitempty"`
	CheckoutSessionID string           `json:"-"`
	GolferID          int              `json:"golfer_id,omitempty"`
	Submitting        bool             `json:"submitting"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func New(id string, tournamentID int, v Variant, now time.Time) (*Wizard, error) {
	if v != Individual && v != Organization {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return &Wizard{
		ID:           id,
		TournamentID: tournamentID,
		Variant:      v,
		Step:         StepContact,
		UpdatedAt:    now,
	}, nil
}

// Steps lists the editable steps of the variant in order.
func (w *Wizard) Steps() []Step {
	if w.Variant == Organization {
		return []Step{StepContact, StepOrganization, StepDetails, StepPayment}
	}
	return []Step{StepContact, StepDetails, StepPayment}
}

// Position is the 1-based index of the current step and the step count.
// Finished and awaiting wizards report the last position.
func (w *Wizard) Position() (int, int) {
	steps := w.Steps()
	i := slices.Index(steps, w.Step)
	if i < 0 {
		return len(steps), len(steps)
	}
	return i + 1, len(steps)
}

func (w *Wizard) editable() error {
	switch {
	case w.Step == StepDone:
		return ErrFinished
	case w.Step == StepAwaitingPayment:
		return ErrAwaitingPayment
	case w.Submitting:
		return ErrSubmitting
	}
	return nil
}

// Save merges the posted sections without validating them.
func (w *Wizard) Save(f Form, now time.Time) error {
	if err := w.editable(); err != nil {
		return err
	}
	if f.Contact != nil {
		w.Contact = trimContact(*f.Contact)
	}
	if f.Organization != nil && w.Variant == Organization {
		w.Organization = *f.Organization
		w.Organization.Name = strings.TrimSpace(w.Organization.Name)
	}
	if f.Details != nil {
		w.Details = *f.Details
		w.Details.EmployeeNumber = strings.TrimSpace(w.Details.EmployeeNumber)
		if !w.Details.IsEmployee {
			w.Details.EmployeeNumber = ""
		}
	}
	if f.Payment != nil {
		w.Payment = *f.Payment
	}
	w.UpdatedAt = now
	return nil
}

// Next saves f, validates the current step and advances. On a validation
// failure the step is unchanged and utils.FieldErrors is returned.
func (w *Wizard) Next(f Form, now time.Time) error {
	if err := w.Save(f, now); err != nil {
		return err
	}
	if err := w.ValidateStep(w.Step); err != nil {
		return err
	}
	steps := w.Steps()
	i := slices.Index(steps, w.Step)
	if i == len(steps)-1 {
		return ErrLastStep
	}
	w.Step = steps[i+1]
	w.Error = ""
	return nil
}

// Back returns to the previous step. A wizard waiting on checkout goes back
// to the payment step so the registrant can pick another option.
func (w *Wizard) Back(now time.Time) error {
	if w.Step == StepDone {
		return ErrFinished
	}
	if w.Submitting {
		return ErrSubmitting
	}
	if w.Step == StepAwaitingPayment {
		w.Step = StepPayment
		w.CheckoutURL = ""
		w.CheckoutSessionID = ""
		w.UpdatedAt = now
		return nil
	}
	steps := w.Steps()
	i := slices.Index(steps, w.Step)
	if i <= 0 {
		return ErrFirstStep
	}
	w.Step = steps[i-1]
	w.UpdatedAt = now
	return nil
}

// ValidateStep checks one step's fields.
func (w *Wizard) ValidateStep(s Step) error {
	switch s {
	case StepContact:
		return utils.ValidateStruct(w.Contact)
	case StepOrganization:
		return utils.ValidateStruct(w.Organization)
	case StepDetails:
		return utils.ValidateStruct(w.Details)
	case StepPayment:
		return utils.ValidateStruct(w.Payment)
	}
	return nil
}

// BeginSubmit validates every step and marks the wizard as submitting. Only
// one submission may be in flight.
func (w *Wizard) BeginSubmit(f Form, now time.Time) error {
	if err := w.Save(f, now); err != nil {
		return err
	}
	if w.Step != StepPayment {
		return ErrNotPaymentStep
	}
	for _, s := range w.Steps() {
		if err := w.ValidateStep(s); err != nil {
			return err
		}
	}
	w.Submitting = true
	w.Error = ""
	return nil
}

// Fail records a submission failure and leaves the payment step editable.
func (w *Wizard) Fail(err error, now time.Time) {
	w.Submitting = false
	w.Step = StepPayment
	w.CheckoutURL = ""
	w.CheckoutSessionID = ""
	w.Error = err.Error()
	w.UpdatedAt = now
}

// AwaitPayment parks the wizard while the registrant is on the hosted checkout.
func (w *Wizard) AwaitPayment(sessionID, url string, now time.Time) {
	w.Submitting = false
	w.Step = StepAwaitingPayment
	w.CheckoutSessionID = sessionID
	w.CheckoutURL = url
	w.UpdatedAt = now
}

// Complete finishes the wizard; further edits are rejected.
func (w *Wizard) Complete(golferID int, now time.Time) {
	w.Submitting = false
	w.Step = StepDone
	w.GolferID = golferID
	w.Error = ""
	w.CheckoutURL = ""
	w.UpdatedAt = now
}

// Input builds the registration payload sent to the API.
func (w *Wizard) Input(status models.PaymentStatus, amountCents *int, now time.Time) models.RegistrationInput {
	in := models.RegistrationInput{
		FirstName:      w.Contact.FirstName,
		LastName:       w.Contact.LastName,
		Email:          w.Contact.Email,
		PaymentType:    w.Payment.Type,
		PaymentStatus:  status,
		IsEmployee:     w.Details.IsEmployee,
		WaiverSignedAt: &now,
	}
	if w.Contact.Phone != "" {
		in.Phone = models.StringPtr(w.Contact.Phone)
	}
	company := w.Details.Company
	if w.Variant == Organization {
		company = w.Organization.Name
	}
	if company != "" {
		in.Company = models.StringPtr(company)
	}
	if w.Details.IsEmployee {
		in.EmployeeNumber = models.StringPtr(w.Details.EmployeeNumber)
	}
	if status == models.PaymentPaid {
		in.AmountPaidCents = amountCents
		if w.Payment.Type == models.PaymentTypeStripe {
			in.PaymentMethod = models.StringPtr("stripe")
		}
	}
	if w.Variant == Organization && w.Organization.ContactTitle != "" {
		in.PaymentNotes = models.StringPtr("Organization contact: " + w.Organization.ContactTitle)
	}
	return in
}

func trimContact(c Contact) Contact {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}
