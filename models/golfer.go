package models

import (
	"fmt"
	"strings"
	"time"
)

// RegistrationStatus is the registrant's place in the field.
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationWaitlist  RegistrationStatus = "waitlist"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationConfirmed, RegistrationWaitlist, RegistrationCancelled:
		return true
	}
	return false
}

// PaymentStatus is the state of the registrant's entry fee.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentUnpaid, PaymentRefunded:
		return true
	}
	return false
}

// PaymentType is how the registrant chose to pay at sign-up.
type PaymentType string

const (
	PaymentTypeStripe   PaymentType = "stripe"
	PaymentTypePayOnDay PaymentType = "pay_on_day"
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeStripe || t == PaymentTypePayOnDay
}

// Golfer is a tournament registrant as returned by the remote API.
// Optional fields are pointers; they are nil when the API omits them.
type Golfer struct {
	ID                 int                `json:"id"`
	TournamentID       int                `json:"tournament_id"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Email              string             `json:"email"`
	Phone              *string            `json:"phone,omitempty"`
	Company            *string            `json:"company,omitempty"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	PaymentStatus      PaymentStatus      `json:"payment_status"`
	PaymentType        PaymentType        `json:"payment_type"`
	PaymentMethod      *string            `json:"payment_method,omitempty"`
	PaymentNotes       *string            `json:"payment_notes,omitempty"`
	AmountPaidCents    *int               `json:"amount_paid_cents,omitempty"`
	CheckedIn          bool               `json:"checked_in"`
	CheckedInAt        *time.Time         `json:"checked_in_at,omitempty"`
	HoleNumber         *int               `json:"hole_number,omitempty"`
	GroupID            *int               `json:"group_id,omitempty"`
	HolePositionLabel  *string            `json:"hole_position_label,omitempty"`
	IsEmployee         bool               `json:"is_employee"`
	EmployeeNumber     *string            `json:"employee_number,omitempty"`
	WaiverSignedAt     *time.Time         `json:"waiver_signed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

func (g Golfer) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// Validate checks the fields every consumer relies on. It runs once, when a
// record crosses the API boundary.
func (g Golfer) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("golfer has invalid id %d", g.ID)
	}
	if !g.RegistrationStatus.Valid() {
		return fmt.Errorf("golfer %d: unknown registration_status %q", g.ID, g.RegistrationStatus)
	}
	if !g.PaymentStatus.Valid() {
		return fmt.Errorf("golfer %d: unknown payment_status %q", g.ID, g.PaymentStatus)
	}
	if !g.PaymentType.Valid() {
		return fmt.Errorf("golfer %d: unknown payment_type %q", g.ID, g.PaymentType)
	}
	return nil
}

// Clone returns a copy that shares no pointers with g.
func (g Golfer) Clone() Golfer {
	c := g
	c.Phone = cloneString(g.Phone)
	c.Company = cloneString(g.Company)
	c.PaymentMethod = cloneString(g.PaymentMethod)
	c.PaymentNotes = cloneString(g.PaymentNotes)
	c.HolePositionLabel = cloneString(g.HolePositionLabel)
	c.EmployeeNumber = cloneString(g.EmployeeNumber)
	c.AmountPaidCents = cloneInt(g.AmountPaidCents)
	c.HoleNumber = cloneInt(g.HoleNumber)
	c.GroupID = cloneInt(g.GroupID)
	c.CheckedInAt = cloneTime(g.CheckedInAt)
	c.WaiverSignedAt = cloneTime(g.WaiverSignedAt)
	return c
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StringPtr and IntPtr are conveniences for building optional fields.
func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RegistrationInput is the payload submitted when a new registrant signs up.
type RegistrationInput struct {
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Email           string        `json:"email"`
	Phone           *string       `json:"phone,omitempty"`
	Company         *string       `json:"company,omitempty"`
	PaymentType     PaymentType   `json:"payment_type"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentMethod   *string       `json:"payment_method,omitempty"`
	PaymentNotes    *string       `json:"payment_notes,omitempty"`
	AmountPaidCents *int          `json:"amount_paid_cents,omitempty"`
	IsEmployee      bool          `json:"is_employee"`
	EmployeeNumber  *string       `json:"employee_number,omitempty"`
	WaiverSignedAt  *time.Time    `json:"waiver_signed_at,omitempty"`
}

// GolferUpdate carries admin edits to contact fields. Nil fields are left unchanged.
type GolferUpdate struct {
	FirstName    *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=60"`
	LastName     *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=60"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Company      *string `json:"company,omitempty" validate:"omitempty,max=120"`
	PaymentNotes *string `json:"payment_notes,omitempty" validate:"omitempty,max=500"`
}

// PaymentRecord is what an admin enters when marking a golfer as paid.
type PaymentRecord struct {
	Method      string  `json:"payment_method" validate:"required,oneof=cash check card stripe"`
	AmountCents *int    `json:"amount_paid_cents,omitempty" validate:"omitempty,gte=0"`
	Notes       *string `json:"payment_notes,omitempty" validate:"omitempty,max=500"`
}
