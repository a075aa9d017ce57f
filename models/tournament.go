package models

import "time"

const DefaultTeamSize = 4

// Tournament is the configuration bag that decides which actions the UI offers.
type Tournament struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name"`
	EventDate            time.Time  `json:"event_date"`
	Location             *string    `json:"location,omitempty"`
	Capacity             int        `json:"capacity"`
	TeamSize             int        `json:"team_size"`
	EntryFeeCents        int        `json:"entry_fee_cents"`
	EmployeeFeeCents     int        `json:"employee_fee_cents"`
	AllowStripe          bool       `json:"allow_stripe"`
	AllowPayOnDay        bool       `json:"allow_pay_on_day"`
	RegistrationOpen     bool       `json:"registration_open"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// EffectiveTeamSize falls back to a foursome when the API omits team_size.
func (t Tournament) EffectiveTeamSize() int {
	if t.TeamSize <= 0 {
		return DefaultTeamSize
	}
	return t.TeamSize
}

// AcceptingRegistrations reports whether the public form may submit at now.
func (t Tournament) AcceptingRegistrations(now time.Time) bool {
	if !t.RegistrationOpen {
		return false
	}
	if t.RegistrationDeadline != nil && now.After(*t.RegistrationDeadline) {
		return false
	}
	return true
}

// FeeCents is the entry fee owed by a registrant.
func (t Tournament) FeeCents(employee bool) int {
	if employee {
		return t.EmployeeFeeCents
	}
	return t.EntryFeeCents
}

// UpdateTournamentInput is the tournament settings form. Nil fields are unchanged.
type UpdateTournamentInput struct {
	Name                 *string    `json:"name,omitempty" validate:"omitempty,min=3,max=120"`
	EventDate            *time.Time `json:"event_date,omitempty"`
	Location             *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Capacity             *int       `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	TeamSize             *int       `json:"team_size,omitempty" validate:"omitempty,min=1,max=8"`
	EntryFeeCents        *int       `json:"entry_fee_cents,omitempty" validate:"omitempty,gte=0"`
	EmployeeFeeCents     *int       `json:"employee_fee_cents,omitempty" validate:"omitempty,gte=0"`
	AllowStripe          *bool      `json:"allow_stripe,omitempty"`
	AllowPayOnDay        *bool      `json:"allow_pay_on_day,omitempty"`
	RegistrationOpen     *bool      `json:"registration_open,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
}
