package models

import "time"

type RafflePrize struct {
	ID             int     `json:"id"`
	TournamentID   int     `json:"tournament_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Sponsor        *string `json:"sponsor,omitempty"`
	WinnerTicketID *int    `json:"winner_ticket_id,omitempty"`
	WinnerName     *string `json:"winner_name,omitempty"`
}

func (p RafflePrize) Drawn() bool { return p.WinnerTicketID != nil }

type RaffleTicket struct {
	ID             int       `json:"id"`
	TournamentID   int       `json:"tournament_id"`
	Number         string    `json:"number"`
	PurchaserName  string    `json:"purchaser_name"`
	PurchaserEmail *string   `json:"purchaser_email,omitempty"`
	GolferID       *int      `json:"golfer_id,omitempty"`
	AmountCents    int       `json:"amount_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreatePrizeInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Sponsor     *string `json:"sponsor,omitempty" validate:"omitempty,max=120"`
}

type SellTicketsInput struct {
	PurchaserName  string  `json:"purchaser_name" validate:"required,max=120"`
	PurchaserEmail *string `json:"purchaser_email,omitempty" validate:"omitempty,email"`
	GolferID       *int    `json:"golfer_id,omitempty"`
	Quantity       int     `json:"quantity" validate:"required,min=1,max=500"`
	AmountCents    int     `json:"amount_cents" validate:"gte=0"`
}
