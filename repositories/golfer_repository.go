package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
)

type GolferRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Golfer, error)
	GetByID(ctx context.Context, id int) (*models.Golfer, error)
	Register(ctx context.Context, tournamentID int, input models.RegistrationInput) (*models.Golfer, error)
	Update(ctx context.Context, id int, input models.GolferUpdate) (*models.Golfer, error)
	Cancel(ctx context.Context, id int) (*models.Golfer, error)
	Refund(ctx context.Context, id int) (*models.Golfer, error)
	Promote(ctx context.Context, id int) (*models.Golfer, error)
	Demote(ctx context.Context, id int) (*models.Golfer, error)
	RecordPayment(ctx context.Context, id int, payment models.PaymentRecord) (*models.Golfer, error)
	SetCheckedIn(ctx context.Context, id int, checkedIn bool) (*models.Golfer, error)
	SetEmployee(ctx context.Context, id int, isEmployee bool) (*models.Golfer, error)
	Delete(ctx context.Context, id int) error
}

type remoteGolferRepository struct {
	client *Client
}

func NewRemoteGolferRepository(client *Client) GolferRepository {
	return &remoteGolferRepository{client: client}
}

func (r *remoteGolferRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Golfer, error) {
	const op = "golfers.list"
	var golfers []models.Golfer
	if err := r.client.do(ctx, op, http.MethodGet, fmt.Sprintf("/tournaments/%d/golfers", tournamentID), nil, &golfers); err != nil {
		return nil, err
	}
	if err := validateGolfers(op, golfers); err != nil {
		return nil, err
	}
	if golfers == nil {
		golfers = []models.Golfer{}
	}
	return golfers, nil
}

func (r *remoteGolferRepository) GetByID(ctx context.Context, id int) (*models.Golfer, error) {
	const op = "golfers.get"
	var g models.Golfer
	if err := r.client.do(ctx, op, http.MethodGet, fmt.Sprintf("/golfers/%d", id), nil, &g); err != nil {
		return nil, err
	}
	return validateGolfer(op, &g)
}

func (r *remoteGolferRepository) Register(ctx context.Context, tournamentID int, input models.RegistrationInput) (*models.Golfer, error) {
	const op = "golfers.register"
	var g models.Golfer
	if err := r.client.do(ctx, op, http.MethodPost, fmt.Sprintf("/tournaments/%d/golfers", tournamentID), input, &g); err != nil {
		return nil, err
	}
	return validateGolfer(op, &g)
}

func (r *remoteGolferRepository) Update(ctx context.Context, id int, input models.GolferUpdate) (*models.Golfer, error) {
	const op = "golfers.update"
	var g models.Golfer
	if err := r.client.do(ctx, op, http.MethodPatch, fmt.Sprintf("/golfers/%d", id), input, &g); err != nil {
		return nil, err
	}
	return validateGolfer(op, &g)
}

func (r *remoteGolferRepository) Cancel(ctx context.Context, id int) (*models.Golfer, error) {
	return r.action(ctx, "golfers.cancel", id, "cancel", nil)
}

func (r *remoteGolferRepository) Refund(ctx context.Context, id int) (*models.Golfer, error) {
	return r.action(ctx, "golfers.refund", id, "refund", nil)
}

func (r *remoteGolferRepository) Promote(ctx context.Context, id int) (*models.Golfer, error) {
	return r.action(ctx, "golfers.promote", id, "promote", nil)
}

func (r *remoteGolferRepository) Demote(ctx context.Context, id int) (*models.Golfer, error) {
	return r.action(ctx, "golfers.demote", id, "demote", nil)
}

func (r *remoteGolferRepository) RecordPayment(ctx context.Context, id int, payment models.PaymentRecord) (*models.Golfer, error) {
	return r.action(ctx, "golfers.payment", id, "payment", payment)
}

func (r *remoteGolferRepository) SetCheckedIn(ctx context.Context, id int, checkedIn bool) (*models.Golfer, error) {
	body := struct {
		CheckedIn bool `json:"checked_in"`
	}{checkedIn}
	return r.action(ctx, "golfers.check_in", id, "check-in", body)
}

func (r *remoteGolferRepository) SetEmployee(ctx context.Context, id int, isEmployee bool) (*models.Golfer, error) {
	body := struct {
		IsEmployee bool `json:"is_employee"`
	}{isEmployee}
	return r.action(ctx, "golfers.employee", id, "employee", body)
}

func (r *remoteGolferRepository) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, "golfers.delete", http.MethodDelete, fmt.Sprintf("/golfers/%d", id), nil, nil)
}

func (r *remoteGolferRepository) action(ctx context.Context, op string, id int, verb string, body interface{}) (*models.Golfer, error) {
	var g models.Golfer
	if err := r.client.do(ctx, op, http.MethodPost, fmt.Sprintf("/golfers/%d/%s", id, verb), body, &g); err != nil {
		return nil, err
	}
	return validateGolfer(op, &g)
}
