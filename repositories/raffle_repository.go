package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
)

type RaffleRepository interface {
	ListPrizes(ctx context.Context, tournamentID int) ([]models.RafflePrize, error)
	CreatePrize(ctx context.Context, tournamentID int, input models.CreatePrizeInput) (*models.RafflePrize, error)
	DeletePrize(ctx context.Context, prizeID int) error
	DrawPrize(ctx context.Context, prizeID int) (*models.RafflePrize, error)
	ListTickets(ctx context.Context, tournamentID int) ([]models.RaffleTicket, error)
	SellTickets(ctx context.Context, tournamentID int, input models.SellTicketsInput) ([]models.RaffleTicket, error)
}

type remoteRaffleRepository struct {
	client *Client
}

func NewRemoteRaffleRepository(client *Client) RaffleRepository {
	return &remoteRaffleRepository{client: client}
}

func (r *remoteRaffleRepository) ListPrizes(ctx context.Context, tournamentID int) ([]models.RafflePrize, error) {
	var prizes []models.RafflePrize
	if err := r.client.do(ctx, "raffle.list_prizes", http.MethodGet, fmt.Sprintf("/tournaments/%d/raffle/prizes", tournamentID), nil, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []models.RafflePrize{}
	}
	return prizes, nil
}

func (r *remoteRaffleRepository) CreatePrize(ctx context.Context, tournamentID int, input models.CreatePrizeInput) (*models.RafflePrize, error) {
	var p models.RafflePrize
	if err := r.client.do(ctx, "raffle.create_prize", http.MethodPost, fmt.Sprintf("/tournaments/%d/raffle/prizes", tournamentID), input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *remoteRaffleRepository) DeletePrize(ctx context.Context, prizeID int) error {
	return r.client.do(ctx, "raffle.delete_prize", http.MethodDelete, fmt.Sprintf("/raffle/prizes/%d", prizeID), nil, nil)
}

func (r *remoteRaffleRepository) DrawPrize(ctx context.Context, prizeID int) (*models.RafflePrize, error) {
	var p models.RafflePrize
	if err := r.client.do(ctx, "raffle.draw", http.MethodPost, fmt.Sprintf("/raffle/prizes/%d/draw", prizeID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *remoteRaffleRepository) ListTickets(ctx context.Context, tournamentID int) ([]models.RaffleTicket, error) {
	var tickets []models.RaffleTicket
	if err := r.client.do(ctx, "raffle.list_tickets", http.MethodGet, fmt.Sprintf("/tournaments/%d/raffle/tickets", tournamentID), nil, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.RaffleTicket{}
	}
	return tickets, nil
}

func (r *remoteRaffleRepository) SellTickets(ctx context.Context, tournamentID int, input models.SellTicketsInput) ([]models.RaffleTicket, error) {
	var tickets []models.RaffleTicket
	if err := r.client.do(ctx, "raffle.sell_tickets", http.MethodPost, fmt.Sprintf("/tournaments/%d/raffle/tickets", tournamentID), input, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
