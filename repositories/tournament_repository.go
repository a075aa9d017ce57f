package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
)

type TournamentRepository interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, id int, input models.UpdateTournamentInput) (*models.Tournament, error)
}

type remoteTournamentRepository struct {
	client *Client
}

func NewRemoteTournamentRepository(client *Client) TournamentRepository {
	return &remoteTournamentRepository{client: client}
}

func (r *remoteTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := r.client.do(ctx, "tournaments.list", http.MethodGet, "/tournaments", nil, &tournaments); err != nil {
		return nil, err
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}
	return tournaments, nil
}

func (r *remoteTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	var t models.Tournament
	if err := r.client.do(ctx, "tournaments.get", http.MethodGet, fmt.Sprintf("/tournaments/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *remoteTournamentRepository) Update(ctx context.Context, id int, input models.UpdateTournamentInput) (*models.Tournament, error) {
	var t models.Tournament
	if err := r.client.do(ctx, "tournaments.update", http.MethodPut, fmt.Sprintf("/tournaments/%d", id), input, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
