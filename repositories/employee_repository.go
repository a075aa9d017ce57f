package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
)

type EmployeeNumberRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.EmployeeNumber, error)
	Create(ctx context.Context, tournamentID int, number string) (*models.EmployeeNumber, error)
	Delete(ctx context.Context, id int) error
}

type remoteEmployeeNumberRepository struct {
	client *Client
}

func NewRemoteEmployeeNumberRepository(client *Client) EmployeeNumberRepository {
	return &remoteEmployeeNumberRepository{client: client}
}

func (r *remoteEmployeeNumberRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.EmployeeNumber, error) {
	var numbers []models.EmployeeNumber
	if err := r.client.do(ctx, "employee_numbers.list", http.MethodGet, fmt.Sprintf("/tournaments/%d/employee-numbers", tournamentID), nil, &numbers); err != nil {
		return nil, err
	}
	if numbers == nil {
		numbers = []models.EmployeeNumber{}
	}
	return numbers, nil
}

func (r *remoteEmployeeNumberRepository) Create(ctx context.Context, tournamentID int, number string) (*models.EmployeeNumber, error) {
	body := struct {
		Number string `json:"number"`
	}{number}
	var n models.EmployeeNumber
	if err := r.client.do(ctx, "employee_numbers.create", http.MethodPost, fmt.Sprintf("/tournaments/%d/employee-numbers", tournamentID), body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *remoteEmployeeNumberRepository) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, "employee_numbers.delete", http.MethodDelete, fmt.Sprintf("/employee-numbers/%d", id), nil, nil)
}
