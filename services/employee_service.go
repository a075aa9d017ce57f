package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
)

type EmployeeNumberService interface {
	List(ctx context.Context, tournamentID int) ([]models.EmployeeNumber, error)
	Add(ctx context.Context, tournamentID int, number string) (*models.EmployeeNumber, error)
	Delete(ctx context.Context, tournamentID, id int) error
}

type employeeNumberService struct {
	employeeRepo repositories.EmployeeNumberRepository
}

func NewEmployeeNumberService(employeeRepo repositories.EmployeeNumberRepository) EmployeeNumberService {
	return &employeeNumberService{employeeRepo: employeeRepo}
}

func (s *employeeNumberService) List(ctx context.Context, tournamentID int) ([]models.EmployeeNumber, error) {
	numbers, err := s.employeeRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list employee numbers", ErrTournamentNotFound)
	}
	return numbers, nil
}

type employeeNumberInput struct {
	Number string `json:"number" validate:"required,max=40"`
}

func (s *employeeNumberService) Add(ctx context.Context, tournamentID int, number string) (*models.EmployeeNumber, error) {
	number = strings.TrimSpace(number)
	if err := validate(employeeNumberInput{Number: number}); err != nil {
		return nil, err
	}
	existing, err := s.List(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, n := range existing {
		if strings.EqualFold(n.Number, number) {
			return nil, fmt.Errorf("employee number %q: %w", number, repositories.ErrConflict)
		}
	}
	created, err := s.employeeRepo.Create(ctx, tournamentID, number)
	if err != nil {
		return nil, handleRepositoryError(err, "add employee number", ErrTournamentNotFound)
	}
	return created, nil
}

func (s *employeeNumberService) Delete(ctx context.Context, tournamentID, id int) error {
	existing, err := s.List(ctx, tournamentID)
	if err != nil {
		return err
	}
	for _, n := range existing {
		if n.ID == id {
			return handleRepositoryError(s.employeeRepo.Delete(ctx, id), "delete employee number", ErrNotFound)
		}
	}
	return fmt.Errorf("employee number %d: %w", id, ErrNotFound)
}
