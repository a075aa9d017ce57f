package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/repositories"
)

// RaffleBoard is the raffle admin page: prizes plus tickets sold.
type RaffleBoard struct {
	Prizes       []models.RafflePrize  `json:"prizes"`
	Tickets      []models.RaffleTicket `json:"tickets"`
	TicketsSold  int                   `json:"tickets_sold"`
	RevenueCents int                   `json:"revenue_cents"`
}

type RaffleService interface {
	Board(ctx context.Context, tournamentID int) (*RaffleBoard, error)
	CreatePrize(ctx context.Context, tournamentID int, input models.CreatePrizeInput) (*models.RafflePrize, error)
	DeletePrize(ctx context.Context, tournamentID, prizeID int) error
	SellTickets(ctx context.Context, tournamentID int, input models.SellTicketsInput) ([]models.RaffleTicket, error)
	// Draw asks the API to pick a winning ticket; the draw itself is server-side.
	Draw(ctx context.Context, tournamentID, prizeID int) (*models.RafflePrize, error)
}

type raffleService struct {
	raffleRepo repositories.RaffleRepository
	logger     *slog.Logger
}

func NewRaffleService(raffleRepo repositories.RaffleRepository, logger *slog.Logger) RaffleService {
	return &raffleService{raffleRepo: raffleRepo, logger: loggerOrDefault(logger)}
}

func (s *raffleService) Board(ctx context.Context, tournamentID int) (*RaffleBoard, error) {
	prizes, err := s.raffleRepo.ListPrizes(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list prizes", ErrTournamentNotFound)
	}
	tickets, err := s.raffleRepo.ListTickets(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list tickets", ErrTournamentNotFound)
	}
	b := &RaffleBoard{Prizes: prizes, Tickets: tickets, TicketsSold: len(tickets)}
	for _, t := range tickets {
		b.RevenueCents += t.AmountCents
	}
	return b, nil
}

func (s *raffleService) findPrize(ctx context.Context, tournamentID, prizeID int) (*models.RafflePrize, error) {
	prizes, err := s.raffleRepo.ListPrizes(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list prizes", ErrTournamentNotFound)
	}
	for i := range prizes {
		if prizes[i].ID == prizeID {
			return &prizes[i], nil
		}
	}
	return nil, fmt.Errorf("prize %d: %w", prizeID, ErrNotFound)
}

func (s *raffleService) CreatePrize(ctx context.Context, tournamentID int, input models.CreatePrizeInput) (*models.RafflePrize, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	p, err := s.raffleRepo.CreatePrize(ctx, tournamentID, input)
	if err != nil {
		return nil, handleRepositoryError(err, "create prize", ErrTournamentNotFound)
	}
	return p, nil
}

func (s *raffleService) DeletePrize(ctx context.Context, tournamentID, prizeID int) error {
	prize, err := s.findPrize(ctx, tournamentID, prizeID)
	if err != nil {
		return err
	}
	if prize.Drawn() {
		return fmt.Errorf("delete prize %d: %w", prizeID, ErrPrizeAlreadyDrawn)
	}
	return handleRepositoryError(s.raffleRepo.DeletePrize(ctx, prizeID), "delete prize", ErrNotFound)
}

func (s *raffleService) SellTickets(ctx context.Context, tournamentID int, input models.SellTicketsInput) ([]models.RaffleTicket, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	tickets, err := s.raffleRepo.SellTickets(ctx, tournamentID, input)
	if err != nil {
		return nil, handleRepositoryError(err, "sell tickets", ErrTournamentNotFound)
	}
	return tickets, nil
}

func (s *raffleService) Draw(ctx context.Context, tournamentID, prizeID int) (*models.RafflePrize, error) {
	prize, err := s.findPrize(ctx, tournamentID, prizeID)
	if err != nil {
		return nil, err
	}
	if prize.Drawn() {
		return nil, fmt.Errorf("draw prize %d: %w", prizeID, ErrPrizeAlreadyDrawn)
	}
	tickets, err := s.raffleRepo.ListTickets(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list tickets", ErrTournamentNotFound)
	}
	if len(tickets) == 0 {
		return nil, ErrNoTickets
	}

	drawn, err := s.raffleRepo.DrawPrize(ctx, prizeID)
	if err != nil {
		return nil, handleRepositoryError(err, "draw prize", ErrNotFound)
	}
	s.logger.Info("raffle prize drawn",
		slog.Int("tournament_id", tournamentID),
		slog.Int("prize_id", prizeID),
		slog.String("winner", derefString(drawn.WinnerName)),
	)
	return drawn, nil
}
