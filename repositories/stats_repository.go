package repositories

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dosada05/golf-admin/models"
)

type StatsRepository interface {
	Get(ctx context.Context, tournamentID int) (*models.Stats, error)
}

type ActivityRepository interface {
	ListByTournament(ctx context.Context, tournamentID, limit int) ([]models.ActivityLog, error)
}

type remoteStatsRepository struct {
	client *Client
}

func NewRemoteStatsRepository(client *Client) StatsRepository {
	return &remoteStatsRepository{client: client}
}

func (r *remoteStatsRepository) Get(ctx context.Context, tournamentID int) (*models.Stats, error) {
	var s models.Stats
	if err := r.client.do(ctx, "stats.get", http.MethodGet, fmt.Sprintf("/tournaments/%d/stats", tournamentID), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type remoteActivityRepository struct {
	client *Client
}

func NewRemoteActivityRepository(client *Client) ActivityRepository {
	return &remoteActivityRepository{client: client}
}

func (r *remoteActivityRepository) ListByTournament(ctx context.Context, tournamentID, limit int) ([]models.ActivityLog, error) {
	path := fmt.Sprintf("/tournaments/%d/activity", tournamentID)
	if limit > 0 {
		path += "?" + url.Values{"limit": []string{strconv.Itoa(limit)}}.Encode()
	}
	var entries []models.ActivityLog
	if err := r.client.do(ctx, "activity.list", http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	return entries, nil
}
