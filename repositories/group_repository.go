package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
)

type GroupRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Group, error)
	Create(ctx context.Context, tournamentID int, input models.CreateGroupInput) (*models.Group, error)
	Delete(ctx context.Context, groupID int) error
	AddMember(ctx context.Context, groupID, golferID int) error
	RemoveMember(ctx context.Context, groupID, golferID int) error
}

type remoteGroupRepository struct {
	client *Client
}

func NewRemoteGroupRepository(client *Client) GroupRepository {
	return &remoteGroupRepository{client: client}
}

func (r *remoteGroupRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Group, error) {
	const op = "groups.list"
	var groups []models.Group
	if err := r.client.do(ctx, op, http.MethodGet, fmt.Sprintf("/tournaments/%d/groups", tournamentID), nil, &groups); err != nil {
		return nil, err
	}
	for i := range groups {
		if err := validateGolfers(op, groups[i].Members); err != nil {
			return nil, err
		}
		if groups[i].Members == nil {
			groups[i].Members = []models.Golfer{}
		}
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

func (r *remoteGroupRepository) Create(ctx context.Context, tournamentID int, input models.CreateGroupInput) (*models.Group, error) {
	var g models.Group
	if err := r.client.do(ctx, "groups.create", http.MethodPost, fmt.Sprintf("/tournaments/%d/groups", tournamentID), input, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *remoteGroupRepository) Delete(ctx context.Context, groupID int) error {
	return r.client.do(ctx, "groups.delete", http.MethodDelete, fmt.Sprintf("/groups/%d", groupID), nil, nil)
}

func (r *remoteGroupRepository) AddMember(ctx context.Context, groupID, golferID int) error {
	body := struct {
		GolferID int `json:"golfer_id"`
	}{golferID}
	return r.client.do(ctx, "groups.add_member", http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), body, nil)
}

func (r *remoteGroupRepository) RemoveMember(ctx context.Context, groupID, golferID int) error {
	return r.client.do(ctx, "groups.remove_member", http.MethodDelete, fmt.Sprintf("/groups/%d/members/%d", groupID, golferID), nil, nil)
}
