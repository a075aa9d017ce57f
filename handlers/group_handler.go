package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/golf-admin/grouping"
	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

func (h *GroupHandler) respond(w http.ResponseWriter, r *http.Request, board *grouping.Board, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Board godoc
// @Summary Group management board
// @Tags groups
// @Description Unassigned confirmed golfers and every group with its members.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "board"
// @Failure 502 {object} map[string]interface{} "Tournament service unavailable, retryable"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups [get]
func (h *GroupHandler) Board(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.groupService.Board(r.Context(), tid)
	h.respond(w, r, board, err)
}

// Refresh godoc
// @Summary Reload the board from the tournament service
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "board"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/sync [post]
func (h *GroupHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.groupService.Refresh(r.Context(), tid)
	h.respond(w, r, board, err)
}

// Create godoc
// @Summary Add a group
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body models.CreateGroupInput true "Starting hole"
// @Success 201 {object} map[string]interface{} "board"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups [post]
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.CreateGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.groupService.CreateGroup(r.Context(), tid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete a group; its members become unassigned
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Success 200 {object} map[string]interface{} "board"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID} [delete]
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.groupService.DeleteGroup(r.Context(), tid, groupID)
	h.respond(w, r, board, err)
}

// Move godoc
// @Summary Move a golfer to a group, or out of all groups with group_id 0
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body object true "{\"golfer_id\": 12, \"group_id\": 3}"
// @Success 200 {object} map[string]interface{} "board"
// @Failure 409 {object} map[string]string "Group is full"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/moves [post]
func (h *GroupHandler) Move(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		GolferID int `json:"golfer_id"`
		GroupID  int `json:"group_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.GolferID <= 0 || input.GroupID < 0 {
		failedValidationResponse(w, r, map[string]string{"golfer_id": "must be a golfer id; group_id must be a group id or 0"})
		return
	}
	board, err := h.groupService.MoveGolfer(r.Context(), tid, input.GolferID, input.GroupID)
	h.respond(w, r, board, err)
}

// AddMembers godoc
// @Summary Add several golfers to a group at once
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Param input body object true "{\"golfer_ids\": [1, 2]}"
// @Success 200 {object} map[string]interface{} "board"
// @Failure 409 {object} map[string]string "Not enough open slots"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID}/members [post]
func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		GolferIDs []int `json:"golfer_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.GolferIDs) == 0 {
		failedValidationResponse(w, r, map[string]string{"golfer_ids": "is required"})
		return
	}
	board, err := h.groupService.AddManyToGroup(r.Context(), tid, input.GolferIDs, groupID)
	h.respond(w, r, board, err)
}

// RemoveMember godoc
// @Summary Take a golfer out of a group
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "board"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID}/members/{golferID} [delete]
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	tid, golferID, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.groupService.Board(r.Context(), tid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if loc, ok := board.Locate(golferID); !ok || loc != groupID {
		mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: golfer %d is not in group %d", services.ErrGolferNotFound, golferID, groupID))
		return
	}
	board, err = h.groupService.RemoveFromGroup(r.Context(), tid, golferID)
	h.respond(w, r, board, err)
}
