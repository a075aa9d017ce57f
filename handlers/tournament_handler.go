package handlers

import (
	"net/http"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// List godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{} "tournaments"
// @Security BearerAuth
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Tournament settings
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Change tournament settings
// @Tags tournaments
// @Description Only the fields present are changed. At least one payment option must stay enabled.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body models.UpdateTournamentInput true "Settings"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 409 {object} map[string]string "No payment option left"
// @Failure 422 {object} map[string]interface{} "Validation errors"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [put]
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": t}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
