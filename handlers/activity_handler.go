package handlers

import (
	"net/http"

	"github.com/Dosada05/golf-admin/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(as services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: as}
}

// List godoc
// @Summary Recent activity, newest first
// @Tags activity
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param limit query int false "At most this many entries (default 50, max 500)"
// @Success 200 {object} map[string]interface{} "activity"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/activity [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	limit := toInt(r.URL.Query().Get("limit"), services.DefaultActivityLimit)
	entries, err := h.activityService.List(r.Context(), tid, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"activity": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
