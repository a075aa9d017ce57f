package handlers

import (
	"net/http"

	"github.com/Dosada05/golf-admin/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// View godoc
// @Summary Golfer list with stats
// @Tags dashboard
// @Description Filtered and sorted golfers of a tournament plus the server-computed stats. Without query parameters only confirmed golfers are shown, sorted by name.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param search query string false "Matches name, email or company"
// @Param payment_status query string false "all, paid, unpaid, refunded"
// @Param payment_type query string false "all, stripe, pay_on_day"
// @Param registration_status query string false "all, active, confirmed, waitlist, cancelled"
// @Param check_in query string false "all, checked_in, not_checked_in"
// @Param hole query string false "all, unassigned, a hole number or a label like 7A"
// @Param sort query string false "Sort key"
// @Param order query string false "asc or desc"
// @Success 200 {object} map[string]interface{} "dashboard"
// @Failure 422 {object} map[string]interface{} "Invalid filter"
// @Failure 502 {object} map[string]interface{} "Tournament service unavailable, retryable"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers [get]
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter, sort, err := parseRosterQuery(r)
	if err != nil {
		respondRosterQueryError(w, r, err)
		return
	}

	view, err := h.dashboardService.View(r.Context(), id, filter, sort)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"dashboard": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Resync godoc
// @Summary Reload golfers and stats from the tournament service
// @Tags dashboard
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "state"
// @Failure 502 {object} map[string]interface{} "Tournament service unavailable"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/sync [post]
func (h *DashboardHandler) Resync(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	st, err := h.dashboardService.Resync(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"state": st}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CheckInQueue godoc
// @Summary Confirmed golfers not yet checked in, by starting hole
// @Tags check-in
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "golfers"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/check-in [get]
func (h *DashboardHandler) CheckInQueue(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	queue, err := h.dashboardService.CheckInQueue(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"golfers": queue, "remaining": len(queue)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
