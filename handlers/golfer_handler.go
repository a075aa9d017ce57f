package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/services"
)

type GolferHandler struct {
	golferService services.GolferService
}

func NewGolferHandler(gs services.GolferService) *GolferHandler {
	return &GolferHandler{golferService: gs}
}

func golferIDs(r *http.Request) (int, int, error) {
	tid, err := tournamentID(r)
	if err != nil {
		return 0, 0, err
	}
	gid, err := getIDFromURL(r, "golferID")
	if err != nil {
		return 0, 0, err
	}
	return tid, gid, nil
}

func (h *GolferHandler) respond(w http.ResponseWriter, r *http.Request, golfer *models.Golfer, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"golfer": golfer}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type golferAction func(ctx context.Context, tournamentID, golferID int) (*models.Golfer, error)

func (h *GolferHandler) action(fn golferAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid, gid, err := golferIDs(r)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		golfer, err := fn(r.Context(), tid, gid)
		h.respond(w, r, golfer, err)
	}
}

// Get godoc
// @Summary Golfer details
// @Tags golfers
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 404 {object} map[string]string "Golfer not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID} [get]
func (h *GolferHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.action(h.golferService.Get)(w, r)
}

// Cancel godoc
// @Summary Cancel a registration
// @Tags golfers
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 409 {object} map[string]string "Already cancelled"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/cancel [post]
func (h *GolferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.action(h.golferService.Cancel)(w, r)
}

// Refund godoc
// @Summary Refund a paid golfer
// @Tags golfers
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 409 {object} map[string]string "Golfer has not paid"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/refund [post]
func (h *GolferHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.action(h.golferService.Refund)(w, r)
}

// Promote godoc
// @Summary Move a golfer from the waitlist into the field
// @Tags golfers
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 409 {object} map[string]string "Golfer is not waitlisted"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/promote [post]
func (h *GolferHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.action(h.golferService.Promote)(w, r)
}

// Demote godoc
// @Summary Move a confirmed golfer to the waitlist
// @Tags golfers
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 409 {object} map[string]string "Golfer is not confirmed"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/demote [post]
func (h *GolferHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.action(h.golferService.Demote)(w, r)
}

// MarkPaid godoc
// @Summary Record a payment taken by staff
// @Tags golfers
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Param input body models.PaymentRecord true "Payment"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 409 {object} map[string]string "Already paid"
// @Failure 422 {object} map[string]interface{} "Invalid payment"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/payment [post]
func (h *GolferHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	tid, gid, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.PaymentRecord
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	golfer, err := h.golferService.MarkPaid(r.Context(), tid, gid, input)
	h.respond(w, r, golfer, err)
}

// CheckIn godoc
// @Summary Check a golfer in, or undo a check-in
// @Tags check-in
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Param input body object true "{\"checked_in\": true}"
// @Success 200 {object} map[string]interface{} "golfer"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/check-in [post]
func (h *GolferHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	tid, gid, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input := struct {
		CheckedIn *bool `json:"checked_in"`
	}{}
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}
	checkedIn := true
	if input.CheckedIn != nil {
		checkedIn = *input.CheckedIn
	}
	golfer, err := h.golferService.SetCheckedIn(r.Context(), tid, gid, checkedIn)
	h.respond(w, r, golfer, err)
}

// SetEmployee godoc
// @Summary Toggle the employee flag
// @Tags golfers
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Param input body object true "{\"is_employee\": true}"
// @Success 200 {object} map[string]interface{} "golfer"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID}/employee [post]
func (h *GolferHandler) SetEmployee(w http.ResponseWriter, r *http.Request) {
	tid, gid, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		IsEmployee bool `json:"is_employee"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	golfer, err := h.golferService.SetEmployee(r.Context(), tid, gid, input.IsEmployee)
	h.respond(w, r, golfer, err)
}

// Update godoc
// @Summary Edit contact details
// @Tags golfers
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Param input body models.GolferUpdate true "Fields to change"
// @Success 200 {object} map[string]interface{} "golfer"
// @Failure 422 {object} map[string]interface{} "Invalid fields"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID} [patch]
func (h *GolferHandler) Update(w http.ResponseWriter, r *http.Request) {
	tid, gid, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.GolferUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	golfer, err := h.golferService.Update(r.Context(), tid, gid, input)
	h.respond(w, r, golfer, err)
}

// Delete godoc
// @Summary Delete a registration
// @Tags golfers
// @Param tournamentID path int true "Tournament ID"
// @Param golferID path int true "Golfer ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Admins only"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/golfers/{golferID} [delete]
func (h *GolferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tid, gid, err := golferIDs(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.golferService.Delete(r.Context(), tid, gid); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
