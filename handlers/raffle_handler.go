package handlers

import (
	"net/http"

	"github.com/Dosada05/golf-admin/models"
	"github.com/Dosada05/golf-admin/services"
)

type RaffleHandler struct {
	raffleService services.RaffleService
}

func NewRaffleHandler(rs services.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleService: rs}
}

// Board godoc
// @Summary Raffle prizes, tickets and totals
// @Tags raffle
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "raffle"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/raffle [get]
func (h *RaffleHandler) Board(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	board, err := h.raffleService.Board(r.Context(), tid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"raffle": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePrize godoc
// @Summary Add a prize
// @Tags raffle
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body models.CreatePrizeInput true "Prize"
// @Success 201 {object} map[string]interface{} "prize"
// @Failure 422 {object} map[string]interface{} "Validation errors"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/raffle/prizes [post]
func (h *RaffleHandler) CreatePrize(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.CreatePrizeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	prize, err := h.raffleService.CreatePrize(r.Context(), tid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"prize": prize}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePrize godoc
// @Summary Delete a prize that has not been drawn
// @Tags raffle
// @Param tournamentID path int true "Tournament ID"
// @Param prizeID path int true "Prize ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string "Already drawn"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/raffle/prizes/{prizeID} [delete]
func (h *RaffleHandler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	prizeID, err := getIDFromURL(r, "prizeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.raffleService.DeletePrize(r.Context(), tid, prizeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SellTickets godoc
// @Summary Record a ticket sale
// @Tags raffle
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body models.SellTicketsInput true "Sale"
// @Success 201 {object} map[string]interface{} "tickets"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/raffle/tickets [post]
func (h *RaffleHandler) SellTickets(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.SellTicketsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tickets, err := h.raffleService.SellTickets(r.Context(), tid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tickets": tickets}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Draw godoc
// @Summary Draw the winning ticket for a prize
// @Tags raffle
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param prizeID path int true "Prize ID"
// @Success 200 {object} map[string]interface{} "prize"
// @Failure 409 {object} map[string]string "Already drawn or no tickets sold"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/raffle/prizes/{prizeID}/draw [post]
func (h *RaffleHandler) Draw(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	prizeID, err := getIDFromURL(r, "prizeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	prize, err := h.raffleService.Draw(r.Context(), tid, prizeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prize": prize}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
