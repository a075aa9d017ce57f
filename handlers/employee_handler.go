package handlers

import (
	"net/http"

	"github.com/Dosada05/golf-admin/services"
)

// EmployeeHandler manages the employee numbers that unlock the employee fee.
type EmployeeHandler struct {
	employeeService services.EmployeeNumberService
}

func NewEmployeeHandler(es services.EmployeeNumberService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

// List godoc
// @Summary Employee numbers of a tournament
// @Tags employees
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{} "employee_numbers"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/employee-numbers [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	numbers, err := h.employeeService.List(r.Context(), tid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"employee_numbers": numbers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Add godoc
// @Summary Add an employee number
// @Tags employees
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body object true "{\"number\": \"E-1042\"}"
// @Success 201 {object} map[string]interface{} "employee_number"
// @Failure 409 {object} map[string]string "Number already listed"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/employee-numbers [post]
func (h *EmployeeHandler) Add(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Number string `json:"number"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	n, err := h.employeeService.Add(r.Context(), tid, input.Number)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"employee_number": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Remove an employee number
// @Tags employees
// @Param tournamentID path int true "Tournament ID"
// @Param numberID path int true "Employee number ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/employee-numbers/{numberID} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tid, err := tournamentID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	id, err := getIDFromURL(r, "numberID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.employeeService.Delete(r.Context(), tid, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
