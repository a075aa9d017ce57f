package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/golf-admin/services"
	"github.com/Dosada05/golf-admin/wizard"
)

// RegistrationHandler serves the public sign-up wizard. No session is required.
type RegistrationHandler struct {
	registrationService services.RegistrationService
	// successURL is where the browser lands after a paid checkout completes.
	successURL string
}

func NewRegistrationHandler(rs services.RegistrationService, successURL string) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs, successURL: successURL}
}

func (h *RegistrationHandler) respond(w http.ResponseWriter, r *http.Request, status int, view *services.RegistrationView, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, status, jsonResponse{"registration": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func registrationID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "registrationID"))
	if id == "" {
		return "", errors.New("missing registrationID in URL path")
	}
	return id, nil
}

// Start godoc
// @Summary Start a registration
// @Tags registration
// @Accept json
// @Produce json
// @Param input body object true "{\"tournament_id\": 1, \"variant\": \"individual\"}"
// @Success 201 {object} map[string]interface{} "registration"
// @Failure 403 {object} map[string]string "Registration closed"
// @Router /registration [post]
func (h *RegistrationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TournamentID int            `json:"tournament_id"`
		Variant      wizard.Variant `json:"variant"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TournamentID <= 0 {
		failedValidationResponse(w, r, map[string]string{"tournament_id": "is required"})
		return
	}
	if input.Variant == "" {
		input.Variant = wizard.Individual
	}
	view, err := h.registrationService.Start(r.Context(), input.TournamentID, input.Variant)
	h.respond(w, r, http.StatusCreated, view, err)
}

// Get godoc
// @Summary Current state of a registration
// @Tags registration
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} map[string]interface{} "registration"
// @Failure 404 {object} map[string]string "Unknown or expired"
// @Router /registration/{registrationID} [get]
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := registrationID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.registrationService.Get(r.Context(), id)
	h.respond(w, r, http.StatusOK, view, err)
}

// Next godoc
// @Summary Save the current step and advance
// @Tags registration
// @Accept json
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Param input body wizard.Form true "Sections to save"
// @Success 200 {object} map[string]interface{} "registration"
// @Failure 422 {object} map[string]interface{} "Step does not validate"
// @Router /registration/{registrationID}/next [post]
func (h *RegistrationHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, err := registrationID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var form wizard.Form
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.registrationService.Next(r.Context(), id, form)
	h.respond(w, r, http.StatusOK, view, err)
}

// Back godoc
// @Summary Return to the previous step
// @Tags registration
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} map[string]interface{} "registration"
// @Router /registration/{registrationID}/back [post]
func (h *RegistrationHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, err := registrationID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.registrationService.Back(r.Context(), id)
	h.respond(w, r, http.StatusOK, view, err)
}

// Submit godoc
// @Summary Submit the registration
// @Tags registration
// @Description Pay-on-the-day registrations are recorded at once. Online payment returns a checkout_url to redirect the browser to.
// @Accept json
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Param input body wizard.Form true "Payment step"
// @Success 200 {object} map[string]interface{} "registration"
// @Failure 409 {object} map[string]string "Already submitted"
// @Router /registration/{registrationID}/submit [post]
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := registrationID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var form wizard.Form
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	view, err := h.registrationService.Submit(r.Context(), id, form)
	h.respond(w, r, http.StatusOK, view, err)
}

// Complete godoc
// @Summary Return point of the hosted checkout
// @Tags registration
// @Param registrationID path string true "Registration ID"
// @Param session_id query string true "Checkout session ID"
// @Success 303 "Redirect to the confirmation page"
// @Success 200 {object} map[string]interface{} "registration, when no confirmation page is configured"
// @Failure 402 {object} map[string]string "Payment not completed"
// @Router /registration/{registrationID}/complete [get]
func (h *RegistrationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := registrationID(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		badRequestResponse(w, r, errors.New("session_id query parameter is required"))
		return
	}

	view, err := h.registrationService.Complete(r.Context(), id, sessionID)
	if err != nil || h.successURL == "" {
		h.respond(w, r, http.StatusOK, view, err)
		return
	}
	http.Redirect(w, r, confirmationURL(h.successURL, id), http.StatusSeeOther)
}

func confirmationURL(base, id string) string {
	if strings.Contains(base, "{REGISTRATION_ID}") {
		return strings.ReplaceAll(base, "{REGISTRATION_ID}", url.PathEscape(id))
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("registration_id", id)
	u.RawQuery = q.Encode()
	return u.String()
}
