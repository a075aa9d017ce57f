package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/golf-admin/repositories"
	"github.com/Dosada05/golf-admin/roster"
	"github.com/Dosada05/golf-admin/services"
	"github.com/Dosada05/golf-admin/session"
	"github.com/Dosada05/golf-admin/utils"
	"github.com/Dosada05/golf-admin/wizard"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	writeEnvelope(w, r, status, jsonResponse{"error": message})
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, env jsonResponse) {
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// upstreamErrorResponse reports a failure of the tournament API. Retryable
// tells the browser to offer a retry button instead of a dead end.
func upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error, retryable bool) {
	slog.WarnContext(r.Context(), "upstream request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeEnvelope(w, r, http.StatusBadGateway, jsonResponse{
		"error":     "the tournament service is unavailable, please try again",
		"retryable": retryable,
	})
}

// mapServiceErrorToHTTP turns service and repository errors into responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var loadErr *services.LoadError
	if errors.As(err, &loadErr) && !errors.Is(err, services.ErrTournamentNotFound) &&
		!errors.Is(err, services.ErrAuthenticationFailed) && !errors.Is(err, services.ErrForbiddenOperation) {
		upstreamErrorResponse(w, r, err, loadErr.Retryable())
		return
	}

	var fieldErrs utils.FieldErrors
	if errors.As(err, &fieldErrs) {
		failedValidationResponse(w, r, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrGolferNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrWizardNotFound),
		errors.Is(err, repositories.ErrNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrNotPaid),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrGroupFull),
		errors.Is(err, services.ErrPrizeAlreadyDrawn),
		errors.Is(err, services.ErrNoTickets),
		errors.Is(err, services.ErrNoPaymentOption),
		errors.Is(err, wizard.ErrFinished),
		errors.Is(err, wizard.ErrAwaitingPayment),
		errors.Is(err, wizard.ErrSubmitting),
		errors.Is(err, wizard.ErrFirstStep),
		errors.Is(err, wizard.ErrLastStep),
		errors.Is(err, wizard.ErrNotPaymentStep),
		errors.Is(err, repositories.ErrConflict):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPaymentOptionUnavailable),
		errors.Is(err, services.ErrInvalidEmployeeNumber),
		errors.Is(err, wizard.ErrUnknownVariant):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrPaymentNotCompleted):
		errorResponse(w, r, http.StatusPaymentRequired, err.Error())

	case errors.Is(err, services.ErrCheckoutUnavailable):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, services.ErrRegistrationClosed):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrAuthenticationFailed),
		errors.Is(err, repositories.ErrUnauthorized):
		unauthorizedResponse(w, r, "your session is no longer valid, please sign in again")
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, repositories.ErrForbidden):
		forbiddenResponse(w, r, "you are not allowed to perform this operation")

	case errors.Is(err, repositories.ErrRejected):
		var apiErr *repositories.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			errorResponse(w, r, http.StatusBadRequest, apiErr.Message)
			return
		}
		badRequestResponse(w, r, err)

	case errors.Is(err, repositories.ErrUnavailable),
		errors.Is(err, repositories.ErrMalformedResponse):
		upstreamErrorResponse(w, r, err, true)

	default:
		serverErrorResponse(w, r, err)
	}
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", paramName, id)
	}

	return id, nil
}

func toInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// rosterQuery is the filter and sort state of the list screens, carried in
// the query string so a reload or export keeps the view.
type rosterQuery struct {
	Search             string `json:"search" validate:"max=100"`
	PaymentStatus      string `json:"payment_status" validate:"oneof=all paid unpaid refunded"`
	PaymentType        string `json:"payment_type" validate:"oneof=all stripe pay_on_day"`
	RegistrationStatus string `json:"registration_status" validate:"oneof=all active confirmed waitlist cancelled"`
	CheckIn            string `json:"check_in" validate:"oneof=all checked_in not_checked_in"`
	Hole               string `json:"hole" validate:"max=10"`
	Sort               string `json:"sort" validate:"oneof=name email company created_at payment_status registration_status hole checked_in"`
	Order              string `json:"order" validate:"oneof=asc desc"`
}

func queryOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// parseRosterQuery reads filter and sort parameters. Missing parameters take
// the dashboard defaults.
func parseRosterQuery(r *http.Request) (roster.Filter, roster.Sort, error) {
	def := roster.DefaultFilter()
	q := rosterQuery{
		Search:             strings.TrimSpace(r.URL.Query().Get("search")),
		PaymentStatus:      queryOr(r, "payment_status", def.PaymentStatus),
		PaymentType:        queryOr(r, "payment_type", def.PaymentType),
		RegistrationStatus: queryOr(r, "registration_status", def.RegistrationStatus),
		CheckIn:            queryOr(r, "check_in", def.CheckIn),
		Hole:               queryOr(r, "hole", def.Hole),
		Sort:               queryOr(r, "sort", string(roster.DefaultSort().Key)),
		Order:              queryOr(r, "order", "asc"),
	}
	if err := utils.ValidateStruct(q); err != nil {
		return roster.Filter{}, roster.Sort{}, err
	}

	key, err := roster.ParseSortKey(q.Sort)
	if err != nil {
		return roster.Filter{}, roster.Sort{}, err
	}
	f := roster.Filter{
		Search:             q.Search,
		PaymentStatus:      q.PaymentStatus,
		PaymentType:        q.PaymentType,
		RegistrationStatus: q.RegistrationStatus,
		CheckIn:            q.CheckIn,
		Hole:               q.Hole,
	}
	return f, roster.Sort{Key: key, Desc: q.Order == "desc"}, nil
}

// respondRosterQueryError writes the response for a parseRosterQuery error.
func respondRosterQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var fe utils.FieldErrors
	if errors.As(err, &fe) {
		failedValidationResponse(w, r, fe)
		return
	}
	badRequestResponse(w, r, err)
}

// tournamentID prefers the id TournamentScope stored in the context and
// falls back to the URL parameter.
func tournamentID(r *http.Request) (int, error) {
	if id, ok := session.TournamentFromContext(r.Context()); ok {
		return id, nil
	}
	return getIDFromURL(r, "tournamentID")
}
