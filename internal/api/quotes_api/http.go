package quotes_api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/models"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
)

const maxBodyBytes = 1 << 20

// Routes вешает REST-ручки на роутер. Семантика та же, что у gRPC-методов.
func (a *QuotesAPI) Routes(r chi.Router) {
	r.Post("/v1/routes/calculate", a.httpCalculateRoute)
	r.Post("/v1/quotes", a.httpCreateQuote)
	r.Post("/v1/quotes/async", a.httpEnqueueQuote)
	r.Get("/v1/quotes", a.httpListQuotes)
	r.Get("/v1/quotes/{id}", a.httpGetQuote)
	r.Delete("/v1/quotes/{id}", a.httpDeleteQuote)
}

func (a *QuotesAPI) httpCalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req CalculateRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := a.CalculateRoute(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *QuotesAPI) httpCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteInput
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := a.CreateQuote(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (a *QuotesAPI) httpEnqueueQuote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteInput
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := a.EnqueueQuote(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (a *QuotesAPI) httpListQuotes(w http.ResponseWriter, r *http.Request) {
	var req ListQuotesRequest
	var err error
	if req.Limit, err = intQuery(r, "limit"); err != nil {
		writeError(w, err)
		return
	}
	if req.Offset, err = intQuery(r, "offset"); err != nil {
		writeError(w, err)
		return
	}
	resp, err := a.ListQuotes(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *QuotesAPI) httpGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := a.GetQuote(r.Context(), &QuoteIDRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (a *QuotesAPI) httpDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if _, err := a.DeleteQuote(r.Context(), &QuoteIDRequest{ID: chi.URLParam(r, "id")}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, errors.Wrap(quotes.ErrValidation, "invalid json body: "+err.Error()))
		return false
	}
	return true
}

func intQuery(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(quotes.ErrValidation, "%s must be an integer", name)
	}
	return n, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, quotes.ErrValidation), errors.Is(err, calculator.ErrInsufficientStops):
		return http.StatusBadRequest
	case errors.Is(err, calculator.ErrAddressNotFound):
		return http.StatusUnprocessableEntity
	case calculator.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		slog.Error("http internal error", "error", msg)
		msg = "internal error"
	}
	writeJSON(w, code, errorResponse{Error: msg, Kind: quotes.ErrorKind(err)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
