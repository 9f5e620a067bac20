// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/httpx"
	catalogdomain "github.com/ghuser/vitrina/services/catalog/domain"
	identitydomain "github.com/ghuser/vitrina/services/identity/domain"
	quotedomain "github.com/ghuser/vitrina/services/quote/domain"
	salesdomain "github.com/ghuser/vitrina/services/sales/domain"
	settingdomain "github.com/ghuser/vitrina/services/setting/domain"
)

type stockErrorBody struct {
	Error     string `json:"error"`
	Available int    `json:"available"`
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; the message
// of a 5xx response never includes err's text.
func WriteError(w http.ResponseWriter, err error) {
	var stock *salesdomain.InsufficientStockError
	if errors.As(err, &stock) {
		httpx.JSON(w, http.StatusBadRequest, stockErrorBody{
			Error:     salesdomain.ErrInsufficientStock.Error(),
			Available: stock.Available,
		})
		return
	}

	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, true))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, salesdomain.ErrInvalidInput),
		errors.Is(err, salesdomain.ErrInsufficientStock),
		errors.Is(err, catalogdomain.ErrInvalidProduct),
		errors.Is(err, identitydomain.ErrInvalidRegistration),
		errors.Is(err, quotedomain.ErrInvalidQuote),
		errors.Is(err, quotedomain.ErrInvalidStatus),
		errors.Is(err, settingdomain.ErrInvalidSetting):
		return http.StatusBadRequest // 400
	case errors.Is(err, identitydomain.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized // 401
	case errors.Is(err, salesdomain.ErrProductNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, quotedomain.ErrQuoteNotFound),
		errors.Is(err, quotedomain.ErrProductNotFound),
		errors.Is(err, quotedomain.ErrBusinessNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, identitydomain.ErrEmailTaken):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
