// Package v1 implements the v1 HTTP API.
package v1

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no account matching your query"`
}

func newHTTPError(err error) httpError {
	return httpError{Error: err.Error()}
}

// status returns the HTTP status for an error from the ledger or the store.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalid),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidUUID):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
