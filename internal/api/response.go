package api

import (
	"errors"
	"net/http"

	"portfoliotracker/pkg/portfolio"
)

// writeCoreError maps a core error onto the wire. Structured errors carry
// their own message and a status derived from the error code; anything else
// is a plain 500.
func writeCoreError(w http.ResponseWriter, err error) {
	var coreErr *portfolio.Error
	if errors.As(err, &coreErr) {
		writeError(w, httpStatusForErrorCode(coreErr.Code), coreErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func httpStatusForErrorCode(code portfolio.ErrorCode) int {
	switch code {
	case portfolio.ErrCodeInvalidInput, portfolio.ErrCodeValidation:
		return http.StatusBadRequest
	case portfolio.ErrCodeNotFound:
		return http.StatusNotFound
	case portfolio.ErrCodeDatabase, portfolio.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
