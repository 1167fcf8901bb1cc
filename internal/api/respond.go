package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/store"
)

// errorEnvelope is the JSON body for every error response.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to a status code and JSON envelope using its
// error code. Unknown errors become 500 INTERNAL_ERROR without leaking the
// underlying message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if stderrors.Is(err, store.ErrNotFound) {
		code = errors.ErrCodeHabitNotFound
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var env errorEnvelope
	env.Error.Code = string(code)
	env.Error.Message = errors.UserMessage(err)
	if code == errors.ErrCodeInternal || code == errors.ErrCodeStore {
		// Internal details stay in the logs.
		env.Error.Message = "internal error"
	}

	writeJSON(w, statusFor(code), env)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidCount,
		errors.ErrCodeInvalidArea,
		errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidName,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeHabitNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
