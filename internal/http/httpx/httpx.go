// Package httpx holds the request decoding and response helpers shared by the
// API handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a request field to the rule it broke.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "invalid request"
}

type errorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into dst and validates its struct tags.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}

	return Validate(dst)
}

// Validate checks dst against its validate tags and reports failures per field.
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}

	return fields
}

// BadRequest reports a decode or validation failure.
func BadRequest(w http.ResponseWriter, err error) {
	var fields FieldErrors
	if errors.As(err, &fields) {
		JSON(w, http.StatusBadRequest, errorResponse{Error: fields.Error(), Fields: fields})
		return
	}

	JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
