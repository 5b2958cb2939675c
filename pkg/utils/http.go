package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func DecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// WriteAttachment streams an in-memory artifact as a file download.
func WriteAttachment(w http.ResponseWriter, data []byte, contentType, filename string) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

// ValidationErrorResponse contains field-specific validation messages
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func WriteValidationError(w http.ResponseWriter, err error) error {
	res := ValidationErrorResponse{
		Message: "invalid request",
		Fields:  make(map[string]string),
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, err := range ve {
			field := err.Field()
			res.Fields[field] = err.Tag()
		}
	}

	return WriteJSON(w, res, http.StatusBadRequest)
}

// ErrorResponse describes a standard error response
type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, ErrorResponse{Message: message}, code)
}

// NotFoundResponse is the structured 404 for invoice lookups: it reports which
// lookup strategies were attempted, never any stored data.
type NotFoundResponse struct {
	Message string   `json:"message"`
	Tried   []string `json:"tried"`
}

func WriteNotFound(w http.ResponseWriter, message string, tried []string) error {
	return WriteJSON(w, NotFoundResponse{Message: message, Tried: tried}, http.StatusNotFound)
}
