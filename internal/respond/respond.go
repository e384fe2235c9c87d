package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/utils"
)

const internalMessage = "An internal server error occurred."

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[respond] encode error: %v", err)
	}
}

// Error classifies err and writes the matching status and body. Field-level
// validation failures are returned as a map; server faults are logged and
// masked.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		JSON(w, status, map[string]any{"error": verr.Fields})
		return
	}

	if status >= http.StatusInternalServerError {
		subject, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			subject = "anonymous"
		}
		log.Printf("[http] %s %s failed for %s: %v", r.Method, r.URL.Path, subject, err)
		JSON(w, status, map[string]string{"error": internalMessage})
		return
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}

// Message writes a plain error message with an explicit status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON reads the request body into dst. A malformed body is reported as
// a validation error on the "body" field.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		verr := &apperr.ValidationError{}
		verr.Add("body", "Invalid request body")
		return verr
	}
	return nil
}
