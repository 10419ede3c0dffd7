package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

const maxJSONBodyBytes = 1 << 20

type contextKey string

const contextUserKey contextKey = "user"

// MessageResponse is the body of every error and most acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

var errInvalidID = errors.New("invalid id")

func withUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok && user.ID > 0
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeFailure reports validation problems as a 400 with field details.
// Anything else is logged and hidden behind a 500 carrying message.
func writeFailure(w http.ResponseWriter, err error, message string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Message: "Validation error",
			Errors:  verr.Fields,
		})
		return
	}
	log.Printf("%s: %v", message, err)
	writeError(w, http.StatusInternalServerError, message)
}

// decodeJSON reads a size-limited JSON body into dst, writing a 400 and
// returning false when it cannot be parsed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// parseID reads a base-10 integer path parameter. Trailing garbage such as
// "12abc" is rejected.
func parseID(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
