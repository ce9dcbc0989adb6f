package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yusufkecer/eatsmart-backend/internal/domain"
	"github.com/yusufkecer/eatsmart-backend/internal/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON encodes v before touching the response, so a value that cannot
// be encoded becomes a 500 instead of a status with an empty body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ownedUser resolves {id} to a profile of the calling account. It writes the
// error response itself and returns nil when the request cannot continue.
func ownedUser(users userStore, w http.ResponseWriter, r *http.Request) *domain.User {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return nil
	}

	user, err := users.GetForAccount(id, accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return nil
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return nil
	}
	return user
}
