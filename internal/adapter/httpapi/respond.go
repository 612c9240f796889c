package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// selectedUser reads the optional ?user= scope parameter. Absent or "all"
// means the "all users" sentinel (nil). An unparseable value selects the
// nil UUID, which owns nothing, rather than silently widening to all.
func selectedUser(r *http.Request) *uuid.UUID {
	raw := r.URL.Query().Get("user")
	if raw == "" || raw == "all" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		id = uuid.Nil
	}
	return &id
}
