package handlers

import (
	"net/http"

	"github.com/George-coder-ai/MarkIt-Up1/internal/store"
)

const serviceName = "MarkItUp AI Backend"

// HealthHandler exposes liveness and backend diagnostics.
type HealthHandler struct {
	store store.UserStore
}

func NewHealthHandler(s store.UserStore) *HealthHandler {
	return &HealthHandler{store: s}
}

// Health reports process liveness.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// DBCheck pings the active store and reports which backend is in use.
func (h *HealthHandler) DBCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "disconnected",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "connected",
		"database": h.store.Name(),
	})
}

// DebugUser is a redacted view of a stored record for DebugUsers.
type DebugUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PasswordRef string `json:"password_ref"`
}

// DebugUsers lists stored users when the in-memory fallback is active.
// Password references are truncated so hashes never leave the process
// whole.
func (h *HealthHandler) DebugUsers(w http.ResponseWriter, r *http.Request) {
	memory, ok := h.store.(*store.MemoryStore)
	if !ok {
		writeError(w, http.StatusBadRequest, "Not using in-memory DB")
		return
	}

	stored := memory.Users()
	users := make([]DebugUser, 0, len(stored))
	for _, user := range stored {
		ref := user.PasswordRef
		if len(ref) > 20 {
			ref = ref[:20] + "..."
		}
		users = append(users, DebugUser{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			PasswordRef: ref,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]DebugUser{"users": users})
}
