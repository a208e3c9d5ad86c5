package handlers

import (
	"errors"
	"net/http"

	"github.com/preclinic/triage/internal/service"
)

type SessionHandler struct {
	sessions   *service.SessionService
	interviews *service.InterviewService
}

func NewSessionHandler(sessions *service.SessionService, interviews *service.InterviewService) *SessionHandler {
	return &SessionHandler{sessions: sessions, interviews: interviews}
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Degraded  bool   `json:"degraded"`
}

// Create starts a new triage session.
// POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID.String(),
		Degraded:  h.sessions.Degraded(),
	})
}

// Snapshot returns the immutable engine state for a session.
// GET /v1/sessions/{id}
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.interviews.Snapshot(id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to snapshot session")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Restart clears all session state and hands out a fresh engine.
// POST /v1/sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Restart(id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to restart session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restarted"})
}

// Delete removes a session.
// DELETE /v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
