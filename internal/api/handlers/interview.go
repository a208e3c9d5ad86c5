package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/service"
)

type InterviewHandler struct {
	svc *service.InterviewService
}

func NewInterviewHandler(svc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type utteranceRequest struct {
	Text string `json:"text"`
}

type answerRequest struct {
	Symptom    string             `json:"symptom"`
	Presence   string             `json:"presence"`
	Qualifiers *domain.Qualifiers `json:"qualifiers,omitempty"`
}

type cooccurringResponse struct {
	Symptom string   `json:"symptom"`
	Related []string `json:"related"`
}

// Utterance feeds a free-text patient message into the session.
// POST /v1/sessions/{id}/utterance
func (h *InterviewHandler) Utterance(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req utteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.svc.HandleUtterance(r.Context(), id, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process utterance")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Answer records a structured symptom answer.
// POST /v1/sessions/{id}/answers
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom is required")
		return
	}
	if !domain.ValidPresence(req.Presence) {
		writeError(w, http.StatusBadRequest, "presence must be one of: present, absent, uncertain")
		return
	}

	result, err := h.svc.HandleAnswer(r.Context(), id, req.Symptom, domain.Presence(req.Presence), req.Qualifiers)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// NextQuestion plans and phrases the next question without intake.
// POST /v1/sessions/{id}/question
func (h *InterviewHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	q, err := h.svc.NextQuestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to plan question")
		return
	}
	if q == nil {
		// A normal terminal-ish state, not an error.
		writeJSON(w, http.StatusOK, map[string]any{"question": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": q})
}

// Cooccurring suggests symptoms related to a phrase. Read-only.
// GET /v1/sessions/{id}/cooccurring?symptom=...&limit=...
func (h *InterviewHandler) Cooccurring(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	symptom := r.URL.Query().Get("symptom")
	if symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	related, err := h.svc.Cooccurring(id, symptom, limit)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to look up related symptoms")
		return
	}
	writeJSON(w, http.StatusOK, cooccurringResponse{Symptom: symptom, Related: related})
}
