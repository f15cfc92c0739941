package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"jethabot/config"
	"jethabot/model"
)

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

type turnResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Failed    bool      `json:"failed,omitempty"`
}

type sessionResponse struct {
	ID         string         `json:"id"`
	Credential string         `json:"credential"`
	Awaiting   bool           `json:"awaiting"`
	Generation uint64         `json:"generation"`
	Transcript []turnResponse `json:"transcript"`
}

type credentialRequest struct {
	Key string `json:"key"`
}

type credentialResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Reply   string          `json:"reply"`
	Session sessionResponse `json:"session"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.Debugf("[Server] Failed to encode response: %v", err)
	}
}

func errorResp(code, message string, r *http.Request) errorResponse {
	return errorResponse{
		Error: apiError{
			Code:      code,
			Message:   message,
			RequestID: chimiddleware.GetReqID(r.Context()),
		},
	}
}

func toSessionResponse(s *model.Session) sessionResponse {
	snap := s.Snapshot()
	turns := make([]turnResponse, len(snap.Display))
	for i, t := range snap.Display {
		turns[i] = turnResponse{
			Role:      string(t.Role),
			Content:   t.Content,
			Timestamp: t.Timestamp,
			Failed:    t.Failed,
		}
	}
	return sessionResponse{
		ID:         snap.ID,
		Credential: s.Gate().Status().String(),
		Awaiting:   snap.Awaiting,
		Generation: snap.Generation,
		Transcript: turns,
	}
}

// lookup resolves the {id} URL parameter or writes a 404
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	id := chi.URLParam(r, "id")
	e, ok := h.store.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
	}
	return e, ok
}

// allow spends one rate-limit token or writes a 429
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, e *entry) bool {
	if e.limiter.Allow() {
		return true
	}
	config.Debugf("[Server] Session %s rate limited", e.session.ID)
	writeJSON(w, http.StatusTooManyRequests, errorResp("RATE_LIMITED", "Too many requests. Please try again later.", r))
	return false
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.store.Len(),
	})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	e := h.store.create()
	writeJSON(w, http.StatusCreated, toSessionResponse(e.session))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(e.session))
}

// SetCredential probes the key and commits it when the probe succeeds
func (h *Handler) SetCredential(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if !h.allow(w, r, e) {
		return
	}

	gate := e.session.Gate()
	res := gate.Probe(r.Context(), req.Key)
	resp := credentialResponse{Valid: res.Valid, Message: res.Message, Reason: res.Reason()}

	if !res.Valid {
		resp.Kind = res.Kind.String()
		status := http.StatusUnprocessableEntity
		if res.Kind == model.KindProviderTransport {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, resp)
		return
	}

	if err := gate.SetValidated(req.Key, res); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", err.Error(), r))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ResetCredential drops the key and clears the chat
func (h *Handler) ResetCredential(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	e.session.Gate().Reset()
	e.session.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if e.session.Gate().Status() != model.Validated {
		writeJSON(w, http.StatusForbidden, errorResp("NOT_VALIDATED", model.ErrNotValidated.Error(), r))
		return
	}

	if !h.allow(w, r, e) {
		return
	}

	reply, err := e.session.TrySubmit(r.Context(), req.Text)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Reply: reply, Session: toSessionResponse(e.session)})

	case errors.Is(err, model.ErrEmptyMessage):
		w.WriteHeader(http.StatusNoContent)

	case errors.Is(err, model.ErrNotValidated):
		writeJSON(w, http.StatusForbidden, errorResp("NOT_VALIDATED", err.Error(), r))

	case errors.Is(err, model.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResp("BUSY", err.Error(), r))

	case errors.Is(err, model.ErrStale):
		writeJSON(w, http.StatusConflict, errorResp("CLEARED", err.Error(), r))

	default:
		perr := model.AsProviderError(err)
		status := http.StatusBadGateway
		switch perr.Kind {
		case model.KindCredentialInvalid:
			status = http.StatusUnauthorized
		case model.KindCredentialNoQuota:
			status = http.StatusPaymentRequired
		}
		writeJSON(w, status, errorResp(strings.ToUpper(perr.Kind.String()), perr.Detail, r))
	}
}

func (h *Handler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	e.session.Clear()
	w.WriteHeader(http.StatusNoContent)
}
