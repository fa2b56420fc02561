package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"syndl/internal/dto/request"
	"syndl/internal/usecase"
	"syndl/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PlayerHandler struct {
	service usecase.GateService
	log     *zap.Logger
}

func NewPlayerHandler(service usecase.GateService, log *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		service: service,
		log:     log.With(zap.String("handler", "player")),
	}
}

// CreateSession handles POST /api/player/{movieId}/sessions. The unlocked=true
// query parameter is the locker's returning redirect: it asserts the unlock
// and the session opens already unlocked.
func (h *PlayerHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	unlockAsserted := r.URL.Query().Get("unlocked") == "true"

	gate, err := h.service.CreateSession(r.Context(), movieID, unlockAsserted)
	if err != nil {
		h.handleServiceError(w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "Session created successfully", gate.Describe())
}

// GetSession handles GET /api/player/sessions/{sessionId}.
func (h *PlayerHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.ResponseSuccess(w, "Session retrieved successfully", gate.Describe())
}

// StartPreview handles POST /api/player/sessions/{sessionId}/start.
func (h *PlayerHandler) StartPreview(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := gate.Start(); err != nil {
		h.handleServiceError(w, err, "start preview")
		return
	}

	utils.ResponseSuccess(w, "Preview started", gate.Describe())
}

// ReportPosition handles POST /api/player/sessions/{sessionId}/position.
func (h *PlayerHandler) ReportPosition(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	gate.Position(req.Seconds)
	utils.ResponseSuccess(w, "Position recorded", gate.Describe())
}

// PreviewEnded handles POST /api/player/sessions/{sessionId}/preview-ended.
func (h *PlayerHandler) PreviewEnded(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	gate.PreviewEnded()
	utils.ResponseSuccess(w, "Preview ended", gate.Describe())
}

// Seek handles POST /api/player/sessions/{sessionId}/seek. The response carries
// the effective position, clamped while content is gated.
func (h *PlayerHandler) Seek(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.SeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	gate.Seek(req.Seconds)
	utils.ResponseSuccess(w, "Seek applied", gate.Describe())
}

// Unlock handles POST /api/player/sessions/{sessionId}/unlock. The response's
// lockerUrl is where the consumer completes verification while the gate polls.
func (h *PlayerHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := gate.Unlock(); err != nil {
		h.handleServiceError(w, err, "unlock")
		return
	}

	utils.ResponseSuccess(w, "Verification started", gate.Describe())
}

// Retry handles POST /api/player/sessions/{sessionId}/retry.
func (h *PlayerHandler) Retry(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := gate.Retry(); err != nil {
		h.handleServiceError(w, err, "retry verification")
		return
	}

	utils.ResponseSuccess(w, "Verification restarted", gate.Describe())
}

// CancelRetry handles POST /api/player/sessions/{sessionId}/cancel.
func (h *PlayerHandler) CancelRetry(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := gate.CancelRetry(); err != nil {
		h.handleServiceError(w, err, "cancel retry")
		return
	}

	utils.ResponseSuccess(w, "Verification cancelled", gate.Describe())
}

// Callback handles the locker's redirect back to us, registered for both GET
// and POST on /api/player/sessions/{sessionId}/callback. It only records the
// assertion; the poll loop picks it up on its next check.
func (h *PlayerHandler) Callback(w http.ResponseWriter, r *http.Request) {
	gate, ok := h.session(w, r)
	if !ok {
		return
	}

	gate.Callback()
	utils.ResponseSuccess(w, "Unlock assertion recorded", gate.Describe())
}

// CloseSession handles DELETE /api/player/sessions/{sessionId}.
func (h *PlayerHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	h.service.CloseSession(sessionID)
	utils.ResponseSuccess(w, "Session closed", nil)
}

func (h *PlayerHandler) session(w http.ResponseWriter, r *http.Request) (*usecase.Gate, bool) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return nil, false
	}

	gate, ok := h.service.Session(sessionID)
	if !ok {
		utils.ResponseNotFound(w, "session not found: "+sessionID)
		return nil, false
	}
	return gate, true
}

// handleServiceError maps service errors for player operations.
func (h *PlayerHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid transition"):
		h.log.Warn(operation+" rejected by gate state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
