// internal/handlers/session_handler.go
package handlers

import (
	"net/http"

	"go_5_typing_tutor/internal/middleware"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/service"
	"go_5_typing_tutor/internal/webutil"
)

// SessionHandler は練習セッションの送信を提供します
type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	return &SessionHandler{service: s}
}

// SubmitSession は POST /api/v1/lessons/{lesson_id}/sessions
func (h *SessionHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	identity, err := requireStudent(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	lessonID, err := lessonIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitSessionRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Submit(r.Context(), identity.UserID, lessonID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
