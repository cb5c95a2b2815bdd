// internal/handlers/lesson_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_5_typing_tutor/internal/middleware"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/service"
	"go_5_typing_tutor/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// LessonHandler はレッスン挑戦前のアクセス確認と設定解決を提供します
type LessonHandler struct {
	accessSvc service.AccessService
	configSvc service.ConfigService
}

func NewLessonHandler(accessSvc service.AccessService, configSvc service.ConfigService) *LessonHandler {
	return &LessonHandler{
		accessSvc: accessSvc,
		configSvc: configSvc,
	}
}

// requireStudent は認証済みユーザーが生徒であることを確認します。
// レッスン挑戦系のエンドポイントは生徒のみが対象。
func requireStudent(r *http.Request) (model.Identity, error) {
	identity, err := middleware.GetIdentityFromContext(r.Context())
	if err != nil {
		return model.Identity{}, err
	}
	if identity.Role != model.RoleStudent {
		return model.Identity{}, model.NewAppError("NOT_AUTHORIZED", "このAPIは生徒のみ利用できます。", "", model.ErrForbidden)
	}
	return identity, nil
}

func lessonIDFromURL(r *http.Request) (uuid.UUID, error) {
	lessonID, err := uuid.Parse(chi.URLParam(r, "lesson_id"))
	if err != nil {
		return uuid.Nil, model.NewAppError("VALIDATION_ERROR", "レッスンIDの形式が正しくありません。", "lesson_id", model.ErrInvalidInput)
	}
	return lessonID, nil
}

// CheckAccess は GET /api/v1/lessons/{lesson_id}/access
// 在籍していない場合も、レッスンが存在しない場合も allowed=false を返す
// （404を返すとレッスンの存在が漏れるため）。
func (h *LessonHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
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

	decision, err := h.accessSvc.CanAccess(r.Context(), identity.UserID, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			decision = &model.AccessDecision{Allowed: false, ClassIDs: []uuid.UUID{}}
		} else {
			webutil.HandleError(w, logger, err)
			return
		}
	}
	if decision.ClassIDs == nil {
		decision.ClassIDs = []uuid.UUID{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, decision)
}

// ResolveConfig は GET /api/v1/lessons/{lesson_id}/config
func (h *LessonHandler) ResolveConfig(w http.ResponseWriter, r *http.Request) {
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

	cfg, err := h.configSvc.ResolveForLesson(r.Context(), identity.UserID, lessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, cfg)
}
