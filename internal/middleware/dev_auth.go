package middleware

import (
	"context"
	"net/http"

	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/webutil"

	"github.com/google/uuid"
)

// DevIdentityMiddleware はローカル開発・テスト用の簡易認証ミドルウェアです。
// X-User-ID / X-User-Role ヘッダーをそのまま Identity として扱う。
// 本番では必ず JWTAuthMiddleware を使うこと。
func DevIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーの形式が正しくありません。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		role := model.Role(r.Header.Get("X-User-Role"))
		if role == "" {
			role = model.RoleStudent
		}

		identity := model.Identity{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), model.IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
