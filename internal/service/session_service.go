// internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go_5_typing_tutor/internal/middleware"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService は練習セッションの送信（テレメトリ集計）を提供します。
// 送信ごとに在籍チェーンを再検証し、進捗・文字統計・タイピングパターンの
// 3つの集計を1トランザクションでまとめて更新する。
//
// 既知の制約: 完了時の明示送信とページ離脱時のビーコン送信が二重に届いた
// 場合の重複排除キーは持たない。score/speed/accuracy/stars は max で飽和
// するため無害だが、time_spent/attempts と文字カウントは二重計上される。
type SessionService interface {
	Submit(ctx context.Context, studentID, lessonID uuid.UUID, req *model.SubmitSessionRequest) (*model.SubmitSessionResponse, error)
}

type sessionService struct {
	db        *gorm.DB
	accessSvc AccessService
	progRepo  repository.ProgressRepository
	statsRepo repository.StatsRepository
}

func NewSessionService(db *gorm.DB, accessSvc AccessService, progRepo repository.ProgressRepository, statsRepo repository.StatsRepository) SessionService {
	return &sessionService{
		db:        db,
		accessSvc: accessSvc,
		progRepo:  progRepo,
		statsRepo: statsRepo,
	}
}

func (s *sessionService) Submit(ctx context.Context, studentID, lessonID uuid.UUID, req *model.SubmitSessionRequest) (*model.SubmitSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("student_id", studentID, "lesson_id", lessonID)

	// 1. 認可。拒否時は一切の書き込みを行わない
	decision, err := s.accessSvc.CanAccess(ctx, studentID, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// レッスンが存在しない場合も権限なしに正規化（存在の漏洩防止）
			return nil, model.NewAppError("NOT_AUTHORIZED", "このレッスンにアクセスする権限がありません。", "", model.ErrForbidden)
		}
		return nil, err
	}
	if !decision.Allowed {
		logger.Info("Session submission denied: student not enrolled")
		return nil, model.NewAppError("NOT_AUTHORIZED", "このレッスンにアクセスする権限がありません。", "", model.ErrForbidden)
	}

	// 2-3. クランプと採点
	metrics := gradeSession(logger, req)
	now := time.Now()

	var resp *model.SubmitSessionResponse

	// 4-6. 3つの集計を1トランザクションで更新。途中で失敗した場合は
	// 全てロールバックされ、進捗だけ更新済みという状態は起こらない
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.upsertProgress(ctx, tx, studentID, lessonID, metrics, now)
		if err != nil {
			return err
		}

		lettersUpdated, err := s.mergeLetters(ctx, tx, studentID, req.LetterData, now)
		if err != nil {
			return err
		}

		patternsUpdated, err := s.mergePatterns(ctx, tx, logger, studentID, req.ErrorPatterns, metrics, now)
		if err != nil {
			return err
		}

		resp = &model.SubmitSessionResponse{
			Progress:        progress,
			LettersUpdated:  lettersUpdated,
			PatternsUpdated: patternsUpdated,
		}
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for session submission", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの保存に失敗しました。", "", err)
	}

	logger.Info("Session submitted",
		"stars", metrics.Stars,
		"completed", metrics.Completed,
		"letters_updated", resp.LettersUpdated,
		"patterns_updated", resp.PatternsUpdated,
	)
	return resp, nil
}

func (s *sessionService) upsertProgress(ctx context.Context, tx *gorm.DB, studentID, lessonID uuid.UUID, m sessionMetrics, now time.Time) (*model.LessonProgress, error) {
	progress, err := s.progRepo.FindForUpdate(ctx, tx, studentID, lessonID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
	}

	if errors.Is(err, model.ErrNotFound) {
		progress = &model.LessonProgress{
			ProgressID:   uuid.New(),
			StudentID:    studentID,
			LessonID:     lessonID,
			Score:        m.Score,
			Speed:        m.Speed,
			Accuracy:     m.Accuracy,
			Stars:        m.Stars,
			TimeSpentSec: m.TimeSpentSec,
			Attempts:     1,
			Completed:    m.Completed,
		}
		if m.Completed {
			progress.CompletedAt = &now
		}
		if createErr := s.progRepo.Create(ctx, tx, progress); createErr != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
		}
		return progress, nil
	}

	mergeLessonProgress(progress, m, now)
	if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
	}
	return progress, nil
}

func (s *sessionService) mergeLetters(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, letters []model.LetterData, now time.Time) (int, error) {
	updated := 0
	for _, data := range letters {
		stat, err := s.statsRepo.FindLetterForUpdate(ctx, tx, studentID, data.Letter)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "文字統計の確認中にエラーが発生しました。", "", err)
		}

		if errors.Is(err, model.ErrNotFound) {
			stat = &model.LetterStatistic{
				StatID:       uuid.New(),
				StudentID:    studentID,
				Letter:       data.Letter,
				CommonErrors: make(map[string]int),
			}
			mergeLetterStatistic(stat, data, now)
			if createErr := s.statsRepo.CreateLetter(ctx, tx, stat); createErr != nil {
				return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "文字統計の作成に失敗しました。", "", createErr)
			}
		} else {
			mergeLetterStatistic(stat, data, now)
			if updateErr := s.statsRepo.UpdateLetter(ctx, tx, stat); updateErr != nil {
				return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "文字統計の更新に失敗しました。", "", updateErr)
			}
		}
		updated++
	}
	return updated, nil
}

func (s *sessionService) mergePatterns(ctx context.Context, tx *gorm.DB, logger *slog.Logger, studentID uuid.UUID, patterns map[string]model.ErrorPatternData, m sessionMetrics, now time.Time) (int, error) {
	updated := 0
	for key, data := range patterns {
		fromChar, toChar, ok := splitPatternKey(key)
		if !ok {
			logger.Warn("Skipping malformed error pattern key", "key", key)
			continue
		}

		pattern, err := s.statsRepo.FindPatternForUpdate(ctx, tx, studentID, fromChar, toChar)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "タイピングパターンの確認中にエラーが発生しました。", "", err)
		}

		if errors.Is(err, model.ErrNotFound) {
			pattern = &model.TypingPattern{
				PatternID: uuid.New(),
				StudentID: studentID,
				FromChar:  fromChar,
				ToChar:    toChar,
			}
			mergeTypingPattern(pattern, data.Count, m, now)
			if createErr := s.statsRepo.CreatePattern(ctx, tx, pattern); createErr != nil {
				return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "タイピングパターンの作成に失敗しました。", "", createErr)
			}
		} else {
			mergeTypingPattern(pattern, data.Count, m, now)
			if updateErr := s.statsRepo.UpdatePattern(ctx, tx, pattern); updateErr != nil {
				return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "タイピングパターンの更新に失敗しました。", "", updateErr)
			}
		}
		updated++
	}
	return updated, nil
}
