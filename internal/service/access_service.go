// internal/service/access_service.go
package service

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"go_5_typing_tutor/internal/middleware"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService は在籍チェーン検証（レッスン→セクション→コース→
// クラス割当→クラス所属）を提供します。副作用のない読み取り専用の述語で、
// 何度呼んでも安全。送信のたびに再検証される（キャッシュしない）。
type AccessService interface {
	CanAccess(ctx context.Context, studentID, lessonID uuid.UUID) (*model.AccessDecision, error)
}

type accessService struct {
	db         *gorm.DB
	lessonRepo repository.LessonRepository
	enrollRepo repository.EnrollmentRepository
}

func NewAccessService(db *gorm.DB, lessonRepo repository.LessonRepository, enrollRepo repository.EnrollmentRepository) AccessService {
	return &accessService{
		db:         db,
		lessonRepo: lessonRepo,
		enrollRepo: enrollRepo,
	}
}

// CanAccess は生徒の所属クラスとコースの割当クラスの積集合が空でないとき
// アクセスを許可します。積集合はID昇順でソートして返し、複数クラスに
// 在籍している場合も設定解決が決定的になるようにする。
// チェーンの途中の行が存在しない場合は model.ErrNotFound を返す。
// 呼び出し側はこれを404ではなく認可エラーとして扱うこと（存在の漏洩防止）。
func (s *accessService) CanAccess(ctx context.Context, studentID, lessonID uuid.UUID) (*model.AccessDecision, error) {
	logger := middleware.GetLogger(ctx).With("student_id", studentID, "lesson_id", lessonID)

	lesson, err := s.lessonRepo.FindLessonByID(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find lesson", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの取得に失敗しました。", "", err)
	}

	section, err := s.lessonRepo.FindSectionByID(ctx, s.db, lesson.SectionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Lesson references missing section", "section_id", lesson.SectionID)
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find section", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セクションの取得に失敗しました。", "", err)
	}

	course, err := s.lessonRepo.FindCourseByID(ctx, s.db, section.CourseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Section references missing course", "course_id", section.CourseID)
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find course", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの取得に失敗しました。", "", err)
	}

	studentClasses, err := s.enrollRepo.FindClassIDsByStudent(ctx, s.db, studentID)
	if err != nil {
		logger.Error("Failed to find student classes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クラス所属の取得に失敗しました。", "", err)
	}

	courseClasses, err := s.enrollRepo.FindClassIDsByCourse(ctx, s.db, course.CourseID)
	if err != nil {
		logger.Error("Failed to find course classes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コース割当の取得に失敗しました。", "", err)
	}

	shared := intersectClassIDs(studentClasses, courseClasses)

	decision := &model.AccessDecision{
		Allowed:  len(shared) > 0,
		ClassIDs: shared,
		CourseID: course.CourseID,
	}
	logger.Debug("Access decision computed", "allowed", decision.Allowed, "class_count", len(shared))
	return decision, nil
}

// intersectClassIDs は2つのクラスID集合の積集合をID昇順で返します
func intersectClassIDs(a, b []uuid.UUID) []uuid.UUID {
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	shared := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, id := range b {
		if _, ok := set[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		shared = append(shared, id)
	}

	sort.Slice(shared, func(i, j int) bool {
		return bytes.Compare(shared[i][:], shared[j][:]) < 0
	})
	return shared
}
