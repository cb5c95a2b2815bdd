// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository はレッスン進捗の参照・作成・更新を提供します。
// マージはサービス層がトランザクション内で行う前提で、
// FindForUpdate は行ロック付きで読み取る。
type ProgressRepository interface {
	FindByStudentAndLesson(ctx context.Context, db *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error)
	// FindForUpdate は FOR UPDATE で行ロックを取得して読み取ります（トランザクション内で使用）
	FindForUpdate(ctx context.Context, tx *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error)
	Create(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error
	Update(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindByStudentAndLesson(ctx context.Context, db *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	result := db.WithContext(ctx).Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	result := lockForUpdate(tx.WithContext(ctx)).
		Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error {
	// UUIDはService層で設定済み想定
	result := tx.WithContext(ctx).Create(progress)
	return result.Error
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error {
	result := tx.WithContext(ctx).Save(progress)
	return result.Error
}
