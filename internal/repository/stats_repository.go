// internal/repository/stats_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsRepository は文字別統計とタイピングパターンの参照・作成・更新を提供します
type StatsRepository interface {
	FindLetterForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, letter string) (*model.LetterStatistic, error)
	CreateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error
	UpdateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error

	FindPatternForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, fromChar, toChar string) (*model.TypingPattern, error)
	CreatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error
	UpdatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error
}

type gormStatsRepository struct{}

func NewGormStatsRepository() StatsRepository {
	return &gormStatsRepository{}
}

func (r *gormStatsRepository) FindLetterForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, letter string) (*model.LetterStatistic, error) {
	var stat model.LetterStatistic
	result := lockForUpdate(tx.WithContext(ctx)).
		Where("student_id = ? AND letter = ?", studentID, letter).
		First(&stat)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &stat, nil
}

func (r *gormStatsRepository) CreateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error {
	result := tx.WithContext(ctx).Create(stat)
	return result.Error
}

func (r *gormStatsRepository) UpdateLetter(ctx context.Context, tx *gorm.DB, stat *model.LetterStatistic) error {
	result := tx.WithContext(ctx).Save(stat)
	return result.Error
}

func (r *gormStatsRepository) FindPatternForUpdate(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, fromChar, toChar string) (*model.TypingPattern, error) {
	var pattern model.TypingPattern
	result := lockForUpdate(tx.WithContext(ctx)).
		Where("student_id = ? AND from_char = ? AND to_char = ?", studentID, fromChar, toChar).
		First(&pattern)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &pattern, nil
}

func (r *gormStatsRepository) CreatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error {
	result := tx.WithContext(ctx).Create(pattern)
	return result.Error
}

func (r *gormStatsRepository) UpdatePattern(ctx context.Context, tx *gorm.DB, pattern *model.TypingPattern) error {
	result := tx.WithContext(ctx).Save(pattern)
	return result.Error
}
