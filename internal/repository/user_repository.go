// internal/repository/user_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository はユーザーとアクセシビリティプロファイルの参照を提供します
type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	// FindAccessibilityModes は生徒のモードを position 昇順（＝適用順）で返します
	FindAccessibilityModes(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.AccessibilityMode, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) FindAccessibilityModes(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.AccessibilityMode, error) {
	var rows []model.UserAccessibilityMode
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	modes := make([]model.AccessibilityMode, 0, len(rows))
	for _, row := range rows {
		modes = append(modes, row.Mode)
	}
	return modes, nil
}
