// Code generated by hand in the style of mockery. DO NOT EDIT lightly.
package mocks

import (
	"context"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	mock.Mock
}

func (m *ProgressRepository) FindByStudentAndLesson(ctx context.Context, db *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	args := m.Called(ctx, db, studentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LessonProgress), args.Error(1)
}

func (m *ProgressRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, studentID, lessonID uuid.UUID) (*model.LessonProgress, error) {
	args := m.Called(ctx, tx, studentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LessonProgress), args.Error(1)
}

func (m *ProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error {
	args := m.Called(ctx, tx, progress)
	return args.Error(0)
}

func (m *ProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.LessonProgress) error {
	args := m.Called(ctx, tx, progress)
	return args.Error(0)
}
