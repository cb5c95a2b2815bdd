// Code generated by hand in the style of mockery. DO NOT EDIT lightly.
package mocks

import (
	"context"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type LessonRepository struct {
	mock.Mock
}

func (m *LessonRepository) FindLessonByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error) {
	args := m.Called(ctx, db, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lesson), args.Error(1)
}

func (m *LessonRepository) FindSectionByID(ctx context.Context, db *gorm.DB, sectionID uuid.UUID) (*model.Section, error) {
	args := m.Called(ctx, db, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Section), args.Error(1)
}

func (m *LessonRepository) FindCourseByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, db, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}
