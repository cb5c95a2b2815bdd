// Code generated by hand in the style of mockery. DO NOT EDIT lightly.
package mocks

import (
	"context"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) FindClassIDsByStudent(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *EnrollmentRepository) FindClassIDsByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *EnrollmentRepository) FindClassSettings(ctx context.Context, db *gorm.DB, classID uuid.UUID) (*model.ClassSettings, error) {
	args := m.Called(ctx, db, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassSettings), args.Error(1)
}

func (m *EnrollmentRepository) FindClassCourse(ctx context.Context, db *gorm.DB, classID, courseID uuid.UUID) (*model.ClassCourse, error) {
	args := m.Called(ctx, db, classID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassCourse), args.Error(1)
}
