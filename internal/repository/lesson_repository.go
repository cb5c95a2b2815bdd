// internal/repository/lesson_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonRepository はレッスン→セクション→コースの参照チェーンを提供します
type LessonRepository interface {
	FindLessonByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error)
	FindSectionByID(ctx context.Context, db *gorm.DB, sectionID uuid.UUID) (*model.Section, error)
	FindCourseByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error)
}

type gormLessonRepository struct{}

func NewGormLessonRepository() LessonRepository {
	return &gormLessonRepository{}
}

func (r *gormLessonRepository) FindLessonByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error) {
	var lesson model.Lesson
	result := db.WithContext(ctx).Where("lesson_id = ?", lessonID).First(&lesson)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &lesson, nil
}

func (r *gormLessonRepository) FindSectionByID(ctx context.Context, db *gorm.DB, sectionID uuid.UUID) (*model.Section, error) {
	var section model.Section
	result := db.WithContext(ctx).Where("section_id = ?", sectionID).First(&section)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &section, nil
}

func (r *gormLessonRepository) FindCourseByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	var course model.Course
	result := db.WithContext(ctx).Where("course_id = ?", courseID).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &course, nil
}
