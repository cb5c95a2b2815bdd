// internal/repository/enrollment_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentRepository は在籍・割当エッジとクラス系設定の参照を提供します
type EnrollmentRepository interface {
	// FindClassIDsByStudent は生徒が所属する全クラスのIDを返します
	FindClassIDsByStudent(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error)
	// FindClassIDsByCourse はコースが割り当てられている全クラスのIDを返します
	FindClassIDsByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error)
	// FindClassSettings はクラス設定を返します。未設定なら ErrNotFound
	FindClassSettings(ctx context.Context, db *gorm.DB, classID uuid.UUID) (*model.ClassSettings, error)
	// FindClassCourse は (class, course) ペアの割当行（設定込み）を返します
	FindClassCourse(ctx context.Context, db *gorm.DB, classID, courseID uuid.UUID) (*model.ClassCourse, error)
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) FindClassIDsByStudent(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	var classIDs []uuid.UUID
	result := db.WithContext(ctx).
		Model(&model.ClassStudent{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &classIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return classIDs, nil
}

func (r *gormEnrollmentRepository) FindClassIDsByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error) {
	var classIDs []uuid.UUID
	result := db.WithContext(ctx).
		Model(&model.ClassCourse{}).
		Where("course_id = ?", courseID).
		Pluck("class_id", &classIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return classIDs, nil
}

func (r *gormEnrollmentRepository) FindClassSettings(ctx context.Context, db *gorm.DB, classID uuid.UUID) (*model.ClassSettings, error) {
	var settings model.ClassSettings
	result := db.WithContext(ctx).Where("class_id = ?", classID).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &settings, nil
}

func (r *gormEnrollmentRepository) FindClassCourse(ctx context.Context, db *gorm.DB, classID, courseID uuid.UUID) (*model.ClassCourse, error) {
	var cc model.ClassCourse
	result := db.WithContext(ctx).Where("class_id = ? AND course_id = ?", classID, courseID).First(&cc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &cc, nil
}
