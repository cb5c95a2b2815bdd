// internal/service/access_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// テストで順序を確認しやすいよう、バイト列の大小が既知のIDを使う
var (
	classID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	classID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	classID3 = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

func newAccessFixture(t *testing.T) (uuid.UUID, *model.Lesson, *model.Section, *model.Course) {
	t.Helper()
	courseID := uuid.New()
	sectionID := uuid.New()
	lessonID := uuid.New()
	lesson := &model.Lesson{LessonID: lessonID, SectionID: sectionID}
	section := &model.Section{SectionID: sectionID, CourseID: courseID}
	course := &model.Course{CourseID: courseID}
	return lessonID, lesson, section, course
}

func TestAccessService_CanAccess_正常系_共有クラスがあれば許可(t *testing.T) {
	lessonID, lesson, section, course := newAccessFixture(t)
	studentID := uuid.New()

	lessonRepo := new(mocks.LessonRepository)
	enrollRepo := new(mocks.EnrollmentRepository)
	lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(lesson, nil)
	lessonRepo.On("FindSectionByID", mock.Anything, mock.Anything, lesson.SectionID).Return(section, nil)
	lessonRepo.On("FindCourseByID", mock.Anything, mock.Anything, section.CourseID).Return(course, nil)
	// 在籍と割当が順不同でも、積集合はID昇順で返ること
	enrollRepo.On("FindClassIDsByStudent", mock.Anything, mock.Anything, studentID).Return([]uuid.UUID{classID3, classID1, classID2}, nil)
	enrollRepo.On("FindClassIDsByCourse", mock.Anything, mock.Anything, course.CourseID).Return([]uuid.UUID{classID3, classID1}, nil)

	svc := NewAccessService(nil, lessonRepo, enrollRepo)
	decision, err := svc.CanAccess(context.Background(), studentID, lessonID)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, []uuid.UUID{classID1, classID3}, decision.ClassIDs)
	assert.Equal(t, course.CourseID, decision.CourseID)
	lessonRepo.AssertExpectations(t)
	enrollRepo.AssertExpectations(t)
}

func TestAccessService_CanAccess_積集合が空なら拒否(t *testing.T) {
	lessonID, lesson, section, course := newAccessFixture(t)
	studentID := uuid.New()

	lessonRepo := new(mocks.LessonRepository)
	enrollRepo := new(mocks.EnrollmentRepository)
	lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(lesson, nil)
	lessonRepo.On("FindSectionByID", mock.Anything, mock.Anything, lesson.SectionID).Return(section, nil)
	lessonRepo.On("FindCourseByID", mock.Anything, mock.Anything, section.CourseID).Return(course, nil)
	enrollRepo.On("FindClassIDsByStudent", mock.Anything, mock.Anything, studentID).Return([]uuid.UUID{classID1}, nil)
	enrollRepo.On("FindClassIDsByCourse", mock.Anything, mock.Anything, course.CourseID).Return([]uuid.UUID{classID2}, nil)

	svc := NewAccessService(nil, lessonRepo, enrollRepo)
	decision, err := svc.CanAccess(context.Background(), studentID, lessonID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Empty(t, decision.ClassIDs)
}

func TestAccessService_CanAccess_レッスンが存在しない(t *testing.T) {
	lessonID := uuid.New()

	lessonRepo := new(mocks.LessonRepository)
	enrollRepo := new(mocks.EnrollmentRepository)
	lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(nil, model.ErrNotFound)

	svc := NewAccessService(nil, lessonRepo, enrollRepo)
	decision, err := svc.CanAccess(context.Background(), uuid.New(), lessonID)

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, model.ErrNotFound)
	// チェーンの先は辿らないこと
	lessonRepo.AssertNotCalled(t, "FindSectionByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccessService_CanAccess_チェーンの途中が欠けている(t *testing.T) {
	lessonID, lesson, section, _ := newAccessFixture(t)

	t.Run("セクションが無い", func(t *testing.T) {
		lessonRepo := new(mocks.LessonRepository)
		enrollRepo := new(mocks.EnrollmentRepository)
		lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(lesson, nil)
		lessonRepo.On("FindSectionByID", mock.Anything, mock.Anything, lesson.SectionID).Return(nil, model.ErrNotFound)

		svc := NewAccessService(nil, lessonRepo, enrollRepo)
		_, err := svc.CanAccess(context.Background(), uuid.New(), lessonID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("コースが無い", func(t *testing.T) {
		lessonRepo := new(mocks.LessonRepository)
		enrollRepo := new(mocks.EnrollmentRepository)
		lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(lesson, nil)
		lessonRepo.On("FindSectionByID", mock.Anything, mock.Anything, lesson.SectionID).Return(section, nil)
		lessonRepo.On("FindCourseByID", mock.Anything, mock.Anything, section.CourseID).Return(nil, model.ErrNotFound)

		svc := NewAccessService(nil, lessonRepo, enrollRepo)
		_, err := svc.CanAccess(context.Background(), uuid.New(), lessonID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestAccessService_CanAccess_DBエラーは内部エラーとして返す(t *testing.T) {
	lessonID, lesson, section, course := newAccessFixture(t)
	studentID := uuid.New()
	dbErr := errors.New("connection reset")

	lessonRepo := new(mocks.LessonRepository)
	enrollRepo := new(mocks.EnrollmentRepository)
	lessonRepo.On("FindLessonByID", mock.Anything, mock.Anything, lessonID).Return(lesson, nil)
	lessonRepo.On("FindSectionByID", mock.Anything, mock.Anything, lesson.SectionID).Return(section, nil)
	lessonRepo.On("FindCourseByID", mock.Anything, mock.Anything, section.CourseID).Return(course, nil)
	enrollRepo.On("FindClassIDsByStudent", mock.Anything, mock.Anything, studentID).Return(nil, dbErr)

	svc := NewAccessService(nil, lessonRepo, enrollRepo)
	decision, err := svc.CanAccess(context.Background(), studentID, lessonID)

	assert.Nil(t, decision)
	require.Error(t, err)

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
	assert.ErrorIs(t, err, dbErr)
}

func Test_intersectClassIDs(t *testing.T) {
	tests := []struct {
		name string
		a    []uuid.UUID
		b    []uuid.UUID
		want []uuid.UUID
	}{
		{
			name: "共通要素をID昇順で返す",
			a:    []uuid.UUID{classID2, classID1, classID3},
			b:    []uuid.UUID{classID3, classID2},
			want: []uuid.UUID{classID2, classID3},
		},
		{
			name: "重複は1つにまとめる",
			a:    []uuid.UUID{classID1},
			b:    []uuid.UUID{classID1, classID1},
			want: []uuid.UUID{classID1},
		},
		{
			name: "共通要素なし",
			a:    []uuid.UUID{classID1},
			b:    []uuid.UUID{classID2},
			want: []uuid.UUID{},
		},
		{
			name: "両方空",
			a:    nil,
			b:    nil,
			want: []uuid.UUID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intersectClassIDs(tt.a, tt.b))
		})
	}
}
