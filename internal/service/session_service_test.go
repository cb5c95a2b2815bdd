// internal/service/session_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository"
	repomocks "go_5_typing_tutor/internal/repository/mocks"
	"go_5_typing_tutor/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSessionTestDB はテストごとに独立したインメモリDBを用意します。
// コネクションプールをまたいでも同じDBを見るよう、名前付き共有メモリを使う。
func newSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "テスト用DBの接続に失敗")

	err = db.AutoMigrate(&model.LessonProgress{}, &model.LetterStatistic{}, &model.TypingPattern{})
	require.NoError(t, err, "テスト用DBのマイグレーションに失敗")
	return db
}

func allowedDecision() *model.AccessDecision {
	return &model.AccessDecision{
		Allowed:  true,
		ClassIDs: []uuid.UUID{classID1},
		CourseID: uuid.New(),
	}
}

func fullSessionRequest() *model.SubmitSessionRequest {
	return &model.SubmitSessionRequest{
		Score:     500,
		Speed:     50,
		Accuracy:  96,
		TimeSpent: 120,
		LetterData: []model.LetterData{
			{Letter: "e", CorrectCount: 3, IncorrectCount: 1, AvgTimeMs: 100, Errors: map[string]int{"t": 1}},
		},
		ErrorPatterns: map[string]model.ErrorPatternData{
			"a->s": {Count: 2, Type: "substitution"},
		},
	}
}

func newSessionServiceForTest(db *gorm.DB, accessSvc AccessService) SessionService {
	return NewSessionService(db, accessSvc, repository.NewGormProgressRepository(), repository.NewGormStatsRepository())
}

func TestSessionService_Submit_初回送信で進捗が作成される(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	svc := newSessionServiceForTest(db, accessSvc)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Progress)
	assert.Equal(t, 500, resp.Progress.Score)
	assert.Equal(t, 50.0, resp.Progress.Speed)
	assert.Equal(t, 96.0, resp.Progress.Accuracy)
	assert.Equal(t, 3, resp.Progress.Stars)
	assert.Equal(t, 120, resp.Progress.TimeSpentSec)
	assert.Equal(t, 1, resp.Progress.Attempts)
	assert.True(t, resp.Progress.Completed)
	assert.NotNil(t, resp.Progress.CompletedAt)
	assert.Equal(t, 1, resp.LettersUpdated)
	assert.Equal(t, 1, resp.PatternsUpdated)

	var stat model.LetterStatistic
	require.NoError(t, db.Where("student_id = ? AND letter = ?", studentID, "e").First(&stat).Error)
	assert.Equal(t, 3, stat.CorrectCount)
	assert.Equal(t, 1, stat.IncorrectCount)
	assert.Equal(t, map[string]int{"t": 1}, stat.CommonErrors)

	var pattern model.TypingPattern
	require.NoError(t, db.Where("student_id = ? AND from_char = ? AND to_char = ?", studentID, "a", "s").First(&pattern).Error)
	assert.Equal(t, 2, pattern.Occurrences)
	assert.Equal(t, 50.0, pattern.AvgSpeed)
	assert.Equal(t, 96.0, pattern.AvgAccuracy)
}

func TestSessionService_Submit_二重送信(t *testing.T) {
	// 完了時の明示送信とビーコン送信が両方届いたケース。
	// ベスト系は飽和し、加算系だけが二重計上される
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	svc := newSessionServiceForTest(db, accessSvc)
	_, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())
	require.NoError(t, err)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())
	require.NoError(t, err)

	assert.Equal(t, 500, resp.Progress.Score)
	assert.Equal(t, 50.0, resp.Progress.Speed)
	assert.Equal(t, 96.0, resp.Progress.Accuracy)
	assert.Equal(t, 3, resp.Progress.Stars)
	assert.Equal(t, 240, resp.Progress.TimeSpentSec)
	assert.Equal(t, 2, resp.Progress.Attempts)

	var stat model.LetterStatistic
	require.NoError(t, db.Where("student_id = ? AND letter = ?", studentID, "e").First(&stat).Error)
	assert.Equal(t, 6, stat.CorrectCount)
	assert.Equal(t, 2, stat.IncorrectCount)
	assert.Equal(t, map[string]int{"t": 2}, stat.CommonErrors)

	var pattern model.TypingPattern
	require.NoError(t, db.Where("student_id = ?", studentID).First(&pattern).Error)
	assert.Equal(t, 4, pattern.Occurrences)
}

func TestSessionService_Submit_フィールドごとのベスト更新と完了の単調性(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	svc := newSessionServiceForTest(db, accessSvc)
	ctx := context.Background()

	// 1回目: 速い・不正確（未完了）
	_, err := svc.Submit(ctx, studentID, lessonID, &model.SubmitSessionRequest{Speed: 50, Accuracy: 70, TimeSpent: 60})
	require.NoError(t, err)

	// 2回目: 遅い・正確（ここで完了）
	resp, err := svc.Submit(ctx, studentID, lessonID, &model.SubmitSessionRequest{Speed: 30, Accuracy: 90, TimeSpent: 60})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Progress.Speed)    // 1回目のベストを維持
	assert.Equal(t, 90.0, resp.Progress.Accuracy) // 2回目で更新
	assert.True(t, resp.Progress.Completed)
	require.NotNil(t, resp.Progress.CompletedAt)
	firstCompletedAt := *resp.Progress.CompletedAt

	// 3回目: 低成績でも完了状態と完了日時は変わらない
	resp, err = svc.Submit(ctx, studentID, lessonID, &model.SubmitSessionRequest{Speed: 10, Accuracy: 40, TimeSpent: 60})
	require.NoError(t, err)
	assert.True(t, resp.Progress.Completed)
	require.NotNil(t, resp.Progress.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *resp.Progress.CompletedAt, time.Second)
	assert.Equal(t, 3, resp.Progress.Attempts)
	assert.Equal(t, 180, resp.Progress.TimeSpentSec)
}

func TestSessionService_Submit_パターンの速度と正確性は最新スナップショット(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	svc := newSessionServiceForTest(db, accessSvc)
	ctx := context.Background()

	_, err := svc.Submit(ctx, studentID, lessonID, &model.SubmitSessionRequest{
		Speed: 50, Accuracy: 90,
		ErrorPatterns: map[string]model.ErrorPatternData{"a->s": {Count: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, studentID, lessonID, &model.SubmitSessionRequest{
		Speed: 30, Accuracy: 85,
		ErrorPatterns: map[string]model.ErrorPatternData{"a->s": {Count: 1}},
	})
	require.NoError(t, err)

	var pattern model.TypingPattern
	require.NoError(t, db.Where("student_id = ?", studentID).First(&pattern).Error)
	assert.Equal(t, 3, pattern.Occurrences) // 出現回数は加算
	assert.Equal(t, 30.0, pattern.AvgSpeed) // 速度・正確性は最新で上書き
	assert.Equal(t, 85.0, pattern.AvgAccuracy)
}

func TestSessionService_Submit_不正なパターンキーはスキップされる(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	svc := newSessionServiceForTest(db, accessSvc)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, &model.SubmitSessionRequest{
		Speed: 30, Accuracy: 85,
		ErrorPatterns: map[string]model.ErrorPatternData{
			"a->s":   {Count: 1},
			"broken": {Count: 5},
			"->x":    {Count: 2},
			"y->":    {Count: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.PatternsUpdated)

	var count int64
	db.Model(&model.TypingPattern{}).Where("student_id = ?", studentID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSessionService_Submit_在籍していない生徒は何も書き込まれない(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(&model.AccessDecision{Allowed: false, ClassIDs: []uuid.UUID{}}, nil)

	svc := newSessionServiceForTest(db, accessSvc)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrForbidden)

	var count int64
	db.Model(&model.LessonProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.LetterStatistic{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.TypingPattern{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSessionService_Submit_レッスンが存在しない場合も権限エラーに正規化(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(nil, model.ErrNotFound)

	svc := newSessionServiceForTest(db, accessSvc)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())

	assert.Nil(t, resp)
	// 404 ではなく権限エラー。レッスンの存在を漏らさない
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestSessionService_Submit_統計の保存に失敗したら進捗もロールバックされる(t *testing.T) {
	db := newSessionTestDB(t)
	studentID := uuid.New()
	lessonID := uuid.New()
	dbErr := errors.New("disk I/O error")

	accessSvc := new(mocks.AccessService)
	accessSvc.On("CanAccess", mock.Anything, studentID, lessonID).Return(allowedDecision(), nil)

	statsRepo := new(repomocks.StatsRepository)
	statsRepo.On("FindLetterForUpdate", mock.Anything, mock.Anything, studentID, "e").Return(nil, dbErr)

	svc := NewSessionService(db, accessSvc, repository.NewGormProgressRepository(), statsRepo)
	resp, err := svc.Submit(context.Background(), studentID, lessonID, fullSessionRequest())

	assert.Nil(t, resp)
	require.Error(t, err)

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)

	// トランザクションごと巻き戻っていること
	var count int64
	db.Model(&model.LessonProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
