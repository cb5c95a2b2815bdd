// internal/service/auth_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go_5_typing_tutor/internal/config"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func newAuthServiceForTest(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = testJWTSecret
	cfg.JWT.AccessTokenTTL = time.Hour
	return NewAuthService(db, repository.NewGormUserRepository(), cfg)
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, role model.Role, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		UserID:       uuid.New(),
		Name:         "テスト太郎",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		// default:true のカラムはゼロ値がINSERTで省略されるため、明示的に更新する
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func TestAuthService_Login_正常系(t *testing.T) {
	db := newAuthTestDB(t)
	user := seedUser(t, db, "student@example.com", "password123", model.RoleStudent, true)

	svc := newAuthServiceForTest(t, db)
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// 発行されたトークンを検証し、subとroleが入っていること
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, user.UserID.String(), claims.Subject)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_パスワード不一致(t *testing.T) {
	db := newAuthTestDB(t)
	seedUser(t, db, "student@example.com", "password123", model.RoleStudent, true)

	svc := newAuthServiceForTest(t, db)
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "student@example.com",
		Password: "wrong-password",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestAuthService_Login_存在しないメールアドレス(t *testing.T) {
	db := newAuthTestDB(t)

	svc := newAuthServiceForTest(t, db)
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.Nil(t, resp)
	// ユーザーの存在を漏らさないため、パスワード不一致と同じエラーになる
	assert.ErrorIs(t, err, model.ErrForbidden)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Detail.Code)
}

func TestAuthService_Login_無効化されたユーザー(t *testing.T) {
	db := newAuthTestDB(t)
	seedUser(t, db, "retired@example.com", "password123", model.RoleStudent, false)

	svc := newAuthServiceForTest(t, db)
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "retired@example.com",
		Password: "password123",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrForbidden)
}
