package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSchoolAdmin Role = "school_admin"
	RoleInstructor  Role = "instructor"
	RoleStudent     Role = "student"
)

// User はプラットフォームの利用者（管理者・講師・生徒）を表します
type User struct {
	UserID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	SchoolID     *uuid.UUID     `gorm:"type:uuid;index" json:"school_id,omitempty"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         Role           `gorm:"not null;default:'student'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (User) TableName() string {
	return "users"
}

// School は学校（テナント）を表します。CRUDは本APIの範囲外だが、
// クラス・ユーザーの参照先として定義だけ持つ。
type School struct {
	SchoolID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"school_id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (School) TableName() string {
	return "schools"
}

// Identity は認証済みユーザーを表します。
// セッション層から受け取った検証済みの {userId, role} を、
// 暗黙のセッション参照ではなく明示的な値として各層へ渡す。
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type ContextKey string

const (
	IdentityKey ContextKey = "identity"
)

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
type JWTCustomClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}
