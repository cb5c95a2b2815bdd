// internal/model/lesson.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course はレッスンをまとめるコースを表します
type Course struct {
	CourseID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"course_id"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Course) TableName() string {
	return "courses"
}

// Section はコース内のレッスンのまとまりを表します
type Section struct {
	SectionID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"section_id"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string         `gorm:"not null" json:"title"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"-"`
}

func (Section) TableName() string {
	return "sections"
}

// Lesson は1つの練習課題と、その著者が設定した既定の動作設定を表します。
// セッション中は不変。
type Lesson struct {
	LessonID     uuid.UUID      `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	SectionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"section_id"`
	Title        string         `gorm:"not null" json:"title"`
	TargetText   string         `gorm:"not null" json:"target_text"` // 練習対象の文字列
	Instructions string         `json:"instructions"`
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`

	// レッスン既定値 (EffectiveConfig の土台になる)
	DisableBackspace bool    `gorm:"default:false" json:"disable_backspace"`
	BlockOnError     bool    `gorm:"default:false" json:"block_on_error"`
	TargetSpeed      float64 `gorm:"default:20" json:"target_speed"`    // WPM
	TargetAccuracy   float64 `gorm:"default:80" json:"target_accuracy"` // %
	TargetScore      int     `gorm:"default:100" json:"target_score"`
	TimeLimitSec     int     `gorm:"default:0" json:"time_limit_sec"` // 0 = 無制限

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
