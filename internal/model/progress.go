// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress は (生徒, レッスン) ごとの学習進捗を表します。
// score/speed/accuracy/stars はベストアタック方式で単調非減少、
// time_spent_sec/attempts は加算のみ、completed は false→true のみ。
type LessonProgress struct {
	ProgressID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_student_lesson,unique" json:"student_id"`
	LessonID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_student_lesson,unique" json:"lesson_id"`
	Score        int        `gorm:"not null;default:0" json:"score"`
	Speed        float64    `gorm:"not null;default:0" json:"speed"`    // WPM の自己ベスト
	Accuracy     float64    `gorm:"not null;default:0" json:"accuracy"` // % の自己ベスト
	Stars        int        `gorm:"not null;default:0" json:"stars"`
	TimeSpentSec int        `gorm:"not null;default:0" json:"time_spent_sec"`
	Attempts     int        `gorm:"not null;default:0" json:"attempts"`
	Completed    bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"` // 初回完了時に一度だけ設定
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
