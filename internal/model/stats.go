// internal/model/stats.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LetterStatistic は (生徒, 文字) ごとの累積統計を表します。
// カウント類は常に加算で、ゼロから再計算されることはない。
type LetterStatistic struct {
	StatID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"stat_id"`
	StudentID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_student_letter,unique" json:"student_id"`
	Letter          string         `gorm:"not null;index:idx_student_letter,unique" json:"letter"`
	CorrectCount    int            `gorm:"not null;default:0" json:"correct_count"`
	IncorrectCount  int            `gorm:"not null;default:0" json:"incorrect_count"`
	TotalTimeMs     int64          `gorm:"not null;default:0" json:"total_time_ms"`
	CommonErrors    map[string]int `gorm:"serializer:json" json:"common_errors"` // 誤入力文字 → 回数
	LastPracticedAt time.Time      `json:"last_practiced_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (LetterStatistic) TableName() string {
	return "letter_statistics"
}

// TypingPattern は (生徒, 期待文字, 実際の文字) ごとの置換エラーの記録です。
// occurrences は加算だが、avg_speed/avg_accuracy は最新セッションの
// スナップショットで上書きする（他の集計と意図的に異なるマージ規則）。
type TypingPattern struct {
	PatternID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"pattern_id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;index:idx_student_pattern,unique" json:"student_id"`
	FromChar       string    `gorm:"not null;index:idx_student_pattern,unique" json:"from_char"`
	ToChar         string    `gorm:"not null;index:idx_student_pattern,unique" json:"to_char"`
	Occurrences    int       `gorm:"not null;default:0" json:"occurrences"`
	AvgSpeed       float64   `gorm:"not null;default:0" json:"avg_speed"`
	AvgAccuracy    float64   `gorm:"not null;default:0" json:"avg_accuracy"`
	LastOccurrence time.Time `json:"last_occurrence"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (TypingPattern) TableName() string {
	return "typing_patterns"
}
