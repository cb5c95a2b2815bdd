// internal/model/accessibility.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessibilityMode は生徒に付与されるアクセシビリティ対応の名前
type AccessibilityMode string

const (
	ModeBlind         AccessibilityMode = "blind"
	ModeLowVision     AccessibilityMode = "low_vision"
	ModeDyslexic      AccessibilityMode = "dyslexic"
	ModeRightHandOnly AccessibilityMode = "right_hand_only"
	ModeLeftHandOnly  AccessibilityMode = "left_hand_only"
	ModeHardOfHearing AccessibilityMode = "hard_of_hearing"
)

// UserAccessibilityMode は生徒のアクセシビリティプロファイルの1エントリ。
// Position の昇順 = 適用順。同じフィールドは後に適用されたモードが勝つため、
// この順序は保存時のまま維持されなければならない。
type UserAccessibilityMode struct {
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_user_mode,unique" json:"user_id"`
	Mode      AccessibilityMode `gorm:"not null;index:idx_user_mode,unique" json:"mode"`
	Position  int               `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time         `json:"created_at"`
}

func (UserAccessibilityMode) TableName() string {
	return "user_accessibility_modes"
}
