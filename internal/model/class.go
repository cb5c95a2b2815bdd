// internal/model/class.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonProgressLimit はクラス×コース単位のレッスン進行制限
type LessonProgressLimit string

const (
	ProgressSequential LessonProgressLimit = "sequential" // 順番にしか進めない
	ProgressAll        LessonProgressLimit = "all"        // どのレッスンでも挑戦可
)

// Class は1つの学校に属する生徒の集まり（クラス）を表します
type Class struct {
	ClassID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"class_id"`
	SchoolID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassStudent は生徒のクラス所属（在籍エッジ）を表します
type ClassStudent struct {
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique" json:"class_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_class_student,unique" json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}

// ClassCourse はクラスへのコース割り当て（割当エッジ）を表します。
// (class, course) ペアごとに1行で、ペア固有の上書き設定を持つ。
// コースをクラスに割り当てた時点で作成される。
type ClassCourse struct {
	ClassID  uuid.UUID `gorm:"type:uuid;not null;index:idx_class_course,unique" json:"class_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_class_course,unique" json:"course_id"`

	HasPrerequisite     bool                `gorm:"default:false" json:"has_prerequisite"`
	SpeedAdjustment     float64             `gorm:"default:0" json:"speed_adjustment"`      // 符号付きの速度補正 (加算)
	AccuracyRequirement float64             `gorm:"default:0" json:"accuracy_requirement"`  // 正確性の下限 (置換)。0 = 未設定
	LessonProgressLimit LessonProgressLimit `gorm:"default:'all'" json:"lesson_progress_limit"`
	HasPlacementTest    bool                `gorm:"default:false" json:"has_placement_test"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClassCourse) TableName() string {
	return "class_courses"
}

// ClassSettings はクラス単位の上書き設定です。
// 明示的に設定されたフィールドだけを上書きするため、全てポインタ型で持つ。
// nil = 未設定 (下位レイヤーの値を維持)。
type ClassSettings struct {
	ClassID uuid.UUID `gorm:"type:uuid;primaryKey" json:"class_id"`

	DisableBackspace     *bool   `json:"disable_backspace,omitempty"`
	BlockOnError         *bool   `json:"block_on_error,omitempty"`
	LockVirtualKeyboard  *bool   `json:"lock_virtual_keyboard,omitempty"`
	LockLanguage         *bool   `json:"lock_language,omitempty"`
	LockHands            *bool   `json:"lock_hands,omitempty"`
	SoundFx              *bool   `json:"sound_fx,omitempty"`
	VoiceOver            *bool   `json:"voice_over,omitempty"`
	Theme                *string `json:"theme,omitempty"`
	Font                 *string `json:"font,omitempty"`
	ShowReplayButton     *bool   `json:"show_replay_button,omitempty"`
	ShowLowercaseLetters *bool   `json:"show_lowercase_letters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClassSettings) TableName() string {
	return "class_settings"
}
