// internal/model/session.go
package model

import (
	"github.com/google/uuid"
)

// LetterData は1セッション中の1文字分の集計です
type LetterData struct {
	Letter         string         `json:"letter" validate:"required,min=1,max=8"`
	CorrectCount   int            `json:"correct_count"`
	IncorrectCount int            `json:"incorrect_count"`
	AvgTimeMs      float64        `json:"avg_time_ms"`
	Errors         map[string]int `json:"errors,omitempty"` // 誤入力文字 → 回数
}

// ErrorPatternData は "<期待文字>-><実際の文字>" キーに対応する置換エラー情報です
type ErrorPatternData struct {
	Count int    `json:"count"`
	Type  string `json:"type,omitempty"`
}

// SubmitSessionRequest は練習セッション送信APIのリクエストボディ。
// 数値は範囲バリデーションしない（クライアントは信頼しないがエンジン側で
// クランプする方針のため、形だけを検証する）。
type SubmitSessionRequest struct {
	Score         float64                     `json:"score"`
	Speed         float64                     `json:"speed"`
	Accuracy      float64                     `json:"accuracy"`
	TimeSpent     float64                     `json:"time_spent"` // 秒
	LetterData    []LetterData                `json:"letter_data,omitempty" validate:"omitempty,dive"`
	ErrorPatterns map[string]ErrorPatternData `json:"error_patterns,omitempty"`
}

// SubmitSessionResponse はセッション送信の結果
type SubmitSessionResponse struct {
	Progress        *LessonProgress `json:"progress"`
	LettersUpdated  int             `json:"letters_updated"`
	PatternsUpdated int             `json:"patterns_updated"`
}

// AccessDecision は在籍チェーン検証の結果。
// Allowed が true のとき ClassIDs は生徒の所属クラスとコース割当クラスの
// 積集合（昇順ソート済み）で、先頭が設定解決に使うクラスになる。
type AccessDecision struct {
	Allowed  bool        `json:"allowed"`
	ClassIDs []uuid.UUID `json:"class_ids"`
	// CourseID はチェーン解決の副産物。設定解決で再度チェーンを辿らずに済む
	CourseID uuid.UUID `json:"-"`
}
