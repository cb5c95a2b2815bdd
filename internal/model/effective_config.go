// internal/model/effective_config.go
package model

// HandMode は使用する手の制限
type HandMode string

const (
	HandsBoth  HandMode = "both"
	HandsLeft  HandMode = "left"
	HandsRight HandMode = "right"
)

// EffectiveConfig は1人の生徒が1つのレッスンに挑戦するときの最終的な
// 動作設定です。永続化せず、リクエストごとに再計算する。
type EffectiveConfig struct {
	DisableBackspace     bool     `json:"disable_backspace"`
	BlockOnError         bool     `json:"block_on_error"`
	LockVirtualKeyboard  bool     `json:"lock_virtual_keyboard"`
	LockLanguage         bool     `json:"lock_language"`
	LockHands            bool     `json:"lock_hands"`
	Hands                HandMode `json:"hands"`
	SoundFx              bool     `json:"sound_fx"`
	VoiceOver            bool     `json:"voice_over"`
	Theme                string   `json:"theme"`
	Font                 string   `json:"font"`
	FontSize             string   `json:"font_size"`
	ShowReplayButton     bool     `json:"show_replay_button"`
	ShowLowercaseLetters bool     `json:"show_lowercase_letters"`
	TargetSpeed          float64  `json:"target_speed"`
	TargetAccuracy       float64  `json:"target_accuracy"`
	TargetScore          int      `json:"target_score"`
	TimeLimitSec         int      `json:"time_limit_sec"`
	Instructions         string   `json:"instructions"`
}

// ConfigPatch は EffectiveConfig への部分的な上書きです。
// nil のフィールドは変更しない。クラス設定とアクセシビリティモードの
// 両方をこの形に正規化し、順序付きリストとして適用する。
type ConfigPatch struct {
	DisableBackspace     *bool
	BlockOnError         *bool
	LockVirtualKeyboard  *bool
	LockLanguage         *bool
	LockHands            *bool
	Hands                *HandMode
	SoundFx              *bool
	VoiceOver            *bool
	Theme                *string
	Font                 *string
	FontSize             *string
	ShowReplayButton     *bool
	ShowLowercaseLetters *bool
}

// Apply はパッチが明示的に持つフィールドだけを上書きします
func (p ConfigPatch) Apply(c *EffectiveConfig) {
	if p.DisableBackspace != nil {
		c.DisableBackspace = *p.DisableBackspace
	}
	if p.BlockOnError != nil {
		c.BlockOnError = *p.BlockOnError
	}
	if p.LockVirtualKeyboard != nil {
		c.LockVirtualKeyboard = *p.LockVirtualKeyboard
	}
	if p.LockLanguage != nil {
		c.LockLanguage = *p.LockLanguage
	}
	if p.LockHands != nil {
		c.LockHands = *p.LockHands
	}
	if p.Hands != nil {
		c.Hands = *p.Hands
	}
	if p.SoundFx != nil {
		c.SoundFx = *p.SoundFx
	}
	if p.VoiceOver != nil {
		c.VoiceOver = *p.VoiceOver
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if p.Font != nil {
		c.Font = *p.Font
	}
	if p.FontSize != nil {
		c.FontSize = *p.FontSize
	}
	if p.ShowReplayButton != nil {
		c.ShowReplayButton = *p.ShowReplayButton
	}
	if p.ShowLowercaseLetters != nil {
		c.ShowLowercaseLetters = *p.ShowLowercaseLetters
	}
}
