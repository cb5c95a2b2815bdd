// internal/service/config_resolver.go
package service

import (
	"context"
	"errors"

	"go_5_typing_tutor/internal/middleware"
	"go_5_typing_tutor/internal/model"
	"go_5_typing_tutor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func boolPtr(b bool) *bool                     { return &b }
func strPtr(s string) *string                  { return &s }
func handPtr(h model.HandMode) *model.HandMode { return &h }

// modeEffects はアクセシビリティモード → 設定パッチの静的な対応表です。
// プロファイルに現れる順に適用され、同じフィールドは後のモードが勝つ。
var modeEffects = map[model.AccessibilityMode]model.ConfigPatch{
	model.ModeBlind: {
		VoiceOver:           boolPtr(true),
		SoundFx:             boolPtr(true),
		FontSize:            strPtr("extra-large"),
		ShowReplayButton:    boolPtr(false),
		LockVirtualKeyboard: boolPtr(true),
	},
	model.ModeLowVision: {
		FontSize: strPtr("extra-large"),
		Theme:    strPtr("high-contrast"),
	},
	model.ModeDyslexic: {
		Font:                 strPtr("open-dyslexic"),
		FontSize:             strPtr("large"),
		ShowLowercaseLetters: boolPtr(true),
	},
	model.ModeRightHandOnly: {
		LockHands: boolPtr(true),
		Hands:     handPtr(model.HandsRight),
	},
	model.ModeLeftHandOnly: {
		LockHands: boolPtr(true),
		Hands:     handPtr(model.HandsLeft),
	},
	model.ModeHardOfHearing: {
		SoundFx:   boolPtr(false),
		VoiceOver: boolPtr(false),
	},
}

// classSettingsPatch はクラス設定を ConfigPatch に正規化します。
// nil のフィールドは「未設定」でそのまま透過する。
func classSettingsPatch(cs *model.ClassSettings) model.ConfigPatch {
	return model.ConfigPatch{
		DisableBackspace:     cs.DisableBackspace,
		BlockOnError:         cs.BlockOnError,
		LockVirtualKeyboard:  cs.LockVirtualKeyboard,
		LockLanguage:         cs.LockLanguage,
		LockHands:            cs.LockHands,
		SoundFx:              cs.SoundFx,
		VoiceOver:            cs.VoiceOver,
		Theme:                cs.Theme,
		Font:                 cs.Font,
		ShowReplayButton:     cs.ShowReplayButton,
		ShowLowercaseLetters: cs.ShowLowercaseLetters,
	}
}

// ResolveEffectiveConfig は4つの独立した設定元（レッスン著者・コース運用者・
// クラス担当者・生徒本人のアクセシビリティ）を順序付きで合成します。
// 純粋関数：同じ入力は常に同じ出力を生み、I/Oを行わない。
//
// 適用順:
//  1. レッスン既定値が全フィールドの土台になる
//  2. classCourse: speed_adjustment は現在値への加算、
//     accuracy_requirement は下限としての置換（0 = 未設定）
//  3. classSettings: 明示的に設定されたフィールドだけ置換
//  4. アクセシビリティモード: プロファイル順に適用、後勝ち
func ResolveEffectiveConfig(lesson *model.Lesson, classSettings *model.ClassSettings, classCourse *model.ClassCourse, modes []model.AccessibilityMode) *model.EffectiveConfig {
	cfg := &model.EffectiveConfig{
		DisableBackspace:     lesson.DisableBackspace,
		BlockOnError:         lesson.BlockOnError,
		LockVirtualKeyboard:  false,
		LockLanguage:         false,
		LockHands:            false,
		Hands:                model.HandsBoth,
		SoundFx:              true,
		VoiceOver:            false,
		Theme:                "default",
		Font:                 "default",
		FontSize:             "medium",
		ShowReplayButton:     true,
		ShowLowercaseLetters: false,
		TargetSpeed:          lesson.TargetSpeed,
		TargetAccuracy:       lesson.TargetAccuracy,
		TargetScore:          lesson.TargetScore,
		TimeLimitSec:         lesson.TimeLimitSec,
		Instructions:         lesson.Instructions,
	}

	if classCourse != nil {
		cfg.TargetSpeed += classCourse.SpeedAdjustment
		if classCourse.AccuracyRequirement > 0 {
			cfg.TargetAccuracy = classCourse.AccuracyRequirement
		}
	}

	// パッチの適用順をリストとして組み立てる。順序がそのまま優先順位になる
	patches := make([]model.ConfigPatch, 0, len(modes)+1)
	if classSettings != nil {
		patches = append(patches, classSettingsPatch(classSettings))
	}
	for _, mode := range modes {
		if patch, ok := modeEffects[mode]; ok {
			patches = append(patches, patch)
		}
	}

	for _, patch := range patches {
		patch.Apply(cfg)
	}

	return cfg
}

// ConfigService はレッスン開始前に呼ばれる設定解決サービスです。
// 各レイヤーを読み込んで純粋な ResolveEffectiveConfig に渡す。
type ConfigService interface {
	ResolveForLesson(ctx context.Context, studentID, lessonID uuid.UUID) (*model.EffectiveConfig, error)
}

type configService struct {
	db         *gorm.DB
	accessSvc  AccessService
	lessonRepo repository.LessonRepository
	enrollRepo repository.EnrollmentRepository
	userRepo   repository.UserRepository
}

func NewConfigService(db *gorm.DB, accessSvc AccessService, lessonRepo repository.LessonRepository, enrollRepo repository.EnrollmentRepository, userRepo repository.UserRepository) ConfigService {
	return &configService{
		db:         db,
		accessSvc:  accessSvc,
		lessonRepo: lessonRepo,
		enrollRepo: enrollRepo,
		userRepo:   userRepo,
	}
}

func (s *configService) ResolveForLesson(ctx context.Context, studentID, lessonID uuid.UUID) (*model.EffectiveConfig, error) {
	logger := middleware.GetLogger(ctx).With("student_id", studentID, "lesson_id", lessonID)

	decision, err := s.accessSvc.CanAccess(ctx, studentID, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 存在しないレッスンも権限なしとして扱う（存在の漏洩防止）
			return nil, model.NewAppError("NOT_AUTHORIZED", "このレッスンにアクセスする権限がありません。", "", model.ErrForbidden)
		}
		return nil, err
	}
	if !decision.Allowed {
		return nil, model.NewAppError("NOT_AUTHORIZED", "このレッスンにアクセスする権限がありません。", "", model.ErrForbidden)
	}

	lesson, err := s.lessonRepo.FindLessonByID(ctx, s.db, lessonID)
	if err != nil {
		logger.Error("Failed to load lesson for config resolution", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの取得に失敗しました。", "", err)
	}

	// 複数クラスに在籍している場合は、ソート済み積集合の先頭を使う
	classID := decision.ClassIDs[0]

	classSettings, err := s.enrollRepo.FindClassSettings(ctx, s.db, classID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to load class settings", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クラス設定の取得に失敗しました。", "", err)
		}
		classSettings = nil // 未設定はレイヤーごと省略
	}

	classCourse, err := s.enrollRepo.FindClassCourse(ctx, s.db, classID, decision.CourseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to load class course settings", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コース割当設定の取得に失敗しました。", "", err)
		}
		classCourse = nil
	}

	modes, err := s.userRepo.FindAccessibilityModes(ctx, s.db, studentID)
	if err != nil {
		logger.Error("Failed to load accessibility modes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "アクセシビリティ設定の取得に失敗しました。", "", err)
	}

	return ResolveEffectiveConfig(lesson, classSettings, classCourse, modes), nil
}
