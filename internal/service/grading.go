// internal/service/grading.go
package service

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"go_5_typing_tutor/internal/model"
)

// クライアント入力の許容範囲。範囲外は拒否せず黙ってクランプする
// （クライアントは信頼しないが敵対的でもない前提）。
const (
	MinSpeed        = 0.0
	MaxSpeed        = 200.0
	MinAccuracy     = 0.0
	MaxAccuracy     = 100.0
	MinTimeSpentSec = 0.0
	MaxTimeSpentSec = 3600.0
	MinScore        = 0.0
	MaxScore        = 1000.0
)

// clampMetric は値を [min, max] に収めます。クランプ方針を監査・単体テスト
// できるよう、採点とは独立した名前付きのステップにしている。
func clampMetric(logger *slog.Logger, name string, value, min, max float64) float64 {
	if value < min {
		logger.Debug("Clamping metric to lower bound", "metric", name, "value", value, "min", min)
		return min
	}
	if value > max {
		logger.Debug("Clamping metric to upper bound", "metric", name, "value", value, "max", max)
		return max
	}
	return value
}

// gradeStars はクランプ済みの正確性・速度から星数を決めます。
// 計算式ではなくポリシー表なので、閾値を変えないこと。
func gradeStars(accuracy, speed float64) int {
	switch {
	case accuracy >= 95 && speed >= 40:
		return 3
	case accuracy >= 85 && speed >= 30:
		return 2
	default:
		return 1
	}
}

// gradeCompleted はレッスン完了の判定です。丸めずにそのまま比較する
func gradeCompleted(accuracy float64) bool {
	return accuracy >= 80
}

// sessionMetrics はクランプ・採点済みの1セッション分の値
type sessionMetrics struct {
	Score        int
	Speed        float64
	Accuracy     float64
	Stars        int
	TimeSpentSec int
	Completed    bool
}

// gradeSession はリクエストの生値をクランプして採点結果にまとめます
func gradeSession(logger *slog.Logger, req *model.SubmitSessionRequest) sessionMetrics {
	speed := clampMetric(logger, "speed", req.Speed, MinSpeed, MaxSpeed)
	accuracy := clampMetric(logger, "accuracy", req.Accuracy, MinAccuracy, MaxAccuracy)
	timeSpent := clampMetric(logger, "time_spent", req.TimeSpent, MinTimeSpentSec, MaxTimeSpentSec)
	score := clampMetric(logger, "score", req.Score, MinScore, MaxScore)

	return sessionMetrics{
		Score:        int(math.Round(score)),
		Speed:        speed,
		Accuracy:     accuracy,
		Stars:        gradeStars(accuracy, speed),
		TimeSpentSec: int(math.Round(timeSpent)),
		Completed:    gradeCompleted(accuracy),
	}
}

// mergeLessonProgress は既存の進捗に1セッション分を畳み込みます。
// score/speed/accuracy/stars はフィールドごとに独立して max を取る
// （速度が下がっても正確性だけ更新される、など）。
// time_spent/attempts は加算。completed は一度trueになったら戻らず、
// completed_at は false→true の遷移でのみ設定する。
func mergeLessonProgress(progress *model.LessonProgress, m sessionMetrics, now time.Time) {
	if m.Score > progress.Score {
		progress.Score = m.Score
	}
	if m.Speed > progress.Speed {
		progress.Speed = m.Speed
	}
	if m.Accuracy > progress.Accuracy {
		progress.Accuracy = m.Accuracy
	}
	if m.Stars > progress.Stars {
		progress.Stars = m.Stars
	}
	progress.TimeSpentSec += m.TimeSpentSec
	progress.Attempts++
	if m.Completed && !progress.Completed {
		progress.Completed = true
		progress.CompletedAt = &now
	}
}

// mergeLetterStatistic は文字別統計に1セッション分を加算します。
// カウントと合計時間は加算、common_errors はキーごとの加算マージ。
func mergeLetterStatistic(stat *model.LetterStatistic, data model.LetterData, now time.Time) {
	stat.CorrectCount += data.CorrectCount
	stat.IncorrectCount += data.IncorrectCount
	total := data.CorrectCount + data.IncorrectCount
	stat.TotalTimeMs += int64(math.Round(data.AvgTimeMs * float64(total)))
	if stat.CommonErrors == nil {
		stat.CommonErrors = make(map[string]int)
	}
	for wrongChar, count := range data.Errors {
		stat.CommonErrors[wrongChar] += count
	}
	stat.LastPracticedAt = now
}

// mergeTypingPattern はパターン記録に1セッション分を畳み込みます。
// occurrences は加算だが、avg_speed/avg_accuracy は最新セッションの値で
// 上書きする（進捗・文字統計とは意図的に異なるマージ規則なので変えないこと）。
func mergeTypingPattern(pattern *model.TypingPattern, count int, m sessionMetrics, now time.Time) {
	if count < 1 {
		count = 1
	}
	pattern.Occurrences += count
	pattern.AvgSpeed = m.Speed
	pattern.AvgAccuracy = m.Accuracy
	pattern.LastOccurrence = now
}

// splitPatternKey は "<期待文字>-><実際の文字>" 形式のキーを分解します
func splitPatternKey(key string) (fromChar, toChar string, ok bool) {
	parts := strings.SplitN(key, "->", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
