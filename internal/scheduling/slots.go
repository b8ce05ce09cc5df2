// Package scheduling содержит чистые функции планирования:
// генерацию кандидатов в слоты и фильтрацию по существующим обязательствам
package scheduling

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// GenerateCandidates генерирует упорядоченный список слотов длительностью durationMinutes
// внутри рабочего окна на дату date.
//
// Курсор стартует с начала окна и сдвигается на granularityMinutes, пока
// cursor+duration <= конец окна. Если окно не задано, используется 09:00-17:00.
// Перерыв здесь не учитывается - он исключается детектором конфликтов через явный блок.
//
// Функция без состояния: повторный вызов с теми же аргументами дает тот же результат.
func GenerateCandidates(
	date time.Time,
	durationMinutes int,
	window *domain.AvailabilityWindow,
	granularityMinutes int,
) []domain.Interval {
	if durationMinutes <= 0 {
		return []domain.Interval{}
	}
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultGranularityMinutes
	}
	if window == nil {
		window = domain.DefaultAvailabilityWindow(date.Weekday())
	}

	bounds := window.On(date)
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	candidates := make([]domain.Interval, 0)
	for cursor := bounds.Start; !cursor.Add(duration).After(bounds.End); cursor = cursor.Add(step) {
		candidates = append(candidates, domain.Interval{Start: cursor, End: cursor.Add(duration)})
	}

	return candidates
}

// BreakCommitment превращает перерыв рабочего окна в явный блок на дату date.
// Возвращает false, если перерыв не настроен или некорректен
func BreakCommitment(date time.Time, window *domain.AvailabilityWindow) (domain.Commitment, bool) {
	if window == nil {
		return domain.Commitment{}, false
	}
	br, ok := window.BreakOn(date)
	if !ok || !br.IsValid() {
		return domain.Commitment{}, false
	}
	return domain.Commitment{
		Kind:     domain.CommitmentBlock,
		Interval: br,
		Status:   domain.CommitmentConfirmed,
	}, true
}
