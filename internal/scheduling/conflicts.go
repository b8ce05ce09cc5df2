package scheduling

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// FilterAvailable оставляет кандидатов, которые можно предложить клиенту.
//
// Кандидат отбрасывается, если:
// - он начинается не позже now (прошлое бронировать нельзя)
// - он пересекается с любым подтвержденным обязательством
//
// Пересечение полуинтервалов: c.Start < m.End && m.Start < c.End.
// Соседние интервалы (c.Start == m.End или c.End == m.Start) НЕ пересекаются.
// Порядок кандидатов сохраняется.
func FilterAvailable(
	candidates []domain.Interval,
	commitments []domain.Commitment,
	now time.Time,
) []domain.Interval {
	accepted := make([]domain.Interval, 0, len(candidates))

	for _, c := range candidates {
		if !c.Start.After(now) {
			continue
		}
		if HasConflict(c, commitments) {
			continue
		}
		accepted = append(accepted, c)
	}

	return accepted
}

// HasConflict проверяет, пересекается ли интервал с подтвержденными обязательствами
func HasConflict(interval domain.Interval, commitments []domain.Commitment) bool {
	return len(Conflicts(interval, commitments)) > 0
}

// Conflicts возвращает подтвержденные обязательства, пересекающиеся с интервалом
func Conflicts(interval domain.Interval, commitments []domain.Commitment) []domain.Commitment {
	var conflicts []domain.Commitment
	for _, m := range commitments {
		if !m.IsConfirmed() {
			continue
		}
		if interval.Overlaps(m.Interval) {
			conflicts = append(conflicts, m)
		}
	}
	return conflicts
}
