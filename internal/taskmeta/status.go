package taskmeta

import (
	"math"
	"time"

	"github.com/wedlux/planner-service/internal/entity"
)

// CalendarDays - разница в календарных днях между двумя моментами
// (обе даты усекаются до полуночи)
func CalendarDays(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(toDay.Sub(fromDay).Hours() / 24))
}

// InferLuxStatus - выводит пятистатусный статус из хранимого трёхстатусного.
// Явный statusLux из метаданных всегда выигрывает; дальше угадываем срочность
// по дистанции до дедлайна: далёкие todo читаются как backlog, всё горящее
// поднимается в review.
func InferLuxStatus(status entity.TaskStatus, meta entity.TaskMetadata, dueDate *time.Time, now time.Time) entity.LuxStatus {
	if meta.StatusLux != "" && luxStatuses[meta.StatusLux] {
		return meta.StatusLux
	}

	if status == entity.StatusDone {
		return entity.LuxCompleted
	}

	if status == entity.StatusInProgress {
		if dueDate != nil && CalendarDays(now, *dueDate) <= 2 {
			return entity.LuxReview
		}
		return entity.LuxInProgress
	}

	if dueDate != nil {
		delta := CalendarDays(now, *dueDate)
		if delta > 21 {
			return entity.LuxBacklog
		}
		if delta <= 2 {
			return entity.LuxReview
		}
	}

	return entity.LuxPlanning
}

// MapLuxToTaskStatus - проекция пятистатусного workflow в хранимый
// трёхстатусный. Лосси и many-to-one, поэтому явный statusLux дополнительно
// сохраняется в метаданных.
func MapLuxToTaskStatus(lux entity.LuxStatus) entity.TaskStatus {
	switch lux {
	case entity.LuxCompleted:
		return entity.StatusDone
	case entity.LuxInProgress, entity.LuxReview:
		return entity.StatusInProgress
	default:
		return entity.StatusTodo
	}
}
