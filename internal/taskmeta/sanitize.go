package taskmeta

import (
	"math"

	"github.com/wedlux/planner-service/internal/entity"
)

var luxStatuses = map[entity.LuxStatus]bool{
	entity.LuxBacklog:    true,
	entity.LuxPlanning:   true,
	entity.LuxInProgress: true,
	entity.LuxReview:     true,
	entity.LuxCompleted:  true,
}

var luxPriorities = map[entity.TaskPriority]bool{
	entity.PriorityLow:      true,
	entity.PriorityMedium:   true,
	entity.PriorityHigh:     true,
	entity.PriorityCritical: true,
}

// ValidLuxStatus - входит ли значение в пятистатусный workflow
func ValidLuxStatus(s entity.LuxStatus) bool {
	return luxStatuses[s]
}

// Sanitize - превращает произвольный (возможно клиентский) объект метаданных
// в валидный TaskMetadata. Чистая и тотальная: всё невалидное молча
// отбрасывается, ошибок не бывает.
func Sanitize(raw map[string]any) entity.TaskMetadata {
	var meta entity.TaskMetadata
	if raw == nil {
		return meta
	}

	if s, ok := raw["priority"].(string); ok && luxPriorities[entity.TaskPriority(s)] {
		meta.Priority = entity.TaskPriority(s)
	}

	if s, ok := raw["category"].(string); ok {
		meta.Category = s
	}

	if n, ok := finiteNumber(raw["effort"]); ok {
		meta.Effort = &n
	}

	if n, ok := finiteNumber(raw["impact"]); ok {
		meta.Impact = &n
	}

	// не массив - отбрасываем целиком, а не подменяем пустым списком
	if items, ok := raw["tags"].([]any); ok {
		tags := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		meta.Tags = tags
	} else if strs, ok := raw["tags"].([]string); ok {
		meta.Tags = strs
	}

	if s, ok := raw["statusLux"].(string); ok && luxStatuses[entity.LuxStatus(s)] {
		meta.StatusLux = entity.LuxStatus(s)
	}

	return meta
}

// finiteNumber - принимает только конечные числа (json отдает float64)
func finiteNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// ToRaw - обратное представление для слияния блоков метаданных
func ToRaw(meta entity.TaskMetadata) map[string]any {
	raw := map[string]any{}
	if meta.Priority != "" {
		raw["priority"] = string(meta.Priority)
	}
	if meta.Category != "" {
		raw["category"] = meta.Category
	}
	if meta.Effort != nil {
		raw["effort"] = *meta.Effort
	}
	if meta.Impact != nil {
		raw["impact"] = *meta.Impact
	}
	if meta.Tags != nil {
		items := make([]any, len(meta.Tags))
		for i, tag := range meta.Tags {
			items[i] = tag
		}
		raw["tags"] = items
	}
	if meta.StatusLux != "" {
		raw["statusLux"] = string(meta.StatusLux)
	}
	return raw
}

// Merge - накладывает входящие ключи поверх существующих; ключи, которых нет
// во входящем payload, сохраняются
func Merge(existing, incoming map[string]any) map[string]any {
	merged := map[string]any{}
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}
