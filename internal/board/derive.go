package board

import (
	"math"
	"strings"
	"time"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/taskmeta"
)

// BoardTask - задача с полностью заполненными атрибутами борда: хранилище их
// не гарантирует, поэтому недостающее доводим детерминированными эвристиками
type BoardTask struct {
	ID          int                 `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     string              `json:"dueDate"`
	AssigneeID  *string             `json:"assigneeId"`
	Assignee    string              `json:"assignee"`
	Status      entity.LuxStatus    `json:"status"`
	Priority    entity.TaskPriority `json:"priority"`
	Category    string              `json:"category"`
	Effort      float64             `json:"effort"`
	Impact      float64             `json:"impact"`
	Tags        []string            `json:"tags"`
}

type categoryRule struct {
	keywords []string
	category string
}

// Порядок значим: категории взаимоисключающие, выигрывает первое совпадение
var keywordCategoryMap = []categoryRule{
	{[]string{"floral", "design", "decor", "style", "canopy", "aesthetic", "mood"}, "Design"},
	{[]string{"cater", "menu", "chef", "dining", "dessert", "cocktail", "champagne"}, "Culinary"},
	{[]string{"guest", "rsvp", "concierge", "welcome", "experience"}, "Guest Experience"},
	{[]string{"vendor", "permit", "logistics", "transport", "fleet", "closure", "shuttle"}, "Logistics"},
	{[]string{"music", "playlist", "dj", "band", "sound", "rehearsal"}, "Entertainment"},
	{[]string{"beauty", "hair", "makeup", "dress", "attire"}, "Beauty"},
	{[]string{"photo", "video", "lighting", "drone"}, "Production"},
}

const dateLayout = "2006-01-02"

// NormalizeDueDate - дефолт для задач без дедлайна: две недели от сейчас
func NormalizeDueDate(dueDate *string, now time.Time) string {
	if dueDate != nil && *dueDate != "" {
		return *dueDate
	}
	return now.AddDate(0, 0, 14).Format(dateLayout)
}

// DerivePriority - явное значение из метаданных выигрывает, завершенные
// задачи всегда low, дальше по дистанции до дедлайна
func DerivePriority(meta entity.TaskMetadata, dueDate string, status entity.LuxStatus, now time.Time) entity.TaskPriority {
	if meta.Priority != "" {
		return meta.Priority
	}

	if status == entity.LuxCompleted {
		return entity.PriorityLow
	}

	diff := taskmeta.CalendarDays(now, parseDate(dueDate, now))
	if diff <= 2 {
		return entity.PriorityCritical
	}
	if diff <= 7 {
		return entity.PriorityHigh
	}
	if diff <= 21 {
		return entity.PriorityMedium
	}
	return entity.PriorityLow
}

// DeriveCategory - по таблице ключевых слов над title+description
func DeriveCategory(meta entity.TaskMetadata, title, description string) string {
	if meta.Category != "" {
		return meta.Category
	}

	haystack := strings.ToLower(title + " " + description)
	for _, rule := range keywordCategoryMap {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.category
			}
		}
	}

	return "General"
}

// DeriveEffort - стори-поинты из длины описания: words/35 + 3, зажато в [2, 13]
func DeriveEffort(meta entity.TaskMetadata, description string) float64 {
	if meta.Effort != nil {
		return *meta.Effort
	}

	words := len(strings.Fields(description))
	effort := math.Round(float64(words)/35) + 3
	return math.Min(13, math.Max(2, effort))
}

// DeriveImpact - из приоритета
func DeriveImpact(meta entity.TaskMetadata, priority entity.TaskPriority) float64 {
	if meta.Impact != nil {
		return *meta.Impact
	}

	switch priority {
	case entity.PriorityCritical:
		return 9
	case entity.PriorityHigh:
		return 8
	case entity.PriorityMedium:
		return 6
	default:
		return 4
	}
}

// DeriveTags - явный непустой список выигрывает, иначе синтезируем пару
// [категория, Critical Path | Momentum]
func DeriveTags(meta entity.TaskMetadata, category string, priority entity.TaskPriority) []string {
	if len(meta.Tags) > 0 {
		return meta.Tags
	}

	marker := "Momentum"
	if priority == entity.PriorityCritical {
		marker = "Critical Path"
	}
	return []string{category, marker}
}

// DeriveTask - доводит задачу из API до полного представления борда.
// Детерминирована при фиксированном now.
func DeriveTask(view entity.TaskView, now time.Time) BoardTask {
	dueDate := NormalizeDueDate(view.DueDate, now)

	status := view.StatusLux
	if view.Metadata.StatusLux != "" {
		status = view.Metadata.StatusLux
	}

	priority := DerivePriority(view.Metadata, dueDate, status, now)
	category := DeriveCategory(view.Metadata, view.Title, view.Description)

	assignee := "Unassigned"
	if view.Assignee != nil {
		assignee = view.Assignee.Name
	}

	return BoardTask{
		ID:          view.ID,
		Title:       view.Title,
		Description: view.Description,
		DueDate:     dueDate,
		AssigneeID:  view.AssigneeID,
		Assignee:    assignee,
		Status:      status,
		Priority:    priority,
		Category:    category,
		Effort:      DeriveEffort(view.Metadata, view.Description),
		Impact:      DeriveImpact(view.Metadata, priority),
		Tags:        DeriveTags(view.Metadata, category, priority),
	}
}

// parseDate - небьющийся разбор ISO-даты, при мусоре берем сейчас
func parseDate(value string, fallback time.Time) time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fallback
	}
	return parsed
}
