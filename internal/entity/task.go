package entity

import "time"

type TaskStatus string

// хранимый трёхстатусный workflow
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

type LuxStatus string

// расширенный пятистатусный workflow для борда
const (
	LuxBacklog    LuxStatus = "backlog"
	LuxPlanning   LuxStatus = "planning"
	LuxInProgress LuxStatus = "in_progress"
	LuxReview     LuxStatus = "review"
	LuxCompleted  LuxStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Task - строка таблицы tasks; description хранит встроенный блок метаданных
type Task struct {
	ID          int        `json:"id"`
	WeddingID   string     `json:"wedding_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *string    `json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskMetadata - необязательные атрибуты, закодированные внутри description.
// Отдельно не персистится.
type TaskMetadata struct {
	Priority  TaskPriority `json:"priority,omitempty"`
	Category  string       `json:"category,omitempty"`
	Effort    *float64     `json:"effort,omitempty"`
	Impact    *float64     `json:"impact,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	StatusLux LuxStatus    `json:"statusLux,omitempty"`
}

// IsZero - пустой ли объект метаданных
func (m TaskMetadata) IsZero() bool {
	return m.Priority == "" && m.Category == "" && m.Effort == nil &&
		m.Impact == nil && m.Tags == nil && m.StatusLux == ""
}

// AssigneeView - краткая карточка исполнителя в ответе API
type AssigneeView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// TaskView - задача в том виде, в котором её отдаёт /api/tasks:
// чистый текст описания, санитизированные метаданные и выведенный lux-статус
type TaskView struct {
	ID          int           `json:"id"`
	WeddingID   string        `json:"weddingId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *string       `json:"dueDate"`
	Status      TaskStatus    `json:"status"`
	StatusLux   LuxStatus     `json:"statusLux"`
	AssigneeID  *string       `json:"assigneeId"`
	Assignee    *AssigneeView `json:"assignee"`
	Metadata    TaskMetadata  `json:"metadata"`
}

type CreateTaskRequest struct {
	WeddingID   string         `json:"weddingId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"dueDate"`
	StatusLux   LuxStatus      `json:"statusLux"`
	AssigneeID  string         `json:"assigneeId"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateTaskRequest struct {
	ID        *int           `json:"id"`
	StatusLux LuxStatus      `json:"statusLux"`
	Metadata  map[string]any `json:"metadata"`
}
