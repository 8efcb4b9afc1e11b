package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wedlux/planner-service/internal/entity"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {

	query := `
	INSERT INTO tasks (wedding_id, title, description, due_date, status, assignee_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, wedding_id, title, description, due_date, status, assignee_id, created_at, updated_at
	`

	var createdTask entity.Task
	err := r.db.QueryRow(ctx, query,
		task.WeddingID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.AssigneeID,
	).Scan(
		&createdTask.ID,
		&createdTask.WeddingID,
		&createdTask.Title,
		&createdTask.Description,
		&createdTask.DueDate,
		&createdTask.Status,
		&createdTask.AssigneeID,
		&createdTask.CreatedAt,
		&createdTask.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &createdTask, nil
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {

	query := `
	SELECT id, wedding_id, title, description, due_date, status, assignee_id, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	var task entity.Task

	err := r.db.QueryRow(ctx, query, taskId).Scan(
		&task.ID,
		&task.WeddingID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.AssigneeID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// Update - обновление задачи, last-write-wins на уровне строки
func (r *TaskRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error) {
	// Динамически строим SET часть запроса
	setClause := ""
	args := []interface{}{}
	argIndex := 1

	for field, value := range updates {
		if field == "updated_at" {
			continue // не обновляем вручную
		}
		if argIndex > 1 {
			setClause += ", "
		}
		setClause += field + " = $" + strconv.Itoa(argIndex)
		args = append(args, value)
		argIndex++
	}

	// Добавляем обновление updated_at
	if argIndex > 1 {
		setClause += ", updated_at = CURRENT_TIMESTAMP"
	}

	query := `
        UPDATE tasks
        SET ` + setClause + `
        WHERE id = $` + strconv.Itoa(argIndex) + `
        RETURNING id, wedding_id, title, description, due_date, status, assignee_id, created_at, updated_at
    `
	args = append(args, id)

	var task entity.Task
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&task.ID,
		&task.WeddingID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.AssigneeID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// ListByWedding - задачи свадьбы, отсортированные по дедлайну
func (r *TaskRepository) ListByWedding(ctx context.Context, weddingId string) ([]entity.Task, error) {
	query := `
	SELECT id, wedding_id, title, description, due_date, status, assignee_id, created_at, updated_at
	FROM tasks
	WHERE wedding_id = $1
	ORDER BY due_date ASC NULLS LAST, id ASC
	`

	rows, err := r.db.Query(ctx, query, weddingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		var task entity.Task
		err := rows.Scan(
			&task.ID,
			&task.WeddingID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Status,
			&task.AssigneeID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
