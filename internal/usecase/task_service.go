package usecase

import (
	"context"
	"log"
	"time"

	"github.com/wedlux/planner-service/internal/board"
	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/repository"
	"github.com/wedlux/planner-service/internal/taskmeta"
)

// RabbitMQPublisher интерфейс для публикации в RabbitMQ
type RabbitMQPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type TaskService struct {
	taskRepo    repository.ITaskRepository
	weddingRepo repository.IWeddingRepository
	userRepo    repository.IUserRepository
	rabbitMQ    RabbitMQPublisher
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	weddingRepo repository.IWeddingRepository,
	userRepo repository.IUserRepository,
	rabbitMQ RabbitMQPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		weddingRepo: weddingRepo,
		userRepo:    userRepo,
		rabbitMQ:    rabbitMQ,
	}
}

// TaskBoardResponse - ответ GET /api/tasks
type TaskBoardResponse struct {
	Wedding entity.WeddingSummary `json:"wedding"`
	Tasks   []entity.TaskView     `json:"tasks"`
	Team    []entity.TeamMember   `json:"team"`
}

// TaskInsightsResponse - ответ GET /api/tasks/insights
type TaskInsightsResponse struct {
	Wedding  entity.WeddingSummary `json:"wedding"`
	Insights board.Insights        `json:"insights"`
}

const dateLayout = "2006-01-02"

// ListBoard - задачи свадьбы с декодированными метаданными и командой.
// weddingId пустой - берем хронологически ближайшую свадьбу организатора.
func (s *TaskService) ListBoard(ctx context.Context, userID string, weddingID string) (*TaskBoardResponse, error) {
	wedding, err := s.resolveWedding(ctx, userID, weddingID)
	if err != nil {
		return nil, err
	}

	rows, err := s.taskRepo.ListByWedding(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// порядок участников: организатор, затем исполнители, затем клиенты
	participantIDs := []string{wedding.OrganizerID}
	seen := map[string]bool{wedding.OrganizerID: true}

	for _, row := range rows {
		if row.AssigneeID != nil && *row.AssigneeID != "" && !seen[*row.AssigneeID] {
			seen[*row.AssigneeID] = true
			participantIDs = append(participantIDs, *row.AssigneeID)
		}
	}

	// вторичные выборки не валят запрос: при ошибке логируем и идем дальше
	clientIDs, err := s.weddingRepo.ListClientIds(ctx, wedding.ID)
	if err != nil {
		log.Printf("⚠️ Не удалось загрузить клиентов свадьбы: %v", err)
	} else {
		for _, id := range clientIDs {
			if id != "" && !seen[id] {
				seen[id] = true
				participantIDs = append(participantIDs, id)
			}
		}
	}

	users := map[string]*entity.User{}
	participants, err := s.userRepo.ListByIds(ctx, participantIDs)
	if err != nil {
		log.Printf("⚠️ Не удалось загрузить записи участников: %v", err)
	} else {
		for i := range participants {
			users[participants[i].ID] = &participants[i]
		}
	}

	tasks := make([]entity.TaskView, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, buildTaskView(&row, users, now))
	}

	team := make([]entity.TeamMember, 0, len(participantIDs))
	for _, id := range participantIDs {
		user, ok := users[id]
		if !ok {
			continue
		}
		role := "collaborator"
		if user.Role != "" {
			role = string(user.Role)
		}
		var email *string
		if user.Email != "" {
			e := user.Email
			email = &e
		}
		team = append(team, entity.TeamMember{
			ID:    user.ID,
			Name:  user.DisplayName(),
			Email: email,
			Role:  role,
		})
	}

	return &TaskBoardResponse{
		Wedding: wedding.Summary(),
		Tasks:   tasks,
		Team:    team,
	}, nil
}

// CreateTask - создает задачу: метаданные санитизируются и кодируются в
// description, statusLux (по умолчанию planning) проецируется в хранимый статус
func (s *TaskService) CreateTask(ctx context.Context, userID string, req *entity.CreateTaskRequest) (*entity.TaskView, error) {
	if req.Title == "" {
		return nil, entity.ErrTitleRequired
	}

	weddingID := req.WeddingID
	if weddingID == "" {
		wedding, err := s.weddingRepo.GetEarliestByOrganizer(ctx, userID)
		if err != nil {
			return nil, err
		}
		if wedding == nil {
			return nil, entity.ErrNoWeddingAvailable
		}
		weddingID = wedding.ID
	}

	safeMeta := taskmeta.Sanitize(req.Metadata)

	statusLux := req.StatusLux
	if statusLux == "" {
		statusLux = entity.LuxPlanning
	}

	task := &entity.Task{
		WeddingID:   weddingID,
		Title:       req.Title,
		Description: taskmeta.Encode(req.Description, safeMeta),
		DueDate:     parseDueDate(req.DueDate),
		Status:      taskmeta.MapLuxToTaskStatus(statusLux),
	}
	if req.AssigneeID != "" {
		assigneeID := req.AssigneeID
		task.AssigneeID = &assigneeID
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	view := s.viewWithAssignee(ctx, created, taskmeta.ToRaw(safeMeta))

	// Асинхронно отправляем аудит
	s.sendAuditMessage(ctx, entity.ActionCreate, userID, created.ID, nil, created, nil)

	return &view, nil
}

// UpdateTask - меняет статус через проекцию lux->supabase и/или сливает новые
// метаданные в существующий блок: входящие ключи перекрывают старые,
// отсутствующие во входящем payload сохраняются
func (s *TaskService) UpdateTask(ctx context.Context, userID string, req *entity.UpdateTaskRequest) (*entity.TaskView, error) {
	if req.ID == nil {
		return nil, entity.ErrTaskIDRequired
	}

	updates := make(map[string]interface{})
	incomingRaw := map[string]any{}

	if req.StatusLux != "" {
		updates["status"] = taskmeta.MapLuxToTaskStatus(req.StatusLux)
	}

	var oldTask *entity.Task
	if req.Metadata != nil {
		existing, err := s.taskRepo.GetByTaskId(ctx, *req.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, entity.ErrTaskNotFound
		}
		oldTask = existing

		clean, existingRaw := taskmeta.Decode(existing.Description)
		merged := taskmeta.Sanitize(taskmeta.Merge(existingRaw, req.Metadata))
		updates["description"] = taskmeta.Encode(clean, merged)
		incomingRaw = taskmeta.ToRaw(merged)
	}

	if len(updates) == 0 {
		return nil, entity.ErrNoFieldsToUpdate
	}

	updated, err := s.taskRepo.Update(ctx, *req.ID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTaskNotFound
	}

	view := s.viewWithAssignee(ctx, updated, incomingRaw)

	// Асинхронно отправляем аудит
	s.sendAuditMessage(ctx, entity.ActionUpdate, userID, updated.ID, oldTask, updated, updates)

	return &view, nil
}

// Insights - серверные роллапы борда: momentum, readiness, категории,
// нагрузка команды и временные окна от единого снапшота now
func (s *TaskService) Insights(ctx context.Context, userID string, weddingID string) (*TaskInsightsResponse, error) {
	response, err := s.ListBoard(ctx, userID, weddingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	derived := make([]board.BoardTask, 0, len(response.Tasks))
	for _, view := range response.Tasks {
		derived = append(derived, board.DeriveTask(view, now))
	}

	return &TaskInsightsResponse{
		Wedding:  response.Wedding,
		Insights: board.BuildInsights(derived, now),
	}, nil
}

// resolveWedding - явный id должен существовать и принадлежать вызывающему,
// иначе дефолтимся на ближайшую по дате свадьбу
func (s *TaskService) resolveWedding(ctx context.Context, userID string, weddingID string) (*entity.Wedding, error) {
	if weddingID != "" {
		wedding, err := s.weddingRepo.GetById(ctx, weddingID)
		if err != nil {
			return nil, err
		}
		if wedding == nil || wedding.OrganizerID != userID {
			return nil, entity.ErrWeddingNotFound
		}
		return wedding, nil
	}

	wedding, err := s.weddingRepo.GetEarliestByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wedding == nil {
		return nil, entity.ErrNoWeddingAvailable
	}
	return wedding, nil
}

// viewWithAssignee - собирает карточку задачи для ответа; провал загрузки
// исполнителя не фатален
func (s *TaskService) viewWithAssignee(ctx context.Context, task *entity.Task, incomingRaw map[string]any) entity.TaskView {
	users := map[string]*entity.User{}
	if task.AssigneeID != nil && *task.AssigneeID != "" {
		user, err := s.userRepo.GetById(ctx, *task.AssigneeID)
		if err != nil {
			log.Printf("⚠️ Не удалось загрузить исполнителя задачи: %v", err)
		} else if user != nil {
			users[user.ID] = user
		}
	}

	view := buildTaskView(task, users, time.Now())

	// сохраненный блок поверх входящего, затем повторная санитизация
	_, storedRaw := taskmeta.Decode(task.Description)
	view.Metadata = taskmeta.Sanitize(taskmeta.Merge(incomingRaw, storedRaw))
	view.StatusLux = taskmeta.InferLuxStatus(task.Status, view.Metadata, task.DueDate, time.Now())

	return view
}

// buildTaskView - декодирование, санитизация и вывод lux-статуса одной строки
func buildTaskView(task *entity.Task, users map[string]*entity.User, now time.Time) entity.TaskView {
	clean, raw := taskmeta.Decode(task.Description)
	meta := taskmeta.Sanitize(raw)
	statusLux := taskmeta.InferLuxStatus(task.Status, meta, task.DueDate, now)

	var dueDate *string
	if task.DueDate != nil {
		d := task.DueDate.Format(dateLayout)
		dueDate = &d
	}

	var assignee *entity.AssigneeView
	if task.AssigneeID != nil {
		if user, ok := users[*task.AssigneeID]; ok {
			var email *string
			if user.Email != "" {
				e := user.Email
				email = &e
			}
			assignee = &entity.AssigneeView{
				ID:    user.ID,
				Name:  user.DisplayName(),
				Email: email,
			}
		}
	}

	return entity.TaskView{
		ID:          task.ID,
		WeddingID:   task.WeddingID,
		Title:       task.Title,
		Description: clean,
		DueDate:     dueDate,
		Status:      task.Status,
		StatusLux:   statusLux,
		AssigneeID:  task.AssigneeID,
		Assignee:    assignee,
		Metadata:    meta,
	}
}

func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		log.Printf("⚠️ Невалидная дата дедлайна %q, игнорируем", value)
		return nil
	}
	return &parsed
}

// Вспомогательный метод для отправки аудита
func (s *TaskService) sendAuditMessage(
	ctx context.Context,
	action entity.ActionType,
	userID string,
	taskID int,
	oldTask *entity.Task,
	newTask *entity.Task,
	updates map[string]interface{},
) {
	auditMsg := &entity.AuditMessage{
		Action:    action,
		UserID:    userID,
		EntityID:  taskID,
		Timestamp: time.Now(),
	}

	// Заполняем данные в зависимости от действия
	switch action {
	case entity.ActionCreate:
		if newTask != nil {
			auditMsg.NewValues = map[string]interface{}{
				"title":       newTask.Title,
				"description": newTask.Description,
				"status":      newTask.Status,
				"wedding_id":  newTask.WeddingID,
			}
		}

	case entity.ActionUpdate:
		if newTask != nil {
			auditMsg.NewValues = map[string]interface{}{
				"description": newTask.Description,
				"status":      newTask.Status,
			}
		}
		if oldTask != nil && newTask != nil {
			auditMsg.OldValues = map[string]interface{}{
				"description": oldTask.Description,
				"status":      oldTask.Status,
			}
			// Вычисляем изменения
			changes := make(map[string]interface{})
			if oldTask.Description != newTask.Description {
				changes["description"] = map[string]interface{}{"old": oldTask.Description, "new": newTask.Description}
			}
			if oldTask.Status != newTask.Status {
				changes["status"] = map[string]interface{}{"old": oldTask.Status, "new": newTask.Status}
			}
			auditMsg.Changes = changes
		}
	}

	// Асинхронная отправка в RabbitMQ
	go func() {
		if err := s.rabbitMQ.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("❌ Ошибка отправки аудита в RabbitMQ: %v", err)
		}
	}()
}
