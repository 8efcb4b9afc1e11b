package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/repository"
	"github.com/wedlux/planner-service/internal/taskmeta"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc        func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByTaskIdFunc   func(ctx context.Context, taskId int) (*entity.Task, error)
	UpdateFunc        func(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error)
	ListByWeddingFunc func(ctx context.Context, weddingId string) ([]entity.Task, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, nil
}

func (m *MockTaskRepository) ListByWedding(ctx context.Context, weddingId string) ([]entity.Task, error) {
	if m.ListByWeddingFunc != nil {
		return m.ListByWeddingFunc(ctx, weddingId)
	}
	return nil, nil
}

// MockWeddingRepository - мок для IWeddingRepository
type MockWeddingRepository struct {
	CreateFunc                 func(ctx context.Context, wedding *entity.Wedding) (*entity.Wedding, error)
	GetByIdFunc                func(ctx context.Context, id string) (*entity.Wedding, error)
	GetEarliestByOrganizerFunc func(ctx context.Context, organizerId string) (*entity.Wedding, error)
	ListByOrganizerFunc        func(ctx context.Context, organizerId string) ([]entity.Wedding, error)
	ListClientIdsFunc          func(ctx context.Context, weddingId string) ([]string, error)
}

var _ repository.IWeddingRepository = (*MockWeddingRepository)(nil)

func (m *MockWeddingRepository) Create(ctx context.Context, wedding *entity.Wedding) (*entity.Wedding, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wedding)
	}
	return nil, nil
}

func (m *MockWeddingRepository) GetById(ctx context.Context, id string) (*entity.Wedding, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWeddingRepository) GetEarliestByOrganizer(ctx context.Context, organizerId string) (*entity.Wedding, error) {
	if m.GetEarliestByOrganizerFunc != nil {
		return m.GetEarliestByOrganizerFunc(ctx, organizerId)
	}
	return nil, nil
}

func (m *MockWeddingRepository) ListByOrganizer(ctx context.Context, organizerId string) ([]entity.Wedding, error) {
	if m.ListByOrganizerFunc != nil {
		return m.ListByOrganizerFunc(ctx, organizerId)
	}
	return nil, nil
}

func (m *MockWeddingRepository) ListClientIds(ctx context.Context, weddingId string) ([]string, error) {
	if m.ListClientIdsFunc != nil {
		return m.ListClientIdsFunc(ctx, weddingId)
	}
	return nil, nil
}

// MockUserRepository - мок для IUserRepository
type MockUserRepository struct {
	CreateFunc     func(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByIdFunc    func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	ListByIdsFunc  func(ctx context.Context, ids []string) ([]entity.User, error)
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, nil
}

func (m *MockUserRepository) GetById(ctx context.Context, id string) (*entity.User, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ListByIds(ctx context.Context, ids []string) ([]entity.User, error) {
	if m.ListByIdsFunc != nil {
		return m.ListByIdsFunc(ctx, ids)
	}
	return nil, nil
}

// MockRabbitMQPublisher - мок для RabbitMQPublisher
type MockRabbitMQPublisher struct {
	PublishAuditMessageFunc func(ctx context.Context, message *entity.AuditMessage) error
}

func (m *MockRabbitMQPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	if m.PublishAuditMessageFunc != nil {
		return m.PublishAuditMessageFunc(ctx, message)
	}
	return nil
}

func newTaskService(taskRepo *MockTaskRepository, weddingRepo *MockWeddingRepository, userRepo *MockUserRepository) *TaskService {
	return NewTaskService(taskRepo, weddingRepo, userRepo, &MockRabbitMQPublisher{})
}

func strPtr(s string) *string { return &s }

// Tests

func TestCreateTaskSuccess(t *testing.T) {
	ctx := context.Background()

	var captured *entity.Task
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			captured = task
			created := *task
			created.ID = 1
			return &created, nil
		},
	}

	service := newTaskService(mockTaskRepo, &MockWeddingRepository{}, &MockUserRepository{})

	req := &entity.CreateTaskRequest{
		WeddingID:   "w1",
		Title:       "Book the florist",
		Description: "Peonies and ranunculus",
		DueDate:     "2026-06-15",
		Metadata:    map[string]any{"priority": "high", "category": "Design"},
	}

	result, err := service.CreateTask(ctx, "org1", req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if captured == nil {
		t.Fatal("Expected task repo Create to be called")
	}

	// дефолтный statusLux planning проецируется в todo
	if captured.Status != entity.StatusTodo {
		t.Errorf("Expected stored status todo, got %s", captured.Status)
	}

	if !strings.Contains(captured.Description, taskmeta.MetadataPrefix) {
		t.Errorf("Expected encoded metadata block in description, got %q", captured.Description)
	}

	if result.Title != "Book the florist" {
		t.Errorf("Expected title to survive, got %s", result.Title)
	}

	if result.Description != "Peonies and ranunculus" {
		t.Errorf("Expected clean description in view, got %q", result.Description)
	}

	if result.Metadata.Priority != entity.PriorityHigh {
		t.Errorf("Expected priority high in view, got %s", result.Metadata.Priority)
	}
}

func TestCreateTaskTitleRequired(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockWeddingRepository{}, &MockUserRepository{})

	result, err := service.CreateTask(ctx, "org1", &entity.CreateTaskRequest{})
	if err != entity.ErrTitleRequired {
		t.Errorf("Expected ErrTitleRequired, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestCreateTaskNoWeddingAvailable(t *testing.T) {
	ctx := context.Background()

	mockWeddingRepo := &MockWeddingRepository{
		GetEarliestByOrganizerFunc: func(ctx context.Context, organizerId string) (*entity.Wedding, error) {
			return nil, nil // No weddings
		},
	}

	service := newTaskService(&MockTaskRepository{}, mockWeddingRepo, &MockUserRepository{})

	req := &entity.CreateTaskRequest{Title: "Task without wedding"}

	result, err := service.CreateTask(ctx, "org1", req)
	if err != entity.ErrNoWeddingAvailable {
		t.Errorf("Expected ErrNoWeddingAvailable, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestCreateTaskDefaultsToEarliestWedding(t *testing.T) {
	ctx := context.Background()

	mockWeddingRepo := &MockWeddingRepository{
		GetEarliestByOrganizerFunc: func(ctx context.Context, organizerId string) (*entity.Wedding, error) {
			return &entity.Wedding{ID: "w-earliest", OrganizerID: organizerId}, nil
		},
	}

	var capturedWeddingID string
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			capturedWeddingID = task.WeddingID
			created := *task
			created.ID = 2
			return &created, nil
		},
	}

	service := newTaskService(mockTaskRepo, mockWeddingRepo, &MockUserRepository{})

	_, err := service.CreateTask(ctx, "org1", &entity.CreateTaskRequest{Title: "Task"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if capturedWeddingID != "w-earliest" {
		t.Errorf("Expected task bound to earliest wedding, got %s", capturedWeddingID)
	}
}

func TestUpdateTaskIDRequired(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockWeddingRepository{}, &MockUserRepository{})

	result, err := service.UpdateTask(ctx, "org1", &entity.UpdateTaskRequest{StatusLux: entity.LuxReview})
	if err != entity.ErrTaskIDRequired {
		t.Errorf("Expected ErrTaskIDRequired, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestUpdateTaskNoFields(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockWeddingRepository{}, &MockUserRepository{})

	id := 1
	result, err := service.UpdateTask(ctx, "org1", &entity.UpdateTaskRequest{ID: &id})
	if err != entity.ErrNoFieldsToUpdate {
		t.Errorf("Expected ErrNoFieldsToUpdate, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	ctx := context.Background()

	mockTaskRepo := &MockTaskRepository{
		GetByTaskIdFunc: func(ctx context.Context, taskId int) (*entity.Task, error) {
			return nil, nil // Task not found
		},
	}

	service := newTaskService(mockTaskRepo, &MockWeddingRepository{}, &MockUserRepository{})

	id := 999
	req := &entity.UpdateTaskRequest{
		ID:       &id,
		Metadata: map[string]any{"priority": "high"},
	}

	result, err := service.UpdateTask(ctx, "org1", req)
	if err != entity.ErrTaskNotFound {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestUpdateTaskStatusProjection(t *testing.T) {
	ctx := context.Background()

	var capturedUpdates map[string]interface{}
	mockTaskRepo := &MockTaskRepository{
		UpdateFunc: func(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error) {
			capturedUpdates = updates
			return &entity.Task{ID: id, Title: "Task", Status: entity.StatusInProgress}, nil
		},
	}

	service := newTaskService(mockTaskRepo, &MockWeddingRepository{}, &MockUserRepository{})

	id := 1
	result, err := service.UpdateTask(ctx, "org1", &entity.UpdateTaskRequest{ID: &id, StatusLux: entity.LuxReview})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// review проецируется в in_progress
	if capturedUpdates["status"] != entity.StatusInProgress {
		t.Errorf("Expected status update in_progress, got %v", capturedUpdates["status"])
	}

	if result.Status != entity.StatusInProgress {
		t.Errorf("Expected in_progress in view, got %s", result.Status)
	}
}

func TestUpdateTaskMergesMetadata(t *testing.T) {
	ctx := context.Background()

	existingMeta := entity.TaskMetadata{Priority: entity.PriorityLow, Category: "Design"}
	existing := &entity.Task{
		ID:          1,
		Title:       "Book the florist",
		Description: taskmeta.Encode("Book the florist", existingMeta),
		Status:      entity.StatusTodo,
	}

	var capturedDescription string
	mockTaskRepo := &MockTaskRepository{
		GetByTaskIdFunc: func(ctx context.Context, taskId int) (*entity.Task, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error) {
			capturedDescription = updates["description"].(string)
			updated := *existing
			updated.Description = capturedDescription
			return &updated, nil
		},
	}

	service := newTaskService(mockTaskRepo, &MockWeddingRepository{}, &MockUserRepository{})

	id := 1
	req := &entity.UpdateTaskRequest{
		ID:       &id,
		Metadata: map[string]any{"priority": "critical"},
	}

	result, err := service.UpdateTask(ctx, "org1", req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, mergedRaw := taskmeta.Decode(capturedDescription)
	merged := taskmeta.Sanitize(mergedRaw)

	// входящий ключ перекрывает старый
	if merged.Priority != entity.PriorityCritical {
		t.Errorf("Expected merged priority critical, got %s", merged.Priority)
	}

	// отсутствующий во входящем payload ключ сохраняется
	if merged.Category != "Design" {
		t.Errorf("Expected category Design to be preserved, got %s", merged.Category)
	}

	if result.Metadata.Priority != entity.PriorityCritical {
		t.Errorf("Expected priority critical in view, got %s", result.Metadata.Priority)
	}
}

func TestListBoardWeddingNotFound(t *testing.T) {
	ctx := context.Background()

	mockWeddingRepo := &MockWeddingRepository{
		GetByIdFunc: func(ctx context.Context, id string) (*entity.Wedding, error) {
			return &entity.Wedding{ID: id, OrganizerID: "someone-else"}, nil
		},
	}

	service := newTaskService(&MockTaskRepository{}, mockWeddingRepo, &MockUserRepository{})

	// чужая свадьба неотличима от несуществующей
	result, err := service.ListBoard(ctx, "org1", "w1")
	if err != entity.ErrWeddingNotFound {
		t.Errorf("Expected ErrWeddingNotFound, got %v", err)
	}

	if result != nil {
		t.Errorf("Expected nil response, got %v", result)
	}
}

func TestListBoardNoWeddings(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockWeddingRepository{}, &MockUserRepository{})

	_, err := service.ListBoard(ctx, "org1", "")
	if err != entity.ErrNoWeddingAvailable {
		t.Errorf("Expected ErrNoWeddingAvailable, got %v", err)
	}
}

func TestListBoardTeamOrder(t *testing.T) {
	ctx := context.Background()

	partner1 := "Ann"
	partner2 := "Bob"
	wedding := &entity.Wedding{
		ID:           "w1",
		OrganizerID:  "org1",
		WeddingTitle: "Spring wedding",
		Partner1Name: &partner1,
		Partner2Name: &partner2,
	}

	mockWeddingRepo := &MockWeddingRepository{
		GetByIdFunc: func(ctx context.Context, id string) (*entity.Wedding, error) {
			return wedding, nil
		},
		ListClientIdsFunc: func(ctx context.Context, weddingId string) ([]string, error) {
			return []string{"client1", "org1"}, nil
		},
	}

	mockTaskRepo := &MockTaskRepository{
		ListByWeddingFunc: func(ctx context.Context, weddingId string) ([]entity.Task, error) {
			return []entity.Task{
				{ID: 1, WeddingID: weddingId, Title: "Task", Status: entity.StatusTodo, AssigneeID: strPtr("assignee1")},
			}, nil
		},
	}

	organizerName := "Olivia"
	mockUserRepo := &MockUserRepository{
		ListByIdsFunc: func(ctx context.Context, ids []string) ([]entity.User, error) {
			return []entity.User{
				{ID: "org1", Email: "olivia@wedlux.io", FullName: &organizerName, Role: entity.RoleOrganizer},
				{ID: "assignee1", Email: "sam@wedlux.io"},
				{ID: "client1", Email: "client@wedlux.io", Role: entity.RoleClient},
			}, nil
		},
	}

	service := newTaskService(mockTaskRepo, mockWeddingRepo, mockUserRepo)

	result, err := service.ListBoard(ctx, "org1", "w1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Wedding.Couple != "Ann & Bob" {
		t.Errorf("Expected couple label, got %s", result.Wedding.Couple)
	}

	// организатор, затем исполнители, затем клиенты; дубликаты схлопываются
	if len(result.Team) != 3 {
		t.Fatalf("Expected 3 team members, got %d", len(result.Team))
	}

	if result.Team[0].ID != "org1" || result.Team[1].ID != "assignee1" || result.Team[2].ID != "client1" {
		t.Errorf("Unexpected team order: %s, %s, %s", result.Team[0].ID, result.Team[1].ID, result.Team[2].ID)
	}

	if result.Team[0].Name != "Olivia" {
		t.Errorf("Expected organizer display name, got %s", result.Team[0].Name)
	}

	// у пользователя без роли дефолт collaborator
	if result.Team[1].Role != "collaborator" {
		t.Errorf("Expected collaborator role fallback, got %s", result.Team[1].Role)
	}

	if len(result.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(result.Tasks))
	}

	if result.Tasks[0].Assignee == nil || result.Tasks[0].Assignee.Name != "sam@wedlux.io" {
		t.Errorf("Expected assignee card with email fallback name")
	}
}

func TestListBoardSurvivesParticipantLookupFailure(t *testing.T) {
	ctx := context.Background()

	mockWeddingRepo := &MockWeddingRepository{
		GetEarliestByOrganizerFunc: func(ctx context.Context, organizerId string) (*entity.Wedding, error) {
			return &entity.Wedding{ID: "w1", OrganizerID: organizerId, WeddingTitle: "Wedding"}, nil
		},
		ListClientIdsFunc: func(ctx context.Context, weddingId string) ([]string, error) {
			return nil, context.DeadlineExceeded
		},
	}

	mockUserRepo := &MockUserRepository{
		ListByIdsFunc: func(ctx context.Context, ids []string) ([]entity.User, error) {
			return nil, context.DeadlineExceeded
		},
	}

	service := newTaskService(&MockTaskRepository{}, mockWeddingRepo, mockUserRepo)

	// вторичные выборки не валят запрос
	result, err := service.ListBoard(ctx, "org1", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Team) != 0 {
		t.Errorf("Expected empty team, got %d members", len(result.Team))
	}
}

func TestInsightsFromBoard(t *testing.T) {
	ctx := context.Background()

	dueSoon := time.Now().AddDate(0, 0, 1)

	mockWeddingRepo := &MockWeddingRepository{
		GetEarliestByOrganizerFunc: func(ctx context.Context, organizerId string) (*entity.Wedding, error) {
			return &entity.Wedding{ID: "w1", OrganizerID: organizerId, WeddingTitle: "Wedding"}, nil
		},
	}

	mockTaskRepo := &MockTaskRepository{
		ListByWeddingFunc: func(ctx context.Context, weddingId string) ([]entity.Task, error) {
			return []entity.Task{
				{ID: 1, WeddingID: weddingId, Title: "Floral design", Status: entity.StatusDone},
				{ID: 2, WeddingID: weddingId, Title: "Tasting menu", Status: entity.StatusInProgress, DueDate: &dueSoon},
			}, nil
		},
	}

	service := newTaskService(mockTaskRepo, mockWeddingRepo, &MockUserRepository{})

	result, err := service.Insights(ctx, "org1", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Insights.TotalTasks != 2 {
		t.Errorf("Expected 2 tasks, got %d", result.Insights.TotalTasks)
	}

	if result.Insights.CompletedCount != 1 {
		t.Errorf("Expected 1 completed, got %d", result.Insights.CompletedCount)
	}

	if result.Insights.ProgressPercent != 50 {
		t.Errorf("Expected 50%% progress, got %d", result.Insights.ProgressPercent)
	}

	// горящий in_progress читается как review
	review := result.Insights.Board[entity.LuxReview]
	if len(review) != 1 || review[0].ID != 2 {
		t.Errorf("Expected task 2 in review column, got %v", review)
	}
}
