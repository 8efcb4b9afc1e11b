package repository

import (
	"context"
	"time"

	"github.com/wedlux/planner-service/internal/entity"
)

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error)
	Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.Task, error)
	ListByWedding(ctx context.Context, weddingId string) ([]entity.Task, error)
}

// IWeddingRepository - интерфейс для WeddingRepository
type IWeddingRepository interface {
	Create(ctx context.Context, wedding *entity.Wedding) (*entity.Wedding, error)
	GetById(ctx context.Context, id string) (*entity.Wedding, error)
	GetEarliestByOrganizer(ctx context.Context, organizerId string) (*entity.Wedding, error)
	ListByOrganizer(ctx context.Context, organizerId string) ([]entity.Wedding, error)
	ListClientIds(ctx context.Context, weddingId string) ([]string, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetById(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByIds(ctx context.Context, ids []string) ([]entity.User, error)
}

// ITaskAuditRepository - интерфейс для TaskAuditRepository
type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	ListByEntityId(ctx context.Context, entityId int) ([]entity.TaskAudit, error)
}

// IRefreshTokenRepository - интерфейс для RefreshTokenRepository
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userId string, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userId string) error
	CleanupExpired(ctx context.Context) error
}
