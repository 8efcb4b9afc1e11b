package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wedlux/planner-service/internal/entity"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// создаем пользователя
func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {

	query := `
	INSERT INTO users (id, email, full_name, phone_number, password_hash, role)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, email, full_name, phone_number, password_hash, role, created_at
	`

	var created entity.User

	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
	).Scan(
		&created.ID,
		&created.Email,
		&created.FullName,
		&created.PhoneNumber,
		&created.PasswordHash,
		&created.Role,
		&created.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// получаем данные по id
func (r *UserRepository) GetById(ctx context.Context, id string) (*entity.User, error) {
	query := `
	SELECT id, email, full_name, phone_number, password_hash, role, created_at
	FROM users
	WHERE id = $1
	`
	var user entity.User

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// получаем данные по email (логин)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
	SELECT id, email, full_name, phone_number, password_hash, role, created_at
	FROM users
	WHERE email = $1
	`
	var user entity.User

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// ListByIds - записи участников одним запросом
func (r *UserRepository) ListByIds(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
	SELECT id, email, full_name, phone_number, password_hash, role, created_at
	FROM users
	WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.PhoneNumber,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
