package entity

import "time"

type UserRole string

const (
	RoleOrganizer UserRole = "organizer"
	RoleClient    UserRole = "client"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     *string    `json:"full_name,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	PasswordHash string     `json:"-"` // Никогда не отправляем пароль
	Role         UserRole   `json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DisplayName - имя с фолбэком на email, затем на "Unnamed"
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unnamed"
}

// TeamMember - участник команды свадьбы в ответе /api/tasks:
// объединение организатора, исполнителей задач и привязанных клиентов
type TeamMember struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Role  string  `json:"role"`
}

// Регистрация
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required, min=1, max=255"`
	Email    string `json:"email" validate:"required, email"`
	Password string `json:"password" validate:"required, min=8, max=255"`
	Role     string `json:"role"`
}

// Логин
type LoginRequest struct {
	Email    string `json:"email" validate:"required, email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// JWT Claims
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
