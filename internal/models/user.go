package models

import "time"

// User представляет зарегистрированного пользователя.
type User struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"ime"`
	LastName         string     `json:"prezime"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             Role       `json:"uloga"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"datumRegistracije"`
}

// RegisterRequest - данные самостоятельной регистрации клиента.
type RegisterRequest struct {
	FirstName string `json:"ime" validate:"required"`
	LastName  string `json:"prezime" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"lozinka" validate:"required,min=6"`
}

// CreateUserRequest - ручное создание пользователя администратором.
type CreateUserRequest struct {
	FirstName string `json:"ime"`
	LastName  string `json:"prezime"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"lozinka" validate:"required,min=6"`
	Role      string `json:"uloga" validate:"required"`
}

// LoginRequest - учётные данные для входа. Допускается старое поле korisnickoIme.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"korisnickoIme"`
	Password string `json:"lozinka"`
}

// Login возвращает адрес, по которому выполняется вход.
func (r LoginRequest) Login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// ResetPasswordRequest - установка нового пароля по токену сброса.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"novaLozinka" validate:"required,min=6"`
}

// ForgotPasswordRequest - запрос ссылки для смены пароля.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}
