package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// PremiumAccessStatus и PremiumAccessEndDate — денормализованная сводка
// текущего окна доступа, обновляется в одной транзакции с записями журнала.
type User struct {
	UUID                 string     // Уникальный идентификатор пользователя
	Email                string     // Электронная почта
	Username             string     // Имя пользователя (уникальное)
	PasswordHash         string     // Хэш пароля пользователя
	Role                 string     // Роль пользователя, admin или user
	PremiumAccessStatus  string     // premium или free
	PremiumAccessEndDate *time.Time // Дата окончания текущего премиум-доступа
	CreatedAt            time.Time  // Дата регистрации
}

// DummyRegister используется для приёма запроса регистрации.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin используется для приёма запроса аутентификации.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
