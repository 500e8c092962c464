// Package auth содержит логику регистрации, аутентификации и валидации JWT.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/anime-stream/internal/lib/jwt"
	"github.com/magabrotheeeer/anime-stream/internal/lib/password"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByLogin возвращает пользователя по имени или email, либо (nil, nil).
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля. Новый
// пользователь получает роль user и статус доступа free.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:               email,
		Username:            username,
		PasswordHash:        hashed,
		Role:                "user", // дефолтная роль при регистрации
		PremiumAccessStatus: models.AccessStatusFree,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя по имени или email и генерирует JWT.
func (s *Service) Login(ctx context.Context, login, rawPassword string) (token string, user *models.User, err error) {
	user, err = s.users.GetUserByLogin(ctx, login)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе,
// роль и признак валидности.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UUID:     claims.UserUID,
	}
	return user, claims.Role, true, nil
}
