// Package password отвечает за хеширование паролей пользователей.
// Хеши считаются через bcrypt и хранятся в колонке users.password_hash.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash возвращает bcrypt-хеш пароля со стандартной стоимостью.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hash), nil
}

// CompareHash проверяет пароль против сохранённого хеша.
// Возвращает nil при совпадении.
func CompareHash(storedHash, password string) error {
	const op = "password.CompareHash"

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
