// Package sl содержит небольшие помощники для структурированного логирования.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут лога с ключом "error".
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// UID оборачивает идентификатор пользователя в атрибут лога с ключом "user_uid".
func UID(userUID string) slog.Attr {
	return slog.String("user_uid", userUID)
}
