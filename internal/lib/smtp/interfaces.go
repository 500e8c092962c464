// Package smtp реализует транспорт для отправки писем через SMTP с STARTTLS.
package smtp

import "io"

// Client описывает минимальный интерфейс SMTP клиента,
// необходимый сервису отправки писем.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
