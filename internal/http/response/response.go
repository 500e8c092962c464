// Package response задаёт единый формат JSON-ответов API: конверт
// со статусом, текстом ошибки и полезными данными.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response — конверт ответа сервера.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — тип ошибки для аннотаций @Failure в Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// Возможные значения поля Status.
const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный конверт с данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает конверт с текстом ошибки.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError собирает нарушения валидации в один человеко-читаемый
// текст, объединяя сообщения через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, validationMessage(err))
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}

func validationMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", err.Field())
	case "alphanum":
		return fmt.Sprintf("field %s can contain only numbers and letters", err.Field())
	case "numeric":
		return fmt.Sprintf("field %s can contain only numbers", err.Field())
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("field %s is too short", err.Field())
	case "gt":
		return fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("field %s must be %s or greater", err.Field(), err.Param())
	default:
		return fmt.Sprintf("field %s is not valid", err.Field())
	}
}
