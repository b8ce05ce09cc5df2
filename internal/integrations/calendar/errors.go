package calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календаря
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrUnauthorized возвращается, когда календарь отклонил API ключ
	ErrUnauthorized = errors.New("calendar client: unauthorized")
)
