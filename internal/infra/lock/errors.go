package lock

import "errors"

var (
	// ErrSlotLocked возвращается, когда интервал уже резервирует другой запрос
	ErrSlotLocked = errors.New("slot lock: interval is being booked by another request")

	// ErrUnexpectedResult возвращается при неожиданном ответе скрипта Redis
	ErrUnexpectedResult = errors.New("slot lock: unexpected redis result")
)
