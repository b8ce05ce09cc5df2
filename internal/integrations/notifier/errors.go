package notifier

import "errors"

var (
	// ErrDisabled возвращается, когда брокеры Kafka не настроены
	ErrDisabled = errors.New("notifier: kafka brokers are not configured")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("notifier: failed to publish event")
)
