package events

import "errors"

var (
	// ErrMarshal ошибка сериализации события
	ErrMarshal = errors.New("events.publisher: failed to marshal event")

	// ErrPublish ошибка отправки события в Kafka
	ErrPublish = errors.New("events.publisher: failed to publish event")
)
