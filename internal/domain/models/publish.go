package models

import "time"

// PublishEvent сигнал "контент изменился"; несёт только штамп времени,
// слушатели перечитывают свои данные сами
type PublishEvent struct {
	Stamp string `json:"stamp"`
}

// NewPublishEvent создает событие с текущим временем
func NewPublishEvent() PublishEvent {
	return PublishEvent{Stamp: time.Now().UTC().Format(time.RFC3339Nano)}
}
