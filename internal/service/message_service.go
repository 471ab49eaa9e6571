package service

import (
	"time"

	"roseboard/backend/internal/affirmation"
	"roseboard/backend/internal/clock"
)

type MessageView struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// MessageService renders the daily message for the server's current date.
// Nothing is cached; the generator is cheap and deterministic.
type MessageService struct {
	clock    clock.Clock
	location *time.Location
}

func NewMessageService(c clock.Clock, location *time.Location) *MessageService {
	if location == nil {
		location = time.Local
	}
	return &MessageService{clock: c, location: location}
}

func (s *MessageService) Today() MessageView {
	date := affirmation.DateKey(s.clock.Now().In(s.location))
	return MessageView{
		Message: affirmation.Generate(date),
		Date:    date,
	}
}
