package models

import (
	"time"

	"github.com/arturoCrisanto/tabulator/storage"
)

type EventCreateRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type EventUpdateRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EventListResponse struct {
	Count  int             `json:"count"`
	Events []EventResponse `json:"events"`
}

type EventDetailResponse struct {
	Event      EventResponse       `json:"event"`
	Candidates []CandidateResponse `json:"candidates"`
	TotalVotes int                 `json:"totalVotes"`
}

func TransformEventFromStorage(e *storage.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
