package models

import (
	"time"

	"github.com/arturoCrisanto/tabulator/storage"
)

type JudgeCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JudgeUpdateRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

type JudgeResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type JudgeListResponse struct {
	EventID string          `json:"eventId"`
	Count   int             `json:"count"`
	Judges  []JudgeResponse `json:"judges"`
}

func TransformJudgeFromStorage(j *storage.Judge) JudgeResponse {
	return JudgeResponse{
		ID:        j.ID,
		EventID:   j.EventID,
		Name:      j.Name,
		Email:     j.Email,
		Active:    j.Active,
		CreatedAt: j.CreatedAt,
	}
}
