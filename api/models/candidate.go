package models

import "github.com/arturoCrisanto/tabulator/storage"

type CandidateCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CandidateUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CandidateResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CandidateListResponse struct {
	EventID    string              `json:"eventId"`
	Count      int                 `json:"count"`
	Candidates []CandidateResponse `json:"candidates"`
}

func TransformCandidateFromStorage(c *storage.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		EventID:     c.EventID,
		Name:        c.Name,
		Description: c.Description,
	}
}
