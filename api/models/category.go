package models

import "github.com/arturoCrisanto/tabulator/storage"

type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryListResponse struct {
	EventID    string             `json:"eventId"`
	Count      int                `json:"count"`
	Categories []CategoryResponse `json:"categories"`
}

func TransformCategoryFromStorage(c *storage.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		EventID:     c.EventID,
		Name:        c.Name,
		Description: c.Description,
	}
}
