package controllers

import (
	"net/http"

	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/api/transport"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoriesStorage storage.CategoryStorage
	eventsStorage     storage.EventStorage
	votesStorage      storage.VoteStorage
}

func NewCategoryController(categoryStorage storage.CategoryStorage, eventStorage storage.EventStorage, voteStorage storage.VoteStorage) *CategoryController {
	return &CategoryController{
		categoriesStorage: categoryStorage,
		eventsStorage:     eventStorage,
		votesStorage:      voteStorage,
	}
}

func (c *CategoryController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/events/:eventId/categories", transport.AdminAuthMiddleware())

	group.GET("", c.list)
	group.POST("", c.create)
	group.PUT("/:categoryId", c.update)
	group.DELETE("/:categoryId", c.delete)
}

// @Security AdminToken
// list godoc
// @Summary List categories for an event
// @Tags admin/categories
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} models.CategoryListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/categories [get]
func (c *CategoryController) list(g *gin.Context) {
	eventID := g.Param("eventId")

	categories, err := c.categoriesStorage.ListByEvent(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list categories for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	response := models.CategoryListResponse{
		EventID:    eventID,
		Count:      len(categories),
		Categories: make([]models.CategoryResponse, 0, len(categories)),
	}
	for _, cat := range categories {
		response.Categories = append(response.Categories, models.TransformCategoryFromStorage(cat))
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// create godoc
// @Summary Add a category to an event
// @Tags admin/categories
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param category body models.CategoryCreateRequest true "Category"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Event not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/categories [post]
func (c *CategoryController) create(g *gin.Context) {
	eventID := g.Param("eventId")

	var req models.CategoryCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Name == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "category name is required"})
		return
	}

	event, err := c.eventsStorage.Get(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if event == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "event not found"})
		return
	}

	category := &storage.Category{
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := c.categoriesStorage.Create(g.Request.Context(), category); err != nil {
		logging.Log.Errorf("ADMIN: failed to create category: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create category"})
		return
	}

	g.JSON(http.StatusCreated, models.TransformCategoryFromStorage(category))
}

// @Security AdminToken
// update godoc
// @Summary Update a category
// @Tags admin/categories
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param categoryId path string true "Category ID"
// @Param category body models.CategoryUpdateRequest true "Category fields"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/categories/{categoryId} [put]
func (c *CategoryController) update(g *gin.Context) {
	categoryID := g.Param("categoryId")

	var req models.CategoryUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	category, err := c.categoriesStorage.Get(g.Request.Context(), categoryID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get category %s: %v", categoryID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if category == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "category not found"})
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := c.categoriesStorage.Update(g.Request.Context(), category); err != nil {
		logging.Log.Errorf("ADMIN: failed to update category %s: %v", categoryID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update category"})
		return
	}
	g.JSON(http.StatusOK, models.TransformCategoryFromStorage(category))
}

// @Security AdminToken
// delete godoc
// @Summary Delete a category and its votes
// @Tags admin/categories
// @Produce json
// @Param eventId path string true "Event ID"
// @Param categoryId path string true "Category ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/categories/{categoryId} [delete]
func (c *CategoryController) delete(g *gin.Context) {
	eventID := g.Param("eventId")
	categoryID := g.Param("categoryId")
	ctx := g.Request.Context()

	category, err := c.categoriesStorage.Get(ctx, categoryID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get category %s: %v", categoryID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if category == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "category not found"})
		return
	}

	if err := c.votesStorage.DeleteMany(ctx, storage.VoteFilter{EventID: eventID, CategoryID: categoryID}); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete votes for category %s: %v", categoryID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete category votes"})
		return
	}

	if err := c.categoriesStorage.Delete(ctx, categoryID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete category %s: %v", categoryID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete category"})
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "category deleted successfully"})
}
