package controllers

import (
	"net/http"

	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/api/transport"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/gin-gonic/gin"
)

type CandidateController struct {
	candidatesStorage storage.CandidateStorage
	eventsStorage     storage.EventStorage
	votesStorage      storage.VoteStorage
}

func NewCandidateController(candidateStorage storage.CandidateStorage, eventStorage storage.EventStorage, voteStorage storage.VoteStorage) *CandidateController {
	return &CandidateController{
		candidatesStorage: candidateStorage,
		eventsStorage:     eventStorage,
		votesStorage:      voteStorage,
	}
}

func (c *CandidateController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/events/:eventId/candidates", transport.AdminAuthMiddleware())

	group.GET("", c.list)
	group.POST("", c.create)
	group.PUT("/:candidateId", c.update)
	group.DELETE("/:candidateId", c.delete)
}

// @Security AdminToken
// @Summary List candidates for an event
// @Tags admin/candidates
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} models.CandidateListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/candidates [get]
func (c *CandidateController) list(g *gin.Context) {
	eventID := g.Param("eventId")

	candidates, err := c.candidatesStorage.ListByEvent(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list candidates for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	response := models.CandidateListResponse{
		EventID:    eventID,
		Count:      len(candidates),
		Candidates: make([]models.CandidateResponse, 0, len(candidates)),
	}
	for _, cand := range candidates {
		response.Candidates = append(response.Candidates, models.TransformCandidateFromStorage(cand))
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// @Summary Add a candidate to an event
// @Tags admin/candidates
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param candidate body models.CandidateCreateRequest true "Candidate"
// @Success 201 {object} models.CandidateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Event not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/candidates [post]
func (c *CandidateController) create(g *gin.Context) {
	eventID := g.Param("eventId")

	var req models.CandidateCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Name == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "candidate name is required"})
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

	candidate := &storage.Candidate{
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := c.candidatesStorage.Create(g.Request.Context(), candidate); err != nil {
		logging.Log.Errorf("ADMIN: failed to create candidate: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create candidate"})
		return
	}

	g.JSON(http.StatusCreated, models.TransformCandidateFromStorage(candidate))
}

// @Security AdminToken
// @Summary Update a candidate
// @Tags admin/candidates
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param candidateId path string true "Candidate ID"
// @Param candidate body models.CandidateUpdateRequest true "Candidate fields"
// @Success 200 {object} models.CandidateResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/candidates/{candidateId} [put]
func (c *CandidateController) update(g *gin.Context) {
	candidateID := g.Param("candidateId")

	var req models.CandidateUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	candidate, err := c.candidatesStorage.Get(g.Request.Context(), candidateID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get candidate %s: %v", candidateID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if candidate == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "candidate not found"})
		return
	}

	if req.Name != "" {
		candidate.Name = req.Name
	}
	if req.Description != "" {
		candidate.Description = req.Description
	}

	if err := c.candidatesStorage.Update(g.Request.Context(), candidate); err != nil {
		logging.Log.Errorf("ADMIN: failed to update candidate %s: %v", candidateID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update candidate"})
		return
	}
	g.JSON(http.StatusOK, models.TransformCandidateFromStorage(candidate))
}

// @Security AdminToken
// @Summary Delete a candidate and its votes
// @Tags admin/candidates
// @Produce json
// @Param eventId path string true "Event ID"
// @Param candidateId path string true "Candidate ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/candidates/{candidateId} [delete]
func (c *CandidateController) delete(g *gin.Context) {
	eventID := g.Param("eventId")
	candidateID := g.Param("candidateId")
	ctx := g.Request.Context()

	candidate, err := c.candidatesStorage.Get(ctx, candidateID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get candidate %s: %v", candidateID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if candidate == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "candidate not found"})
		return
	}

	if err := c.votesStorage.DeleteMany(ctx, storage.VoteFilter{EventID: eventID, CandidateID: candidateID}); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete votes for candidate %s: %v", candidateID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete candidate votes"})
		return
	}

	if err := c.candidatesStorage.Delete(ctx, candidateID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete candidate %s: %v", candidateID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete candidate"})
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "candidate deleted successfully"})
}
