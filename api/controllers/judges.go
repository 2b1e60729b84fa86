package controllers

import (
	"net/http"

	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/api/transport"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/gin-gonic/gin"
)

type JudgeController struct {
	judgesStorage storage.JudgeStorage
	eventsStorage storage.EventStorage
	votesStorage  storage.VoteStorage
}

func NewJudgeController(judgeStorage storage.JudgeStorage, eventStorage storage.EventStorage, voteStorage storage.VoteStorage) *JudgeController {
	return &JudgeController{
		judgesStorage: judgeStorage,
		eventsStorage: eventStorage,
		votesStorage:  voteStorage,
	}
}

func (c *JudgeController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/events/:eventId/judges", transport.AdminAuthMiddleware())

	group.GET("", c.list)
	group.POST("", c.create)
	group.PUT("/:judgeId", c.update)
	group.DELETE("/:judgeId", c.delete)
}

// @Security AdminToken
// @Summary List judges for an event
// @Tags admin/judges
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} models.JudgeListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/judges [get]
func (c *JudgeController) list(g *gin.Context) {
	eventID := g.Param("eventId")

	judges, err := c.judgesStorage.ListByEvent(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list judges for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	response := models.JudgeListResponse{
		EventID: eventID,
		Count:   len(judges),
		Judges:  make([]models.JudgeResponse, 0, len(judges)),
	}
	for _, j := range judges {
		response.Judges = append(response.Judges, models.TransformJudgeFromStorage(j))
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// @Summary Add a judge to an event
// @Tags admin/judges
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param judge body models.JudgeCreateRequest true "Judge"
// @Success 201 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Event not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/judges [post]
func (c *JudgeController) create(g *gin.Context) {
	eventID := g.Param("eventId")

	var req models.JudgeCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Name == "" || req.Email == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "judge name and email are required"})
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

	judge := &storage.Judge{
		EventID: eventID,
		Name:    req.Name,
		Email:   req.Email,
		Active:  true,
	}
	if err := c.judgesStorage.Create(g.Request.Context(), judge); err != nil {
		logging.Log.Errorf("ADMIN: failed to create judge: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create judge"})
		return
	}

	g.JSON(http.StatusCreated, models.TransformJudgeFromStorage(judge))
}

// @Security AdminToken
// @Summary Update a judge
// @Tags admin/judges
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param judgeId path string true "Judge ID"
// @Param judge body models.JudgeUpdateRequest true "Judge fields"
// @Success 200 {object} models.JudgeResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/judges/{judgeId} [put]
func (c *JudgeController) update(g *gin.Context) {
	judgeID := g.Param("judgeId")

	var req models.JudgeUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	judge, err := c.judgesStorage.Get(g.Request.Context(), judgeID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if judge == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "judge not found"})
		return
	}

	if req.Name != "" {
		judge.Name = req.Name
	}
	if req.Email != "" {
		judge.Email = req.Email
	}
	if req.Active != nil {
		judge.Active = *req.Active
	}

	if err := c.judgesStorage.Update(g.Request.Context(), judge); err != nil {
		logging.Log.Errorf("ADMIN: failed to update judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update judge"})
		return
	}
	g.JSON(http.StatusOK, models.TransformJudgeFromStorage(judge))
}

// @Security AdminToken
// @Summary Remove a judge from an event, with their votes
// @Tags admin/judges
// @Produce json
// @Param eventId path string true "Event ID"
// @Param judgeId path string true "Judge ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId}/judges/{judgeId} [delete]
func (c *JudgeController) delete(g *gin.Context) {
	eventID := g.Param("eventId")
	judgeID := g.Param("judgeId")
	ctx := g.Request.Context()

	judge, err := c.judgesStorage.Get(ctx, judgeID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if judge == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "judge not found"})
		return
	}

	if err := c.votesStorage.DeleteMany(ctx, storage.VoteFilter{EventID: eventID, JudgeID: judgeID}); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete votes for judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete judge votes"})
		return
	}

	if err := c.judgesStorage.Delete(ctx, judgeID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete judge"})
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "judge deleted successfully"})
}
