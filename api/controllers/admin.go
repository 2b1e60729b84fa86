package controllers

import (
	"net/http"
	"sort"

	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/api/transport"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	eventsStorage     storage.EventStorage
	categoriesStorage storage.CategoryStorage
	candidatesStorage storage.CandidateStorage
	judgesStorage     storage.JudgeStorage
	votesStorage      storage.VoteStorage
}

func NewAdminController(
	eventStorage storage.EventStorage,
	categoryStorage storage.CategoryStorage,
	candidateStorage storage.CandidateStorage,
	judgeStorage storage.JudgeStorage,
	voteStorage storage.VoteStorage,
) *AdminController {
	return &AdminController{
		eventsStorage:     eventStorage,
		categoriesStorage: categoryStorage,
		candidatesStorage: candidateStorage,
		judgesStorage:     judgeStorage,
		votesStorage:      voteStorage,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware())

	group.GET("/dashboard", c.dashboard)
}

// @Security AdminToken
// dashboard godoc
// @Summary Aggregate counts across all tables plus the five most recent events
// @Tags admin
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/dashboard [get]
func (c *AdminController) dashboard(g *gin.Context) {
	ctx := g.Request.Context()

	events, err := c.eventsStorage.GetAll(ctx)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load events: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	categories, err := c.categoriesStorage.GetAll(ctx)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load categories: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	candidates, err := c.candidatesStorage.GetAll(ctx)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load candidates: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	judges, err := c.judgesStorage.GetAll(ctx)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load judges: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	votes, err := c.votesStorage.List(ctx, storage.VoteFilter{})
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load votes: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	recent := events
	if len(recent) > 5 {
		recent = recent[:5]
	}

	response := models.DashboardResponse{
		Stats: models.DashboardStats{
			TotalEvents:     len(events),
			TotalCategories: len(categories),
			TotalCandidates: len(candidates),
			TotalJudges:     len(judges),
			TotalVotes:      len(votes),
		},
		RecentEvents: make([]models.EventResponse, 0, len(recent)),
	}
	for _, e := range recent {
		response.RecentEvents = append(response.RecentEvents, models.TransformEventFromStorage(e))
	}

	g.JSON(http.StatusOK, response)
}
