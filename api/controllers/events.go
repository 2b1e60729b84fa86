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

type EventController struct {
	eventsStorage     storage.EventStorage
	categoriesStorage storage.CategoryStorage
	candidatesStorage storage.CandidateStorage
	judgesStorage     storage.JudgeStorage
	votesStorage      storage.VoteStorage
}

func NewEventController(
	eventStorage storage.EventStorage,
	categoryStorage storage.CategoryStorage,
	candidateStorage storage.CandidateStorage,
	judgeStorage storage.JudgeStorage,
	voteStorage storage.VoteStorage,
) *EventController {
	return &EventController{
		eventsStorage:     eventStorage,
		categoriesStorage: categoryStorage,
		candidatesStorage: candidateStorage,
		judgesStorage:     judgeStorage,
		votesStorage:      voteStorage,
	}
}

func (c *EventController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/events", transport.AdminAuthMiddleware())

	group.GET("", c.list)
	group.POST("", c.create)
	group.GET("/:eventId", c.get)
	group.PUT("/:eventId", c.update)
	group.DELETE("/:eventId", c.delete)
}

// @Security AdminToken
// list godoc
// @Summary List all events
// @Tags admin/events
// @Produce json
// @Success 200 {object} models.EventListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events [get]
func (c *EventController) list(g *gin.Context) {
	events, err := c.eventsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list events: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	response := models.EventListResponse{
		Count:  len(events),
		Events: make([]models.EventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, models.TransformEventFromStorage(e))
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// get godoc
// @Summary Get a single event with its candidates and vote count
// @Tags admin/events
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} models.EventDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId} [get]
func (c *EventController) get(g *gin.Context) {
	eventID := g.Param("eventId")

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

	candidates, err := c.candidatesStorage.ListByEvent(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list candidates for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	votes, err := c.votesStorage.List(g.Request.Context(), storage.VoteFilter{EventID: eventID})
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to count votes for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	response := models.EventDetailResponse{
		Event:      models.TransformEventFromStorage(event),
		Candidates: make([]models.CandidateResponse, 0, len(candidates)),
		TotalVotes: len(votes),
	}
	for _, cand := range candidates {
		response.Candidates = append(response.Candidates, models.TransformCandidateFromStorage(cand))
	}
	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// create godoc
// @Summary Create an event
// @Tags admin/events
// @Accept json
// @Produce json
// @Param event body models.EventCreateRequest true "Event"
// @Success 201 {object} models.EventResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events [post]
func (c *EventController) create(g *gin.Context) {
	var req models.EventCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Name == "" || req.Date.IsZero() {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "event name and date are required"})
		return
	}

	event := &storage.Event{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
	}
	if err := c.eventsStorage.Create(g.Request.Context(), event); err != nil {
		logging.Log.Errorf("ADMIN: failed to create event: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create event"})
		return
	}

	logging.Log.Infof("ADMIN: created event %s", event.ID)
	g.JSON(http.StatusCreated, models.TransformEventFromStorage(event))
}

// @Security AdminToken
// update godoc
// @Summary Update an event
// @Tags admin/events
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param event body models.EventUpdateRequest true "Event fields"
// @Success 200 {object} models.EventResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId} [put]
func (c *EventController) update(g *gin.Context) {
	eventID := g.Param("eventId")

	var req models.EventUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
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

	if req.Name != "" {
		event.Name = req.Name
	}
	if !req.Date.IsZero() {
		event.Date = req.Date
	}
	if req.Description != "" {
		event.Description = req.Description
	}

	if err := c.eventsStorage.Update(g.Request.Context(), event); err != nil {
		logging.Log.Errorf("ADMIN: failed to update event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update event"})
		return
	}
	g.JSON(http.StatusOK, models.TransformEventFromStorage(event))
}

// @Security AdminToken
// delete godoc
// @Summary Delete an event and everything it owns
// @Description Removes the event together with its categories, candidates, judges and all recorded votes.
// @Tags admin/events
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/events/{eventId} [delete]
func (c *EventController) delete(g *gin.Context) {
	eventID := g.Param("eventId")
	ctx := g.Request.Context()

	event, err := c.eventsStorage.Get(ctx, eventID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to get event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if event == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "event not found"})
		return
	}

	// Votes first so the ledger never references entities that are gone.
	if err := c.votesStorage.DeleteMany(ctx, storage.VoteFilter{EventID: eventID}); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete votes for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete event votes"})
		return
	}

	categories, err := c.categoriesStorage.ListByEvent(ctx, eventID)
	if err == nil {
		for _, cat := range categories {
			if err := c.categoriesStorage.Delete(ctx, cat.ID); err != nil {
				logging.Log.Errorf("ADMIN: failed to delete category %s: %v", cat.ID, err)
			}
		}
	}

	candidates, err := c.candidatesStorage.ListByEvent(ctx, eventID)
	if err == nil {
		for _, cand := range candidates {
			if err := c.candidatesStorage.Delete(ctx, cand.ID); err != nil {
				logging.Log.Errorf("ADMIN: failed to delete candidate %s: %v", cand.ID, err)
			}
		}
	}

	judges, err := c.judgesStorage.ListByEvent(ctx, eventID)
	if err == nil {
		for _, j := range judges {
			if err := c.judgesStorage.Delete(ctx, j.ID); err != nil {
				logging.Log.Errorf("ADMIN: failed to delete judge %s: %v", j.ID, err)
			}
		}
	}

	if err := c.eventsStorage.Delete(ctx, eventID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete event"})
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "event and associated data deleted successfully"})
}
