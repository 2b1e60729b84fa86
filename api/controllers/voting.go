package controllers

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/arturoCrisanto/tabulator/ranking"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/gin-gonic/gin"
)

type VotingController struct {
	votesStorage      storage.VoteStorage
	eventsStorage     storage.EventStorage
	categoriesStorage storage.CategoryStorage
	candidatesStorage storage.CandidateStorage
	judgesStorage     storage.JudgeStorage
}

func NewVotingController(
	voteStorage storage.VoteStorage,
	eventStorage storage.EventStorage,
	categoryStorage storage.CategoryStorage,
	candidateStorage storage.CandidateStorage,
	judgeStorage storage.JudgeStorage,
) *VotingController {
	return &VotingController{
		votesStorage:      voteStorage,
		eventsStorage:     eventStorage,
		categoriesStorage: categoryStorage,
		candidatesStorage: candidateStorage,
		judgesStorage:     judgeStorage,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/votes")

	group.POST("", c.submitVote)
	group.GET("/ranking/:eventId", c.getRanking)
	group.GET("/judge/:judgeId", c.getVotesByJudge)
	group.PUT("/:voteId", c.updateVote)
	group.DELETE("/:voteId", c.deleteVote)
}

// submitVote godoc
// @Summary Submit a vote
// @Description Records one judge's score for a candidate in a category. A judge scores each candidate at most once per category.
// @Tags voting
// @Accept json
// @Produce json
// @Param vote body models.SubmitVoteRequest true "Vote submission"
// @Success 201 {object} models.SubmitVoteResponse
// @Failure 400 {object} models.ErrorResponse "Missing field or score out of range"
// @Failure 409 {object} models.ErrorResponse "Judge already voted for this candidate in this category"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/votes [post]
func (c *VotingController) submitVote(g *gin.Context) {
	var req models.SubmitVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if req.Event == "" || req.Category == "" || req.Judge == "" || req.Candidate == "" || req.Score == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Error: "all fields are required: event, category, judge, candidate, score",
		})
		return
	}

	if err := storage.ValidateScore(*req.Score); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	// Friendly duplicate check first. The storage create below re-enforces
	// uniqueness atomically, so a concurrent submit racing past this read
	// still cannot produce two votes for the tuple.
	existing, err := c.votesStorage.GetByTuple(g.Request.Context(), req.Event, req.Category, req.Judge, req.Candidate)
	if err != nil {
		logging.Log.Errorf("failed to check for existing vote: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not verify vote uniqueness"})
		return
	}
	if existing != nil {
		g.JSON(http.StatusConflict, &models.ErrorResponse{
			Error: "judge has already voted for this candidate in this category",
		})
		return
	}

	vote, err := c.votesStorage.Create(g.Request.Context(), &storage.Vote{
		EventID:     req.Event,
		CategoryID:  req.Category,
		JudgeID:     req.Judge,
		CandidateID: req.Candidate,
		Score:       *req.Score,
	})
	if err != nil {
		var dup *storage.DuplicateVoteError
		var rng *storage.ScoreRangeError
		switch {
		case errors.As(err, &dup):
			g.JSON(http.StatusConflict, &models.ErrorResponse{
				Error: "judge has already voted for this candidate in this category",
			})
		case errors.As(err, &rng):
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: rng.Error()})
		default:
			logging.Log.Errorf("failed to create vote: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save vote"})
		}
		return
	}

	g.JSON(http.StatusCreated, &models.SubmitVoteResponse{
		Message: "vote submitted successfully",
		Vote:    models.TransformVoteFromStorage(vote, c.resolveVoteNames(g.Request.Context(), vote)),
	})
}

// getRanking godoc
// @Summary Get event ranking
// @Description Computes the candidate leaderboard for an event, optionally narrowed to one category.
// @Tags voting
// @Produce json
// @Param eventId path string true "Event ID"
// @Param categoryId query string false "Category ID filter"
// @Success 200 {object} models.RankingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "No votes recorded"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/votes/ranking/{eventId} [get]
func (c *VotingController) getRanking(g *gin.Context) {
	eventID := g.Param("eventId")
	if eventID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "event id is required"})
		return
	}
	categoryID := g.Query("categoryId")

	votes, err := c.votesStorage.List(g.Request.Context(), storage.VoteFilter{
		EventID:    eventID,
		CategoryID: categoryID,
	})
	if err != nil {
		logging.Log.Errorf("failed to list votes for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not retrieve votes"})
		return
	}
	if len(votes) == 0 {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no votes found for this event"})
		return
	}

	standings := ranking.Rank(votes)

	candidates, err := c.candidatesStorage.ListByEvent(g.Request.Context(), eventID)
	if err != nil {
		logging.Log.Errorf("failed to load candidates for event %s: %v", eventID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load candidates"})
		return
	}

	candidateNames := make(map[string]string)
	for _, cand := range candidates {
		candidateNames[cand.ID] = cand.Name
	}

	response := models.RankingResponse{
		EventID:    eventID,
		CategoryID: categoryID,
		TotalVotes: len(votes),
		Ranking:    make([]models.RankingEntry, 0, len(standings)),
	}
	if response.CategoryID == "" {
		response.CategoryID = "all"
	}
	for _, st := range standings {
		response.Ranking = append(response.Ranking, models.TransformStandingFromRanking(st, candidateNames[st.CandidateID]))
	}

	g.JSON(http.StatusOK, response)
}

// getVotesByJudge godoc
// @Summary Get votes by judge
// @Description Lists all votes a judge has submitted, optionally limited to one event, most recent first.
// @Tags voting
// @Produce json
// @Param judgeId path string true "Judge ID"
// @Param eventId query string false "Event ID filter"
// @Success 200 {object} models.JudgeVotesResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/votes/judge/{judgeId} [get]
func (c *VotingController) getVotesByJudge(g *gin.Context) {
	judgeID := g.Param("judgeId")
	if judgeID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "judge id is required"})
		return
	}
	eventID := g.Query("eventId")

	votes, err := c.votesStorage.List(g.Request.Context(), storage.VoteFilter{
		EventID: eventID,
		JudgeID: judgeID,
	})
	if err != nil {
		logging.Log.Errorf("failed to list votes for judge %s: %v", judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not retrieve votes"})
		return
	}

	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].CreatedAt.After(votes[j].CreatedAt)
	})

	response := models.JudgeVotesResponse{
		JudgeID:    judgeID,
		EventID:    eventID,
		TotalVotes: len(votes),
		Votes:      make([]models.VoteResponse, 0, len(votes)),
	}
	if response.EventID == "" {
		response.EventID = "all"
	}
	for _, v := range votes {
		response.Votes = append(response.Votes, models.TransformVoteFromStorage(v, c.resolveVoteNames(g.Request.Context(), v)))
	}

	g.JSON(http.StatusOK, response)
}

// updateVote godoc
// @Summary Update a vote's score
// @Description Replaces the score of an existing vote. The event/category/judge/candidate tuple is immutable.
// @Tags voting
// @Accept json
// @Produce json
// @Param voteId path string true "Vote ID"
// @Param vote body models.UpdateVoteRequest true "New score"
// @Success 200 {object} models.UpdateVoteResponse
// @Failure 400 {object} models.ErrorResponse "Missing or out-of-range score"
// @Failure 404 {object} models.ErrorResponse "Vote not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/votes/{voteId} [put]
func (c *VotingController) updateVote(g *gin.Context) {
	voteID := g.Param("voteId")

	var req models.UpdateVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.Score == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "score is required"})
		return
	}

	vote, err := c.votesStorage.UpdateScore(g.Request.Context(), voteID, *req.Score)
	if err != nil {
		var rng *storage.ScoreRangeError
		switch {
		case errors.As(err, &rng):
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: rng.Error()})
		case errors.Is(err, storage.ErrVoteNotFound):
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "vote not found"})
		default:
			logging.Log.Errorf("failed to update vote %s: %v", voteID, err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update vote"})
		}
		return
	}

	g.JSON(http.StatusOK, &models.UpdateVoteResponse{
		Message: "vote updated successfully",
		Vote:    models.TransformVoteFromStorage(vote, c.resolveVoteNames(g.Request.Context(), vote)),
	})
}

// deleteVote godoc
// @Summary Delete a vote
// @Tags voting
// @Produce json
// @Param voteId path string true "Vote ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse "Vote not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/votes/{voteId} [delete]
func (c *VotingController) deleteVote(g *gin.Context) {
	voteID := g.Param("voteId")

	if err := c.votesStorage.Delete(g.Request.Context(), voteID); err != nil {
		if errors.Is(err, storage.ErrVoteNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "vote not found"})
			return
		}
		logging.Log.Errorf("failed to delete vote %s: %v", voteID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not delete vote"})
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "vote deleted successfully"})
}

// resolveVoteNames looks up display names for a vote's references. The
// ledger trusts the references it stores, so unresolvable ones just come
// back with empty names.
func (c *VotingController) resolveVoteNames(ctx context.Context, v *storage.Vote) models.VoteNames {
	var names models.VoteNames

	if event, err := c.eventsStorage.Get(ctx, v.EventID); err == nil && event != nil {
		names.Event = event.Name
	}
	if category, err := c.categoriesStorage.Get(ctx, v.CategoryID); err == nil && category != nil {
		names.Category = category.Name
	}
	if judge, err := c.judgesStorage.Get(ctx, v.JudgeID); err == nil && judge != nil {
		names.Judge = judge.Name
	}
	if candidate, err := c.candidatesStorage.Get(ctx, v.CandidateID); err == nil && candidate != nil {
		names.Candidate = candidate.Name
	}
	return names
}
