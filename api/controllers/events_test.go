package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/arturoCrisanto/tabulator/api/controllers/testing"
	"github.com/arturoCrisanto/tabulator/api/models"
	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminHeaders() map[string]string {
	return map[string]string{"x-admin-token": "secret"}
}

func TestAdminAuth(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, _ := setupTestRouter(t)

	t.Run("Unhappy path - missing token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - wrong token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events", nil, map[string]string{"x-admin-token": "nope"})

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Happy path - valid token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events", nil, adminHeaders())

		assert.Equal(t, http.StatusOK, res.Code)
	})
}

func TestEventCRUD(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, stores := setupTestRouter(t)

	var eventID string

	t.Run("Unhappy path - create without name", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events",
			models.EventCreateRequest{Date: time.Now()}, adminHeaders())

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - create event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events",
			models.EventCreateRequest{Name: "Science Fair", Date: time.Now(), Description: "annual"}, adminHeaders())

		require.Equal(t, http.StatusCreated, res.Code)

		var created models.EventResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Science Fair", created.Name)
		eventID = created.ID
	})

	t.Run("Happy path - list contains the event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events", nil, adminHeaders())

		require.Equal(t, http.StatusOK, res.Code)

		var list models.EventListResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
		assert.Equal(t, 1, list.Count)
		require.Len(t, list.Events, 1)
		assert.Equal(t, eventID, list.Events[0].ID)
	})

	t.Run("Happy path - detail includes candidates and vote count", func(t *testing.T) {
		createCand := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events/"+eventID+"/candidates",
			models.CandidateCreateRequest{Name: "Eve"}, adminHeaders())
		require.Equal(t, http.StatusCreated, createCand.Code)

		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events/"+eventID, nil, adminHeaders())

		require.Equal(t, http.StatusOK, res.Code)

		var detail models.EventDetailResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &detail))
		assert.Equal(t, eventID, detail.Event.ID)
		require.Len(t, detail.Candidates, 1)
		assert.Equal(t, "Eve", detail.Candidates[0].Name)
		assert.Equal(t, 0, detail.TotalVotes)
	})

	t.Run("Unhappy path - detail for unknown event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/events/nope", nil, adminHeaders())

		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - update keeps unset fields", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPut, "/api/admin/events/"+eventID,
			models.EventUpdateRequest{Name: "Science Fair 2026"}, adminHeaders())

		require.Equal(t, http.StatusOK, res.Code)

		var updated models.EventResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
		assert.Equal(t, "Science Fair 2026", updated.Name)
		assert.Equal(t, "annual", updated.Description)
	})

	t.Run("Happy path - delete cascades to everything the event owns", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, stores.categories.Create(ctx, &storage.Category{ID: "cat-x", EventID: eventID, Name: "Robotics"}))
		require.NoError(t, stores.judges.Create(ctx, &storage.Judge{ID: "judge-x", EventID: eventID, Name: "Frank", Email: "frank@example.com"}))

		cands, err := stores.candidates.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		require.Len(t, cands, 1)

		_, err = stores.votes.Create(ctx, &storage.Vote{
			EventID:     eventID,
			CategoryID:  "cat-x",
			JudgeID:     "judge-x",
			CandidateID: cands[0].ID,
			Score:       7,
		})
		require.NoError(t, err)

		res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/"+eventID, nil, adminHeaders())
		require.Equal(t, http.StatusOK, res.Code)

		votes, err := stores.votes.List(ctx, storage.VoteFilter{EventID: eventID})
		require.NoError(t, err)
		assert.Empty(t, votes)

		categories, err := stores.categories.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Empty(t, categories)

		candidates, err := stores.candidates.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Empty(t, candidates)

		judges, err := stores.judges.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Empty(t, judges)

		event, err := stores.events.Get(ctx, eventID)
		require.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("Unhappy path - delete unknown event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/nope", nil, adminHeaders())

		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestCategoryCascadeDelete(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, stores := setupTestRouter(t)
	seedEventFixture(t, stores)

	// Votes in two sibling categories of the same event.
	for _, req := range []*models.SubmitVoteRequest{
		submitVote("judge-1", "cand-1", "cat-1", 5),
		submitVote("judge-1", "cand-2", "cat-1", 8),
		submitVote("judge-1", "cand-1", "cat-2", 6),
	} {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/votes", req, nil)
		require.Equal(t, http.StatusCreated, res.Code)
	}

	res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/event-1/categories/cat-1", nil, adminHeaders())
	require.Equal(t, http.StatusOK, res.Code)

	t.Run("Deleted category has no votes left", func(t *testing.T) {
		ranking := testutils.PerformRequest(router, http.MethodGet, "/api/votes/ranking/event-1?categoryId=cat-1", nil, nil)
		assert.Equal(t, http.StatusNotFound, ranking.Code)
	})

	t.Run("Sibling category is unaffected", func(t *testing.T) {
		ranking := testutils.PerformRequest(router, http.MethodGet, "/api/votes/ranking/event-1?categoryId=cat-2", nil, nil)
		require.Equal(t, http.StatusOK, ranking.Code)

		var response models.RankingResponse
		require.NoError(t, json.Unmarshal(ranking.Body.Bytes(), &response))
		assert.Equal(t, 1, response.TotalVotes)
	})

	t.Run("Unhappy path - deleting the category again", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/event-1/categories/cat-1", nil, adminHeaders())
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestCandidateAndJudgeCascadeDelete(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, stores := setupTestRouter(t)
	seedEventFixture(t, stores)

	for _, req := range []*models.SubmitVoteRequest{
		submitVote("judge-1", "cand-1", "cat-1", 5),
		submitVote("judge-1", "cand-2", "cat-1", 8),
		submitVote("judge-2", "cand-2", "cat-1", 4),
	} {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/votes", req, nil)
		require.Equal(t, http.StatusCreated, res.Code)
	}

	t.Run("Candidate delete removes only that candidate's votes", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/event-1/candidates/cand-1", nil, adminHeaders())
		require.Equal(t, http.StatusOK, res.Code)

		votes, err := stores.votes.List(context.Background(), storage.VoteFilter{EventID: "event-1"})
		require.NoError(t, err)
		assert.Len(t, votes, 2)
		for _, v := range votes {
			assert.Equal(t, "cand-2", v.CandidateID)
		}
	})

	t.Run("Judge delete removes only that judge's votes", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodDelete, "/api/admin/events/event-1/judges/judge-2", nil, adminHeaders())
		require.Equal(t, http.StatusOK, res.Code)

		votes, err := stores.votes.List(context.Background(), storage.VoteFilter{EventID: "event-1"})
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, "judge-1", votes[0].JudgeID)
	})
}

func TestCategoryAndJudgeCreation(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, stores := setupTestRouter(t)
	seedEventFixture(t, stores)

	t.Run("Happy path - add category to event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events/event-1/categories",
			models.CategoryCreateRequest{Name: "Comedy"}, adminHeaders())

		require.Equal(t, http.StatusCreated, res.Code)

		var created models.CategoryResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "event-1", created.EventID)
	})

	t.Run("Unhappy path - category for unknown event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events/nope/categories",
			models.CategoryCreateRequest{Name: "Comedy"}, adminHeaders())

		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - add judge to event", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events/event-1/judges",
			models.JudgeCreateRequest{Name: "Grace", Email: "grace@example.com"}, adminHeaders())

		require.Equal(t, http.StatusCreated, res.Code)

		var created models.JudgeResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
		assert.True(t, created.Active, "new judges start active")
	})

	t.Run("Unhappy path - judge without email", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/events/event-1/judges",
			models.JudgeCreateRequest{Name: "NoMail"}, adminHeaders())

		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestDashboard(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	router, stores := setupTestRouter(t)
	seedEventFixture(t, stores)

	res := testutils.PerformRequest(router, http.MethodPost, "/api/votes", submitVote("judge-1", "cand-1", "cat-1", 5), nil)
	require.Equal(t, http.StatusCreated, res.Code)

	dash := testutils.PerformRequest(router, http.MethodGet, "/api/admin/dashboard", nil, adminHeaders())
	require.Equal(t, http.StatusOK, dash.Code)

	var response models.DashboardResponse
	require.NoError(t, json.Unmarshal(dash.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Stats.TotalEvents)
	assert.Equal(t, 2, response.Stats.TotalCategories)
	assert.Equal(t, 2, response.Stats.TotalCandidates)
	assert.Equal(t, 2, response.Stats.TotalJudges)
	assert.Equal(t, 1, response.Stats.TotalVotes)
	require.Len(t, response.RecentEvents, 1)
	assert.Equal(t, "event-1", response.RecentEvents[0].ID)
}
