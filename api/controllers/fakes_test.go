package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/arturoCrisanto/tabulator/storage"
	"github.com/google/uuid"
)

// In-memory storage fakes for handler tests. The vote fake mirrors the
// DynamoDB contract: check-and-insert happens under one lock, so concurrent
// submissions for the same tuple resolve to exactly one winner.

type memoryVoteStorage struct {
	mu      sync.Mutex
	byTuple map[string]*storage.Vote
	order   []*storage.Vote
}

func newMemoryVoteStorage() *memoryVoteStorage {
	return &memoryVoteStorage{byTuple: make(map[string]*storage.Vote)}
}

func tupleKey(eventID, sortKey string) string {
	return eventID + "|" + sortKey
}

func copyVote(v *storage.Vote) *storage.Vote {
	c := *v
	return &c
}

func (s *memoryVoteStorage) Create(_ context.Context, vote *storage.Vote) (*storage.Vote, error) {
	if err := storage.ValidateScore(vote.Score); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vote.SortKey = storage.VoteSortKey(vote.CategoryID, vote.JudgeID, vote.CandidateID)
	key := tupleKey(vote.EventID, vote.SortKey)
	if _, exists := s.byTuple[key]; exists {
		return nil, &storage.DuplicateVoteError{
			EventID:     vote.EventID,
			CategoryID:  vote.CategoryID,
			JudgeID:     vote.JudgeID,
			CandidateID: vote.CandidateID,
		}
	}

	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	stored := copyVote(vote)
	s.byTuple[key] = stored
	s.order = append(s.order, stored)
	return copyVote(stored), nil
}

func (s *memoryVoteStorage) GetByTuple(_ context.Context, eventID, categoryID, judgeID, candidateID string) (*storage.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.byTuple[tupleKey(eventID, storage.VoteSortKey(categoryID, judgeID, candidateID))]
	if !ok {
		return nil, nil
	}
	return copyVote(v), nil
}

func (s *memoryVoteStorage) GetByID(_ context.Context, id string) (*storage.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.order {
		if v.ID == id {
			return copyVote(v), nil
		}
	}
	return nil, storage.ErrVoteNotFound
}

func (s *memoryVoteStorage) List(_ context.Context, filter storage.VoteFilter) ([]*storage.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var votes []*storage.Vote
	for _, v := range s.order {
		if filter.Matches(v) {
			votes = append(votes, copyVote(v))
		}
	}
	return votes, nil
}

func (s *memoryVoteStorage) UpdateScore(_ context.Context, id string, score int) (*storage.Vote, error) {
	if err := storage.ValidateScore(score); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.order {
		if v.ID == id {
			v.Score = score
			return copyVote(v), nil
		}
	}
	return nil, storage.ErrVoteNotFound
}

func (s *memoryVoteStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.order {
		if v.ID == id {
			delete(s.byTuple, tupleKey(v.EventID, v.SortKey))
			s.order = append(s.order[:i], s.order[i+1:]...)
			return nil
		}
	}
	return storage.ErrVoteNotFound
}

func (s *memoryVoteStorage) DeleteMany(_ context.Context, filter storage.VoteFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.order[:0]
	for _, v := range s.order {
		if filter.Matches(v) {
			delete(s.byTuple, tupleKey(v.EventID, v.SortKey))
			continue
		}
		remaining = append(remaining, v)
	}
	s.order = remaining
	return nil
}

type memoryEventStorage struct {
	mu     sync.Mutex
	events map[string]*storage.Event
}

func newMemoryEventStorage() *memoryEventStorage {
	return &memoryEventStorage{events: make(map[string]*storage.Event)}
}

func (s *memoryEventStorage) Get(_ context.Context, id string) (*storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

func (s *memoryEventStorage) GetAll(_ context.Context) ([]*storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []*storage.Event
	for _, e := range s.events {
		c := *e
		events = append(events, &c)
	}
	return events, nil
}

func (s *memoryEventStorage) Create(_ context.Context, event *storage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.events[event.ID]; exists {
		return storage.ErrItemWithIDAlreadyExists
	}
	c := *event
	s.events[event.ID] = &c
	return nil
}

func (s *memoryEventStorage) Update(_ context.Context, event *storage.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *event
	s.events[event.ID] = &c
	return nil
}

func (s *memoryEventStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

type memoryCategoryStorage struct {
	mu         sync.Mutex
	categories map[string]*storage.Category
}

func newMemoryCategoryStorage() *memoryCategoryStorage {
	return &memoryCategoryStorage{categories: make(map[string]*storage.Category)}
}

func (s *memoryCategoryStorage) Get(_ context.Context, id string) (*storage.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memoryCategoryStorage) GetAll(_ context.Context) ([]*storage.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []*storage.Category
	for _, c := range s.categories {
		cp := *c
		categories = append(categories, &cp)
	}
	return categories, nil
}

func (s *memoryCategoryStorage) ListByEvent(_ context.Context, eventID string) ([]*storage.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []*storage.Category
	for _, c := range s.categories {
		if c.EventID == eventID {
			cp := *c
			categories = append(categories, &cp)
		}
	}
	return categories, nil
}

func (s *memoryCategoryStorage) Create(_ context.Context, category *storage.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if _, exists := s.categories[category.ID]; exists {
		return storage.ErrItemWithIDAlreadyExists
	}
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *memoryCategoryStorage) Update(_ context.Context, category *storage.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *memoryCategoryStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	return nil
}

type memoryCandidateStorage struct {
	mu         sync.Mutex
	candidates map[string]*storage.Candidate
}

func newMemoryCandidateStorage() *memoryCandidateStorage {
	return &memoryCandidateStorage{candidates: make(map[string]*storage.Candidate)}
}

func (s *memoryCandidateStorage) Get(_ context.Context, id string) (*storage.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memoryCandidateStorage) GetAll(_ context.Context) ([]*storage.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []*storage.Candidate
	for _, c := range s.candidates {
		cp := *c
		candidates = append(candidates, &cp)
	}
	return candidates, nil
}

func (s *memoryCandidateStorage) ListByEvent(_ context.Context, eventID string) ([]*storage.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []*storage.Candidate
	for _, c := range s.candidates {
		if c.EventID == eventID {
			cp := *c
			candidates = append(candidates, &cp)
		}
	}
	return candidates, nil
}

func (s *memoryCandidateStorage) Create(_ context.Context, candidate *storage.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if _, exists := s.candidates[candidate.ID]; exists {
		return storage.ErrItemWithIDAlreadyExists
	}
	cp := *candidate
	s.candidates[candidate.ID] = &cp
	return nil
}

func (s *memoryCandidateStorage) Update(_ context.Context, candidate *storage.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *candidate
	s.candidates[candidate.ID] = &cp
	return nil
}

func (s *memoryCandidateStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.candidates, id)
	return nil
}

type memoryJudgeStorage struct {
	mu     sync.Mutex
	judges map[string]*storage.Judge
}

func newMemoryJudgeStorage() *memoryJudgeStorage {
	return &memoryJudgeStorage{judges: make(map[string]*storage.Judge)}
}

func (s *memoryJudgeStorage) Get(_ context.Context, id string) (*storage.Judge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.judges[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (s *memoryJudgeStorage) GetAll(_ context.Context) ([]*storage.Judge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var judges []*storage.Judge
	for _, j := range s.judges {
		cp := *j
		judges = append(judges, &cp)
	}
	return judges, nil
}

func (s *memoryJudgeStorage) ListByEvent(_ context.Context, eventID string) ([]*storage.Judge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var judges []*storage.Judge
	for _, j := range s.judges {
		if j.EventID == eventID {
			cp := *j
			judges = append(judges, &cp)
		}
	}
	return judges, nil
}

func (s *memoryJudgeStorage) Create(_ context.Context, judge *storage.Judge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if judge.ID == "" {
		judge.ID = uuid.NewString()
	}
	if judge.CreatedAt.IsZero() {
		judge.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.judges[judge.ID]; exists {
		return storage.ErrItemWithIDAlreadyExists
	}
	cp := *judge
	s.judges[judge.ID] = &cp
	return nil
}

func (s *memoryJudgeStorage) Update(_ context.Context, judge *storage.Judge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *judge
	s.judges[judge.ID] = &cp
	return nil
}

func (s *memoryJudgeStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.judges, id)
	return nil
}
