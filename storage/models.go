package storage

import (
	"fmt"
	"time"
)

type Event struct {
	ID          string    `dynamodbav:"PK" json:"id"`
	Name        string    `dynamodbav:"Name" json:"name"`
	Date        time.Time `dynamodbav:"Date" json:"date"`
	Description string    `dynamodbav:"Description" json:"description"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Category struct {
	ID          string `dynamodbav:"PK" json:"id"`
	EventID     string `dynamodbav:"EventID" json:"eventId"`
	Name        string `dynamodbav:"Name" json:"name"`
	Description string `dynamodbav:"Description" json:"description"`
}

type Candidate struct {
	ID          string `dynamodbav:"PK" json:"id"`
	EventID     string `dynamodbav:"EventID" json:"eventId"`
	Name        string `dynamodbav:"Name" json:"name"`
	Description string `dynamodbav:"Description" json:"description"`
}

type Judge struct {
	ID        string    `dynamodbav:"PK" json:"id"`
	EventID   string    `dynamodbav:"EventID" json:"eventId"`
	Name      string    `dynamodbav:"Name" json:"name"`
	Email     string    `dynamodbav:"Email" json:"email"`
	Active    bool      `dynamodbav:"Active" json:"active"`
	CreatedAt time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

// Vote is one judge's score for one candidate in one category of one event.
// The table key is the identifying tuple: PK holds the event id and SK a
// composite of category/judge/candidate, so a conditional put on (PK, SK) is
// the uniqueness guarantee for the whole tuple.
type Vote struct {
	EventID     string    `dynamodbav:"PK" json:"eventId"`
	SortKey     string    `dynamodbav:"SK" json:"-"`
	ID          string    `dynamodbav:"ID" json:"id"`
	CategoryID  string    `dynamodbav:"CategoryID" json:"categoryId"`
	JudgeID     string    `dynamodbav:"JudgeID" json:"judgeId"`
	CandidateID string    `dynamodbav:"CandidateID" json:"candidateId"`
	Score       int       `dynamodbav:"Score" json:"score"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

func VoteSortKey(categoryID, judgeID, candidateID string) string {
	return fmt.Sprintf("cat#%s#judge#%s#cand#%s", categoryID, judgeID, candidateID)
}

// VoteFilter selects votes by any subset of the tuple fields. Empty fields
// are ignored; the provided ones are ANDed together.
type VoteFilter struct {
	EventID     string
	CategoryID  string
	JudgeID     string
	CandidateID string
}

func (f VoteFilter) Matches(v *Vote) bool {
	if f.EventID != "" && v.EventID != f.EventID {
		return false
	}
	if f.CategoryID != "" && v.CategoryID != f.CategoryID {
		return false
	}
	if f.JudgeID != "" && v.JudgeID != f.JudgeID {
		return false
	}
	if f.CandidateID != "" && v.CandidateID != f.CandidateID {
		return false
	}
	return true
}
