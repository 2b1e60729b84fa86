package storage

import (
	"errors"
	"fmt"
)

const (
	MinScore = 1
	MaxScore = 10
)

var ErrVoteNotFound = errors.New("vote not found in storage")
var ErrItemNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")

// DuplicateVoteError reports a violation of the one-vote-per-tuple rule.
// It carries the offending tuple so callers can branch on the kind instead
// of parsing message text.
type DuplicateVoteError struct {
	EventID     string
	CategoryID  string
	JudgeID     string
	CandidateID string
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("vote already exists for event=%s category=%s judge=%s candidate=%s",
		e.EventID, e.CategoryID, e.JudgeID, e.CandidateID)
}

// ScoreRangeError reports a score outside [MinScore, MaxScore].
type ScoreRangeError struct {
	Score int
}

func (e *ScoreRangeError) Error() string {
	return fmt.Sprintf("score %d outside allowed range [%d, %d]", e.Score, MinScore, MaxScore)
}

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return &ScoreRangeError{Score: score}
	}
	return nil
}
