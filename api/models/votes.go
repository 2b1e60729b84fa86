package models

import (
	"time"

	"github.com/arturoCrisanto/tabulator/ranking"
	"github.com/arturoCrisanto/tabulator/storage"
)

// SubmitVoteRequest carries one judge's score for one candidate. Score is a
// pointer so a request that omits the field is distinguishable from one that
// sends an explicit zero.
type SubmitVoteRequest struct {
	Event     string `json:"event"`
	Category  string `json:"category"`
	Judge     string `json:"judge"`
	Candidate string `json:"candidate"`
	Score     *int   `json:"score"`
}

type UpdateVoteRequest struct {
	Score *int `json:"score"`
}

// NamedRef is an entity reference with its display name resolved.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VoteResponse struct {
	ID        string    `json:"id"`
	Event     NamedRef  `json:"event"`
	Category  NamedRef  `json:"category"`
	Judge     NamedRef  `json:"judge"`
	Candidate NamedRef  `json:"candidate"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitVoteResponse struct {
	Message string       `json:"message"`
	Vote    VoteResponse `json:"vote"`
}

type UpdateVoteResponse struct {
	Message string       `json:"message"`
	Vote    VoteResponse `json:"vote"`
}

type RankingEntry struct {
	Rank         int      `json:"rank"`
	Candidate    NamedRef `json:"candidate"`
	TotalScore   int      `json:"totalScore"`
	AverageScore float64  `json:"averageScore"`
	VoteCount    int      `json:"voteCount"`
	Scores       []int    `json:"scores"`
}

type RankingResponse struct {
	EventID    string         `json:"eventId"`
	CategoryID string         `json:"categoryId"`
	TotalVotes int            `json:"totalVotes"`
	Ranking    []RankingEntry `json:"ranking"`
}

type JudgeVotesResponse struct {
	JudgeID    string         `json:"judgeId"`
	EventID    string         `json:"eventId"`
	TotalVotes int            `json:"totalVotes"`
	Votes      []VoteResponse `json:"votes"`
}

// VoteNames holds the resolved display names for a vote's references.
// Unresolvable references keep an empty name; the ids are still returned.
type VoteNames struct {
	Event     string
	Category  string
	Judge     string
	Candidate string
}

func TransformVoteFromStorage(v *storage.Vote, names VoteNames) VoteResponse {
	return VoteResponse{
		ID:        v.ID,
		Event:     NamedRef{ID: v.EventID, Name: names.Event},
		Category:  NamedRef{ID: v.CategoryID, Name: names.Category},
		Judge:     NamedRef{ID: v.JudgeID, Name: names.Judge},
		Candidate: NamedRef{ID: v.CandidateID, Name: names.Candidate},
		Score:     v.Score,
		CreatedAt: v.CreatedAt,
	}
}

func TransformStandingFromRanking(st *ranking.Standing, candidateName string) RankingEntry {
	return RankingEntry{
		Rank:         st.Rank,
		Candidate:    NamedRef{ID: st.CandidateID, Name: candidateName},
		TotalScore:   st.TotalScore,
		AverageScore: st.AverageScore,
		VoteCount:    st.VoteCount,
		Scores:       st.Scores,
	}
}
