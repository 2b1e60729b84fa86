// Package ranking reduces a set of vote records to a sorted leaderboard.
// It performs no I/O and never mutates its input, so callers can recompute
// freely on every request.
package ranking

import (
	"sort"

	"github.com/arturoCrisanto/tabulator/storage"
)

// Standing is one candidate's aggregate position in a leaderboard.
type Standing struct {
	Rank         int
	CandidateID  string
	TotalScore   int
	AverageScore float64
	VoteCount    int
	Scores       []int
}

// Rank groups votes by candidate and orders the groups by total score,
// highest first. Equal totals order by candidate id ascending, so the same
// vote set always yields the same leaderboard regardless of fetch order.
// Ranks are positional and 1-based; tied totals get distinct consecutive
// ranks, not a shared rank.
func Rank(votes []*storage.Vote) []*Standing {
	byCandidate := make(map[string]*Standing)
	standings := make([]*Standing, 0)

	for _, v := range votes {
		st, ok := byCandidate[v.CandidateID]
		if !ok {
			st = &Standing{CandidateID: v.CandidateID}
			byCandidate[v.CandidateID] = st
			standings = append(standings, st)
		}
		st.TotalScore += v.Score
		st.VoteCount++
		st.Scores = append(st.Scores, v.Score)
	}

	for _, st := range standings {
		st.AverageScore = float64(st.TotalScore) / float64(st.VoteCount)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		return standings[i].CandidateID < standings[j].CandidateID
	})

	for i, st := range standings {
		st.Rank = i + 1
	}
	return standings
}
