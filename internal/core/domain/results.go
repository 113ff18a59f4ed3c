package domain

import "math"

type Results struct {
	Players    []PlayerStanding `json:"players"`
	TotalVotes int64            `json:"totalVotes"`
}

// Percentage rounds count/total*100 half up, and is 0 when there are no votes.
func Percentage(count, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(count)/float64(total)*100 + 0.5))
}
