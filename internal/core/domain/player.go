package domain

import "time"

type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Position  *string   `json:"position,omitempty"`
	Number    *int      `json:"number,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlayerStanding is a player joined with its live vote count.
type PlayerStanding struct {
	Player
	VoteCount  int64 `json:"voteCount"`
	Percentage int   `json:"percentage"`
}
