package domain

import "time"

// Column limits of the votes table.
const (
	MaxFingerprintLength = 255
	MaxIPAddressLength   = 45
)

type Vote struct {
	ID                int64     `json:"id"`
	PlayerID          int64     `json:"playerId"`
	DeviceFingerprint string    `json:"deviceFingerprint"`
	IPAddress         *string   `json:"ipAddress,omitempty"`
	UserAgent         *string   `json:"userAgent,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type DeviceFingerprint struct {
	ID          int64      `json:"id"`
	Fingerprint string     `json:"fingerprint"`
	HasVoted    bool       `json:"hasVoted"`
	LastVoteAt  *time.Time `json:"lastVoteAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VoteReceipt is what the store reports back after a vote has been committed.
type VoteReceipt struct {
	Vote        Vote
	PlayerVotes int64
	// Milestones lists the thresholds this vote crossed that had not been notified before.
	Milestones []int
}
