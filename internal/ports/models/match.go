package models

import (
	"gorm.io/gorm"
)

// MatchPair is one resolved pairing between two participants of an event.
// UserA/UserB are unordered; a participant appears in at most one pair per
// resolution pass. Score reflects the tier the pair matched at.
type MatchPair struct {
	gorm.Model
	EventID uint `gorm:"column:event_id;not null;index" json:"event_id"`
	UserA   uint `gorm:"column:user_a;not null" json:"user_a"`
	UserB   uint `gorm:"column:user_b;not null" json:"user_b"`
	Score   int  `gorm:"column:score;not null" json:"score"`
}

// TableName specifies the table name for MatchPair
func (MatchPair) TableName() string {
	return "match_pairs"
}

// CandidateTally is the per-candidate slice of a vote tally
type CandidateTally struct {
	CandidateID uint `json:"candidate_id"`
	First       int  `json:"first"`
	Second      int  `json:"second"`
	Third       int  `json:"third"`
	TotalScore  int  `json:"total_score"`
}

// VoteTally is the aggregated popularity report for an event. Derived from
// the preference ledger on demand and cached in Redis, never stored in MySQL.
type VoteTally struct {
	EventID    uint             `json:"event_id"`
	TotalVotes int              `json:"total_votes"`
	Candidates []CandidateTally `json:"candidates"`
}

// MatchResultMessage is the payload published to Kafka after resolution
type MatchResultMessage struct {
	EventID uint        `json:"event_id"`
	Pairs   []MatchPair `json:"pairs"`
}
