package domain

import "time"

const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)

type Match struct {
	ID            int       `json:"id" db:"id"`
	Profile1ID    int       `json:"profile1_id" db:"profile1_id"`
	Profile2ID    int       `json:"profile2_id" db:"profile2_id"`
	Status        string    `json:"status" db:"status"`
	ChatInitiated bool      `json:"chat_initiated" db:"chat_initiated"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) HasProfile(profileID int) bool {
	return m.Profile1ID == profileID || m.Profile2ID == profileID
}

func (m *Match) OtherProfileID(profileID int) (int, bool) {
	if m.Profile1ID == profileID {
		return m.Profile2ID, true
	}
	if m.Profile2ID == profileID {
		return m.Profile1ID, true
	}
	return 0, false
}

// NormalizePair orders a profile pair so that matches are unique per
// unordered pair: the smaller id always goes first.
func NormalizePair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
