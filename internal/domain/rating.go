package domain

import "time"

// Rating is a materialized cache of the score model outputs, one row per
// profile. It is entirely derived from Profile, Photo, Interaction and Match
// data and can always be recomputed; absence reads as all-zero scores.
type Rating struct {
	ID             int       `json:"id" db:"id"`
	ProfileID      int       `json:"profile_id" db:"profile_id"`
	Primary        float64   `json:"primary" db:"primary_rating"`
	Behavioral     float64   `json:"behavioral" db:"behavioral_rating"`
	Combined       float64   `json:"combined" db:"combined_rating"`
	LastCalculated time.Time `json:"last_calculated" db:"last_calculated"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
