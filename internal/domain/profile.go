package domain

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Profile struct {
	ID                int       `json:"id" db:"id"`
	UserID            int       `json:"user_id" db:"user_id"`
	Name              string    `json:"name" db:"name"`
	Age               int       `json:"age" db:"age"`
	Gender            string    `json:"gender" db:"gender"`
	Bio               *string   `json:"bio" db:"bio"`
	Location          *string   `json:"location" db:"location"`
	Interests         []string  `json:"interests" db:"interests"`
	PreferredAgeMin   *int      `json:"preferred_age_min" db:"preferred_age_min"`
	PreferredAgeMax   *int      `json:"preferred_age_max" db:"preferred_age_max"`
	PreferredGender   *string   `json:"preferred_gender" db:"preferred_gender"`
	PreferredLocation *string   `json:"preferred_location" db:"preferred_location"`
	Completeness      float64   `json:"profile_completeness" db:"profile_completeness"`
	PhotoCount        int       `json:"photo_count" db:"photo_count"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasFullPreferences reports whether the age range and preferred gender
// are all set. The primary score grants its preference bonus only then.
func (p *Profile) HasFullPreferences() bool {
	return p.PreferredAgeMin != nil && p.PreferredAgeMax != nil && p.PreferredGender != nil
}

// OppositeGender returns the default partner gender for a profile's own
// gender, or "" when the own gender is not one of the known values.
func OppositeGender(gender string) string {
	switch gender {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	default:
		return ""
	}
}
