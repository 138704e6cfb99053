package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrRatingNotFound  = errors.New("rating not found")
	ErrPhotoNotFound   = errors.New("photo not found")

	ErrProfileExists      = errors.New("profile already exists for user")
	ErrSelfInteraction    = errors.New("cannot interact with own profile")
	ErrInvalidInteraction = errors.New("invalid interaction type")
	ErrInvalidAgeRange    = errors.New("invalid preferred age range")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrInvalidToken       = errors.New("invalid token")
)
