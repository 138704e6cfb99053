package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/jmoiron/sqlx"
)

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (profile_id, primary_rating, behavioral_rating, combined_rating, last_calculated)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (profile_id) DO UPDATE
		SET primary_rating = EXCLUDED.primary_rating,
		    behavioral_rating = EXCLUDED.behavioral_rating,
		    combined_rating = EXCLUDED.combined_rating,
		    last_calculated = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, last_calculated
	`
	return ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		rating.ProfileID, rating.Primary, rating.Behavioral, rating.Combined,
	).Scan(&rating.ID, &rating.LastCalculated)
}

func (r *ratingRepository) GetByProfileID(ctx context.Context, profileID int) (*domain.Rating, error) {
	var rating domain.Rating
	query := `SELECT * FROM ratings WHERE profile_id = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &rating, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}
