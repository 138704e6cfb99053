package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, name, age, gender, bio, location, interests,
	preferred_age_min, preferred_age_max, preferred_gender, preferred_location,
	profile_completeness, photo_count, created_at, updated_at
`

func scanProfile(row sqlx.ColScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.Bio, &p.Location,
		pq.Array(&p.Interests),
		&p.PreferredAgeMin, &p.PreferredAgeMax, &p.PreferredGender, &p.PreferredLocation,
		&p.Completeness, &p.PhotoCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, name, age, gender, bio, location, interests,
			preferred_age_min, preferred_age_max, preferred_gender, preferred_location,
			profile_completeness
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, photo_count, created_at, updated_at
	`
	err := ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		profile.UserID, profile.Name, profile.Age, profile.Gender, profile.Bio,
		profile.Location, pq.Array(profile.Interests),
		profile.PreferredAgeMin, profile.PreferredAgeMax, profile.PreferredGender,
		profile.PreferredLocation, profile.Completeness,
	).Scan(&profile.ID, &profile.PhotoCount, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(ext(ctx, r.db).QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(ext(ctx, r.db).QueryRowxContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, age = $2, gender = $3, bio = $4, location = $5,
		    interests = $6, preferred_age_min = $7, preferred_age_max = $8,
		    preferred_gender = $9, preferred_location = $10,
		    profile_completeness = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING updated_at
	`
	err := ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		profile.Name, profile.Age, profile.Gender, profile.Bio, profile.Location,
		pq.Array(profile.Interests), profile.PreferredAgeMin, profile.PreferredAgeMax,
		profile.PreferredGender, profile.PreferredLocation, profile.Completeness,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) IncrementPhotoCount(ctx context.Context, id int) error {
	query := `
		UPDATE profiles
		SET photo_count = photo_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &ids, `SELECT id FROM profiles ORDER BY id`)
	return ids, err
}

// FindCandidates builds the feed query dynamically: each preference filter is
// added only when set. Profiles without a rating row still rank, their scores
// read as zero.
func (r *profileRepository) FindCandidates(ctx context.Context, filter repository.CandidateFilter) ([]*repository.RankedProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.age, p.gender, p.bio, p.location, p.interests,
		       p.preferred_age_min, p.preferred_age_max, p.preferred_gender, p.preferred_location,
		       p.profile_completeness, p.photo_count, p.created_at, p.updated_at,
		       COALESCE(r.primary_rating, 0), COALESCE(r.behavioral_rating, 0),
		       COALESCE(r.combined_rating, 0), COALESCE(r.last_calculated, p.created_at)
		FROM profiles p
		LEFT JOIN ratings r ON r.profile_id = p.id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filter.Gender != nil {
		query += fmt.Sprintf(" AND p.gender = $%d", argCount)
		args = append(args, *filter.Gender)
		argCount++
	}
	if filter.AgeMin != nil {
		query += fmt.Sprintf(" AND p.age >= $%d", argCount)
		args = append(args, *filter.AgeMin)
		argCount++
	}
	if filter.AgeMax != nil {
		query += fmt.Sprintf(" AND p.age <= $%d", argCount)
		args = append(args, *filter.AgeMax)
		argCount++
	}
	if filter.Location != nil {
		query += fmt.Sprintf(" AND p.location = $%d", argCount)
		args = append(args, *filter.Location)
		argCount++
	}
	if len(filter.ExcludeIDs) > 0 {
		query += fmt.Sprintf(" AND NOT (p.id = ANY($%d))", argCount)
		args = append(args, pq.Array(filter.ExcludeIDs))
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY COALESCE(r.combined_rating, 0) DESC, p.id ASC LIMIT $%d", argCount)
	args = append(args, filter.Limit)

	rows, err := ext(ctx, r.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.RankedProfile
	for rows.Next() {
		var rp repository.RankedProfile
		err := rows.Scan(
			&rp.Profile.ID, &rp.Profile.UserID, &rp.Profile.Name, &rp.Profile.Age,
			&rp.Profile.Gender, &rp.Profile.Bio, &rp.Profile.Location,
			pq.Array(&rp.Profile.Interests),
			&rp.Profile.PreferredAgeMin, &rp.Profile.PreferredAgeMax,
			&rp.Profile.PreferredGender, &rp.Profile.PreferredLocation,
			&rp.Profile.Completeness, &rp.Profile.PhotoCount,
			&rp.Profile.CreatedAt, &rp.Profile.UpdatedAt,
			&rp.Rating.Primary, &rp.Rating.Behavioral, &rp.Rating.Combined,
			&rp.Rating.LastCalculated,
		)
		if err != nil {
			return nil, err
		}
		rp.Rating.ProfileID = rp.Profile.ID
		result = append(result, &rp)
	}
	return result, rows.Err()
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, `SELECT COUNT(*) FROM profiles`)
	return count, err
}
