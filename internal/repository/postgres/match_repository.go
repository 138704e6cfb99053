package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// The pair is stored normalized so the partial unique index on
	// (profile1_id, profile2_id) WHERE status = 'active' can hold.
	p1, p2 := domain.NormalizePair(match.Profile1ID, match.Profile2ID)

	query := `
		INSERT INTO matches (profile1_id, profile2_id, status, chat_initiated)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := ext(ctx, r.db).QueryRowxContext(ctx, query, p1, p2, match.Status, match.ChatInitiated).
		Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return err
	}
	match.Profile1ID = p1
	match.Profile2ID = p2
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetActiveByProfiles(ctx context.Context, profile1ID, profile2ID int) (*domain.Match, error) {
	p1, p2 := domain.NormalizePair(profile1ID, profile2ID)

	var match domain.Match
	query := `
		SELECT * FROM matches
		WHERE profile1_id = $1 AND profile2_id = $2 AND status = $3
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &match, query, p1, p2, domain.MatchStatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetActiveMatches(ctx context.Context, profileID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (profile1_id = $1 OR profile2_id = $1) AND status = $2
		ORDER BY created_at DESC
	`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &matches, query, profileID, domain.MatchStatusActive)
	return matches, err
}

func (r *matchRepository) CountByProfile(ctx context.Context, profileID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM matches WHERE profile1_id = $1 OR profile2_id = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, profileID)
	return count, err
}

func (r *matchRepository) CountChatInitiated(ctx context.Context, profileID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM matches
		WHERE (profile1_id = $1 OR profile2_id = $1) AND chat_initiated = true
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, profileID)
	return count, err
}

func (r *matchRepository) MarkChatInitiated(ctx context.Context, id int) error {
	// One-way transition: repeating the update leaves the flag true, so the
	// call is idempotent by construction.
	query := `UPDATE matches SET chat_initiated = true WHERE id = $1`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) ArchiveStale(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE matches
		SET status = $1
		WHERE status = $2 AND chat_initiated = false AND created_at < $3
	`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, domain.MatchStatusArchived, domain.MatchStatusActive, cutoff)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *matchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, `SELECT COUNT(*) FROM matches`)
	return count, err
}
