package postgres

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/jmoiron/sqlx"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	query := `
		INSERT INTO interactions (from_profile_id, to_profile_id, type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		interaction.FromProfileID, interaction.ToProfileID, interaction.Type,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) HasLike(ctx context.Context, fromProfileID, toProfileID int) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interactions
			WHERE from_profile_id = $1 AND to_profile_id = $2 AND type = $3
		)
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, fromProfileID, toProfileID, domain.InteractionLike)
	return exists, err
}

func (r *interactionRepository) InteractedProfileIDs(ctx context.Context, fromProfileID int) ([]int, error) {
	var ids []int
	query := `SELECT DISTINCT to_profile_id FROM interactions WHERE from_profile_id = $1`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &ids, query, fromProfileID)
	return ids, err
}

func (r *interactionRepository) CountIncoming(ctx context.Context, toProfileID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interactions WHERE to_profile_id = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, toProfileID)
	return count, err
}

func (r *interactionRepository) CountLikesReceived(ctx context.Context, toProfileID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interactions WHERE to_profile_id = $1 AND type = $2`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, toProfileID, domain.InteractionLike)
	return count, err
}

func (r *interactionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, `SELECT COUNT(*) FROM interactions`)
	return count, err
}
