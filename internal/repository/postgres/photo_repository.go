package postgres

import (
	"context"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/jmoiron/sqlx"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (profile_id, storage_key, telegram_file_id, is_main)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		photo.ProfileID, photo.StorageKey, photo.TelegramFileID, photo.IsMain,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) ListByProfile(ctx context.Context, profileID int) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	query := `SELECT * FROM photos WHERE profile_id = $1 ORDER BY created_at`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &photos, query, profileID)
	return photos, err
}

func (r *photoRepository) ClearMain(ctx context.Context, profileID int) error {
	query := `UPDATE photos SET is_main = false WHERE profile_id = $1 AND is_main = true`
	_, err := ext(ctx, r.db).ExecContext(ctx, query, profileID)
	return err
}
