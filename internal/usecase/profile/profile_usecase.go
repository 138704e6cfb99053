package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
)

// RatingRecomputer recalculates a profile's materialized rating after the
// profile data it depends on changes.
type RatingRecomputer interface {
	Recompute(ctx context.Context, profileID int) (*domain.Rating, error)
	Get(ctx context.Context, profileID int) (*domain.Rating, error)
}

// ProfileCache covers both cache kinds the profile service invalidates: the
// owner's candidate list (stale preferences) and the profile's own detail view.
type ProfileCache interface {
	DeleteCandidateList(ctx context.Context, userID int)
	SetProfileDetail(ctx context.Context, profileID int, detail interface{})
	GetProfileDetail(ctx context.Context, profileID int, dest interface{}) bool
	DeleteProfileDetail(ctx context.Context, profileID int)
}

// PhotoStore is the object-store surface the profile service needs.
type PhotoStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	URL(key string) string
}

// FeedPreloader schedules background candidate preloading for a user.
type FeedPreloader interface {
	EnqueueFeedPreload(ctx context.Context, userID int) error
}

type ProfileUseCase struct {
	txManager   repository.TxManager
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
	ratings     RatingRecomputer
	cache       ProfileCache
	storage     PhotoStore
	preloader   FeedPreloader
	log         zerolog.Logger
}

func NewProfileUseCase(
	txManager repository.TxManager,
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	ratings RatingRecomputer,
	cache ProfileCache,
	storage PhotoStore,
	preloader FeedPreloader,
	log zerolog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		txManager:   txManager,
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		ratings:     ratings,
		cache:       cache,
		storage:     storage,
		preloader:   preloader,
		log:         log,
	}
}

// CreateInput carries the fields a user supplies when registering a profile.
type CreateInput struct {
	Name              string   `json:"name" binding:"required"`
	Age               int      `json:"age" binding:"required"`
	Gender            string   `json:"gender" binding:"required"`
	Bio               *string  `json:"bio"`
	Location          *string  `json:"location"`
	Interests         []string `json:"interests"`
	PreferredAgeMin   *int     `json:"preferred_age_min"`
	PreferredAgeMax   *int     `json:"preferred_age_max"`
	PreferredGender   *string  `json:"preferred_gender"`
	PreferredLocation *string  `json:"preferred_location"`
}

// UpdateInput is a partial update: nil fields stay untouched.
type UpdateInput struct {
	Name              *string  `json:"name"`
	Age               *int     `json:"age"`
	Bio               *string  `json:"bio"`
	Location          *string  `json:"location"`
	Interests         []string `json:"interests"`
	PreferredAgeMin   *int     `json:"preferred_age_min"`
	PreferredAgeMax   *int     `json:"preferred_age_max"`
	PreferredGender   *string  `json:"preferred_gender"`
	PreferredLocation *string  `json:"preferred_location"`
}

// Create registers a profile for a user. Preferred gender defaults to the
// opposite of the profile's own gender when not given. The profile row and
// its initial rating land in one transaction; a feed preload is enqueued
// afterwards, best-effort.
func (uc *ProfileUseCase) Create(ctx context.Context, userID int, in CreateInput) (*domain.Profile, error) {
	if in.Gender != domain.GenderMale && in.Gender != domain.GenderFemale {
		return nil, domain.ErrInvalidGender
	}
	if err := validateAgeRange(in.Age, in.PreferredAgeMin, in.PreferredAgeMax); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:            userID,
		Name:              in.Name,
		Age:               in.Age,
		Gender:            in.Gender,
		Bio:               in.Bio,
		Location:          in.Location,
		Interests:         in.Interests,
		PreferredAgeMin:   in.PreferredAgeMin,
		PreferredAgeMax:   in.PreferredAgeMax,
		PreferredGender:   in.PreferredGender,
		PreferredLocation: in.PreferredLocation,
	}
	if profile.PreferredGender == nil {
		if opposite := domain.OppositeGender(profile.Gender); opposite != "" {
			profile.PreferredGender = &opposite
		}
	}
	profile.Completeness = Completeness(profile)

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.profileRepo.Create(ctx, profile); err != nil {
			return err
		}
		if _, err := uc.ratings.Recompute(ctx, profile.ID); err != nil {
			return fmt.Errorf("failed to compute initial rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.preloader.EnqueueFeedPreload(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Int("user_id", userID).Msg("failed to enqueue feed preload")
	}

	uc.log.Info().Int("profile_id", profile.ID).Int("user_id", userID).Msg("profile created")
	return profile, nil
}

// Update applies a partial update, recomputes completeness and the rating in
// one transaction, then invalidates the owner's candidate list and the
// profile's detail view.
func (uc *ProfileUseCase) Update(ctx context.Context, userID int, in UpdateInput) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		profile.Name = *in.Name
	}
	if in.Age != nil {
		profile.Age = *in.Age
	}
	if in.Bio != nil {
		profile.Bio = in.Bio
	}
	if in.Location != nil {
		profile.Location = in.Location
	}
	if in.Interests != nil {
		profile.Interests = in.Interests
	}
	if in.PreferredAgeMin != nil {
		profile.PreferredAgeMin = in.PreferredAgeMin
	}
	if in.PreferredAgeMax != nil {
		profile.PreferredAgeMax = in.PreferredAgeMax
	}
	if in.PreferredGender != nil {
		profile.PreferredGender = in.PreferredGender
	}
	if in.PreferredLocation != nil {
		profile.PreferredLocation = in.PreferredLocation
	}

	if err := validateAgeRange(profile.Age, profile.PreferredAgeMin, profile.PreferredAgeMax); err != nil {
		return nil, err
	}
	profile.Completeness = Completeness(profile)

	err = uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return err
		}
		if _, err := uc.ratings.Recompute(ctx, profile.ID); err != nil {
			return fmt.Errorf("failed to recompute rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.DeleteCandidateList(ctx, userID)
	uc.cache.DeleteProfileDetail(ctx, profile.ID)

	return profile, nil
}

// Get returns a user's own profile.
func (uc *ProfileUseCase) Get(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// AddPhoto uploads photo bytes to the object store, records the row, bumps
// the denormalized photo count and recomputes the rating. When isMain is set
// the previous main photo is demoted first.
func (uc *ProfileUseCase) AddPhoto(ctx context.Context, userID int, data []byte, contentType string, telegramFileID *string, isMain bool) (*domain.Photo, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := uc.storage.Upload(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	photo := &domain.Photo{
		ProfileID:      profile.ID,
		StorageKey:     key,
		TelegramFileID: telegramFileID,
		IsMain:         isMain,
	}

	err = uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if isMain {
			if err := uc.photoRepo.ClearMain(ctx, profile.ID); err != nil {
				return err
			}
		}
		if err := uc.photoRepo.Create(ctx, photo); err != nil {
			return err
		}
		if err := uc.profileRepo.IncrementPhotoCount(ctx, profile.ID); err != nil {
			return err
		}
		if _, err := uc.ratings.Recompute(ctx, profile.ID); err != nil {
			return fmt.Errorf("failed to recompute rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.DeleteCandidateList(ctx, userID)
	uc.cache.DeleteProfileDetail(ctx, profile.ID)

	uc.log.Info().Int("profile_id", profile.ID).Str("key", key).Msg("photo added")
	return photo, nil
}

// PhotoView is a photo with its resolved serving URL.
type PhotoView struct {
	ID             int       `json:"id"`
	URL            string    `json:"url"`
	TelegramFileID *string   `json:"telegram_file_id,omitempty"`
	IsMain         bool      `json:"is_main"`
	CreatedAt      time.Time `json:"created_at"`
}

// Photos lists a profile's photos with serving URLs.
func (uc *ProfileUseCase) Photos(ctx context.Context, profileID int) ([]*PhotoView, error) {
	photos, err := uc.photoRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	views := make([]*PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, &PhotoView{
			ID:             p.ID,
			URL:            uc.storage.URL(p.StorageKey),
			TelegramFileID: p.TelegramFileID,
			IsMain:         p.IsMain,
			CreatedAt:      p.CreatedAt,
		})
	}
	return views, nil
}

// DetailView is the assembled per-profile read model served to viewers.
type DetailView struct {
	Profile *domain.Profile `json:"profile"`
	Photos  []*PhotoView    `json:"photos"`
	Rating  *domain.Rating  `json:"rating"`
}

// Detail returns the full view of a profile, read through the detail cache.
// A cached entry never outlives a rating refresh or a profile edit: those
// paths delete the key.
func (uc *ProfileUseCase) Detail(ctx context.Context, profileID int) (*DetailView, error) {
	var cached DetailView
	if uc.cache.GetProfileDetail(ctx, profileID, &cached) {
		return &cached, nil
	}

	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	photos, err := uc.Photos(ctx, profileID)
	if err != nil {
		return nil, err
	}
	rating, err := uc.ratings.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	detail := &DetailView{Profile: profile, Photos: photos, Rating: rating}
	uc.cache.SetProfileDetail(ctx, profileID, detail)
	return detail, nil
}

// requiredFields is the denominator of the completeness score.
const requiredFields = 9

// Completeness scores how filled-in a profile is, 0 to 1, over nine fields:
// name, age, gender, bio, location, interests, preferred age bounds and
// preferred gender. Preferred location is optional and not counted.
func Completeness(p *domain.Profile) float64 {
	filled := 0
	if p.Name != "" {
		filled++
	}
	if p.Age > 0 {
		filled++
	}
	if p.Gender != "" {
		filled++
	}
	if p.Bio != nil && *p.Bio != "" {
		filled++
	}
	if p.Location != nil && *p.Location != "" {
		filled++
	}
	if len(p.Interests) > 0 {
		filled++
	}
	if p.PreferredAgeMin != nil {
		filled++
	}
	if p.PreferredAgeMax != nil {
		filled++
	}
	if p.PreferredGender != nil && *p.PreferredGender != "" {
		filled++
	}
	return float64(filled) / float64(requiredFields)
}

func validateAgeRange(age int, min, max *int) error {
	if age < 18 || age > 100 {
		return domain.ErrInvalidAgeRange
	}
	if min != nil && max != nil && *min > *max {
		return domain.ErrInvalidAgeRange
	}
	if min != nil && *min < 18 {
		return domain.ErrInvalidAgeRange
	}
	return nil
}
