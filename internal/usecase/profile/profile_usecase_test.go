package profile

import (
	"context"
	"testing"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProfileRepo struct {
	repository.ProfileRepository
	byUser     map[int]*domain.Profile
	nextID     int
	photoCount map[int]int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byUser:     make(map[int]*domain.Profile),
		nextID:     1,
		photoCount: make(map[int]int),
	}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if _, exists := f.byUser[p.UserID]; exists {
		return domain.ErrProfileExists
	}
	p.ID = f.nextID
	f.nextID++
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	for _, p := range f.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) IncrementPhotoCount(_ context.Context, id int) error {
	f.photoCount[id]++
	for _, p := range f.byUser {
		if p.ID == id {
			p.PhotoCount++
		}
	}
	return nil
}

type fakePhotoRepo struct {
	photos      []*domain.Photo
	clearedMain []int
}

func (f *fakePhotoRepo) Create(_ context.Context, p *domain.Photo) error {
	p.ID = len(f.photos) + 1
	f.photos = append(f.photos, p)
	return nil
}

func (f *fakePhotoRepo) ListByProfile(_ context.Context, profileID int) ([]*domain.Photo, error) {
	var out []*domain.Photo
	for _, p := range f.photos {
		if p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) ClearMain(_ context.Context, profileID int) error {
	f.clearedMain = append(f.clearedMain, profileID)
	for _, p := range f.photos {
		if p.ProfileID == profileID {
			p.IsMain = false
		}
	}
	return nil
}

type fakeRatings struct {
	recomputed []int
}

func (f *fakeRatings) Recompute(_ context.Context, profileID int) (*domain.Rating, error) {
	f.recomputed = append(f.recomputed, profileID)
	return &domain.Rating{ProfileID: profileID}, nil
}

func (f *fakeRatings) Get(_ context.Context, profileID int) (*domain.Rating, error) {
	return &domain.Rating{ProfileID: profileID}, nil
}

type fakeCache struct {
	candidateDeletes []int
	detailDeletes    []int
	details          map[int]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{details: make(map[int]interface{})}
}

func (f *fakeCache) DeleteCandidateList(_ context.Context, userID int) {
	f.candidateDeletes = append(f.candidateDeletes, userID)
}

func (f *fakeCache) SetProfileDetail(_ context.Context, profileID int, detail interface{}) {
	f.details[profileID] = detail
}

func (f *fakeCache) GetProfileDetail(_ context.Context, profileID int, dest interface{}) bool {
	cached, ok := f.details[profileID]
	if !ok {
		return false
	}
	if d, ok := dest.(*DetailView); ok {
		*d = *cached.(*DetailView)
		return true
	}
	return false
}

func (f *fakeCache) DeleteProfileDetail(_ context.Context, profileID int) {
	f.detailDeletes = append(f.detailDeletes, profileID)
	delete(f.details, profileID)
}

type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	f.uploads++
	return "photos/test.jpg", nil
}

func (f *fakeStorage) URL(key string) string {
	return "http://localhost:9000/dating-bot/" + key
}

type fakePreloader struct {
	enqueued []int
}

func (f *fakePreloader) EnqueueFeedPreload(_ context.Context, userID int) error {
	f.enqueued = append(f.enqueued, userID)
	return nil
}

type fixture struct {
	uc        *ProfileUseCase
	profiles  *fakeProfileRepo
	photos    *fakePhotoRepo
	ratings   *fakeRatings
	cache     *fakeCache
	storage   *fakeStorage
	preloader *fakePreloader
}

func newFixture() *fixture {
	profiles := newFakeProfileRepo()
	photos := &fakePhotoRepo{}
	ratings := &fakeRatings{}
	cache := newFakeCache()
	store := &fakeStorage{}
	preloader := &fakePreloader{}

	uc := NewProfileUseCase(
		fakeTxManager{},
		profiles,
		photos,
		ratings,
		cache,
		store,
		preloader,
		zerolog.Nop(),
	)

	return &fixture{
		uc:        uc,
		profiles:  profiles,
		photos:    photos,
		ratings:   ratings,
		cache:     cache,
		storage:   store,
		preloader: preloader,
	}
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestCreateDefaultsPreferredGender(t *testing.T) {
	f := newFixture()

	p, err := f.uc.Create(context.Background(), 42, CreateInput{
		Name:   "Alice",
		Age:    25,
		Gender: domain.GenderFemale,
	})
	require.NoError(t, err)

	require.NotNil(t, p.PreferredGender)
	assert.Equal(t, domain.GenderMale, *p.PreferredGender)
	assert.Equal(t, []int{p.ID}, f.ratings.recomputed)
	assert.Equal(t, []int{42}, f.preloader.enqueued)
}

func TestCreateKeepsExplicitPreferredGender(t *testing.T) {
	f := newFixture()

	p, err := f.uc.Create(context.Background(), 42, CreateInput{
		Name:            "Alice",
		Age:             25,
		Gender:          domain.GenderFemale,
		PreferredGender: strptr("any"),
	})
	require.NoError(t, err)
	assert.Equal(t, "any", *p.PreferredGender)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), 42, CreateInput{Name: "A", Age: 25, Gender: "other"})
	assert.ErrorIs(t, err, domain.ErrInvalidGender)

	_, err = f.uc.Create(context.Background(), 42, CreateInput{Name: "A", Age: 15, Gender: domain.GenderMale})
	assert.ErrorIs(t, err, domain.ErrInvalidAgeRange)

	_, err = f.uc.Create(context.Background(), 42, CreateInput{
		Name: "A", Age: 25, Gender: domain.GenderMale,
		PreferredAgeMin: intptr(30), PreferredAgeMax: intptr(20),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAgeRange)
}

func TestCompleteness(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Completeness(&domain.Profile{}))
	})

	t.Run("required trio only", func(t *testing.T) {
		p := &domain.Profile{Name: "A", Age: 25, Gender: domain.GenderMale}
		assert.InDelta(t, 3.0/9.0, Completeness(p), 0.0001)
	})

	t.Run("all nine fields", func(t *testing.T) {
		p := &domain.Profile{
			Name:            "A",
			Age:             25,
			Gender:          domain.GenderMale,
			Bio:             strptr("hi"),
			Location:        strptr("Berlin"),
			Interests:       []string{"go"},
			PreferredAgeMin: intptr(20),
			PreferredAgeMax: intptr(30),
			PreferredGender: strptr(domain.GenderFemale),
		}
		assert.InDelta(t, 1.0, Completeness(p), 0.0001)
	})

	t.Run("empty strings do not count", func(t *testing.T) {
		p := &domain.Profile{
			Name: "A", Age: 25, Gender: domain.GenderMale,
			Bio: strptr(""), Location: strptr(""),
		}
		assert.InDelta(t, 3.0/9.0, Completeness(p), 0.0001)
	})
}

func TestUpdateRecomputesAndInvalidates(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), 42, CreateInput{
		Name: "Alice", Age: 25, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)
	before := created.Completeness

	updated, err := f.uc.Update(context.Background(), 42, UpdateInput{
		Bio:       strptr("hello"),
		Interests: []string{"travel"},
	})
	require.NoError(t, err)

	assert.Greater(t, updated.Completeness, before)
	assert.Contains(t, f.cache.candidateDeletes, 42)
	assert.Contains(t, f.cache.detailDeletes, created.ID)
	// Once at creation, once at update.
	assert.Len(t, f.ratings.recomputed, 2)
}

func TestAddPhoto(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), 42, CreateInput{
		Name: "Alice", Age: 25, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)

	photo, err := f.uc.AddPhoto(context.Background(), 42, []byte("img"), "image/jpeg", nil, true)
	require.NoError(t, err)

	assert.Equal(t, created.ID, photo.ProfileID)
	assert.True(t, photo.IsMain)
	assert.Equal(t, 1, f.storage.uploads)
	assert.Equal(t, 1, f.profiles.photoCount[created.ID])
	assert.Contains(t, f.photos.clearedMain, created.ID)

	// Second main photo demotes the first.
	second, err := f.uc.AddPhoto(context.Background(), 42, []byte("img2"), "image/jpeg", nil, true)
	require.NoError(t, err)
	assert.True(t, second.IsMain)
	assert.False(t, f.photos.photos[0].IsMain)
}

func TestDetailCaching(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), 42, CreateInput{
		Name: "Alice", Age: 25, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)

	first, err := f.uc.Detail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.Profile.Name)
	assert.Contains(t, f.cache.details, created.ID)

	second, err := f.uc.Detail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Profile.ID, second.Profile.ID)
}
