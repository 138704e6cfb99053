package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/bliinmaker/dating-bot/internal/repository"
	"github.com/rs/zerolog"
)

// RatingRecomputer recalculates a profile's materialized rating. Inside Like
// it runs within the ledger transaction, so a failed recompute rolls the
// whole interaction back.
type RatingRecomputer interface {
	Recompute(ctx context.Context, profileID int) (*domain.Rating, error)
}

// CandidateCache is the slice of the cache layer the ledger invalidates: a
// new match removes each party from the other's candidate pool.
type CandidateCache interface {
	DeleteCandidateList(ctx context.Context, userID int)
}

type InteractionUseCase struct {
	txManager       repository.TxManager
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	matchRepo       repository.MatchRepository
	messageRepo     repository.MessageRepository
	userRepo        repository.UserRepository
	ratings         RatingRecomputer
	cache           CandidateCache
	log             zerolog.Logger
}

func NewInteractionUseCase(
	txManager repository.TxManager,
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	ratings RatingRecomputer,
	cache CandidateCache,
	log zerolog.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		txManager:       txManager,
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		matchRepo:       matchRepo,
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		ratings:         ratings,
		cache:           cache,
		log:             log,
	}
}

// LikeResult reports whether a like closed the loop into a match.
type LikeResult struct {
	IsMatch bool `json:"is_match"`
	MatchID *int `json:"match_id,omitempty"`
}

// Like appends a like interaction and, when a reverse like already exists,
// creates the match, recomputes both ratings and signals the caller. The
// interaction append, match insert and rating writes are one transaction: on
// any failure nothing is visible. A like onto an already-matched profile is
// still recorded (history is append-only) but never creates a second active
// match.
func (uc *InteractionUseCase) Like(ctx context.Context, fromProfileID, toProfileID int) (*LikeResult, error) {
	fromProfile, toProfile, err := uc.resolvePair(ctx, fromProfileID, toProfileID)
	if err != nil {
		return nil, err
	}

	result := &LikeResult{}

	err = uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		interaction := &domain.Interaction{
			FromProfileID: fromProfileID,
			ToProfileID:   toProfileID,
			Type:          domain.InteractionLike,
		}
		if err := uc.interactionRepo.Create(ctx, interaction); err != nil {
			return fmt.Errorf("failed to create interaction: %w", err)
		}

		reciprocal, err := uc.interactionRepo.HasLike(ctx, toProfileID, fromProfileID)
		if err != nil {
			return fmt.Errorf("failed to check reciprocal like: %w", err)
		}
		if !reciprocal {
			return nil
		}

		// Pair uniqueness while active is checked before insert; the partial
		// unique index backs it up under concurrent likes.
		if _, err := uc.matchRepo.GetActiveByProfiles(ctx, fromProfileID, toProfileID); err == nil {
			return nil
		} else if !errors.Is(err, domain.ErrMatchNotFound) {
			return fmt.Errorf("failed to check existing match: %w", err)
		}

		match := &domain.Match{
			Profile1ID: fromProfileID,
			Profile2ID: toProfileID,
			Status:     domain.MatchStatusActive,
		}
		if err := uc.matchRepo.Create(ctx, match); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}

		if _, err := uc.ratings.Recompute(ctx, fromProfileID); err != nil {
			return fmt.Errorf("failed to recompute rating for profile %d: %w", fromProfileID, err)
		}
		if _, err := uc.ratings.Recompute(ctx, toProfileID); err != nil {
			return fmt.Errorf("failed to recompute rating for profile %d: %w", toProfileID, err)
		}

		result.IsMatch = true
		result.MatchID = &match.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.touchActivity(ctx, fromProfile.UserID)

	if result.IsMatch {
		// Post-commit, best-effort: each party leaves the other's pool.
		uc.cache.DeleteCandidateList(ctx, fromProfile.UserID)
		uc.cache.DeleteCandidateList(ctx, toProfile.UserID)

		uc.log.Info().
			Int("from_profile_id", fromProfileID).
			Int("to_profile_id", toProfileID).
			Int("match_id", *result.MatchID).
			Msg("match created")
	}

	return result, nil
}

// Skip appends a skip interaction. No match check, no rating recompute.
func (uc *InteractionUseCase) Skip(ctx context.Context, fromProfileID, toProfileID int) error {
	fromProfile, _, err := uc.resolvePair(ctx, fromProfileID, toProfileID)
	if err != nil {
		return err
	}

	interaction := &domain.Interaction{
		FromProfileID: fromProfileID,
		ToProfileID:   toProfileID,
		Type:          domain.InteractionSkip,
	}
	if err := uc.interactionRepo.Create(ctx, interaction); err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	uc.touchActivity(ctx, fromProfile.UserID)
	return nil
}

// CounterpartSummary is the public view of the other side of a match.
type CounterpartSummary struct {
	ProfileID int     `json:"profile_id"`
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
}

// LastMessage surfaces the read-model of the most recent chat message.
type LastMessage struct {
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchInfo is one entry of the matches listing.
type MatchInfo struct {
	MatchID       int                `json:"match_id"`
	CreatedAt     time.Time          `json:"created_at"`
	ChatInitiated bool               `json:"chat_initiated"`
	Counterpart   CounterpartSummary `json:"counterpart"`
	LastMessage   *LastMessage       `json:"last_message,omitempty"`
}

// Matches lists a profile's active matches with the counterpart summary and
// the latest message, when one exists. Matches whose counterpart profile
// vanished are skipped.
func (uc *InteractionUseCase) Matches(ctx context.Context, profileID int) ([]*MatchInfo, error) {
	matches, err := uc.matchRepo.GetActiveMatches(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	result := make([]*MatchInfo, 0, len(matches))
	for _, match := range matches {
		otherID, ok := match.OtherProfileID(profileID)
		if !ok {
			continue
		}

		other, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			uc.log.Warn().Err(err).Int("profile_id", otherID).Int("match_id", match.ID).
				Msg("counterpart profile missing, skipping match")
			continue
		}

		info := &MatchInfo{
			MatchID:       match.ID,
			CreatedAt:     match.CreatedAt,
			ChatInitiated: match.ChatInitiated,
			Counterpart: CounterpartSummary{
				ProfileID: other.ID,
				Name:      other.Name,
				Age:       other.Age,
				Bio:       other.Bio,
				Location:  other.Location,
			},
		}

		message, err := uc.messageRepo.GetLastByMatch(ctx, match.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get last message for match %d: %w", match.ID, err)
		}
		if message != nil {
			info.LastMessage = &LastMessage{
				SenderID:  message.SenderID,
				Content:   message.Content,
				Read:      message.Read,
				CreatedAt: message.CreatedAt,
			}
		}

		result = append(result, info)
	}

	return result, nil
}

// MarkChatInitiated flips the one-way chat flag on a match. Repeating the
// call is a no-op, not an error.
func (uc *InteractionUseCase) MarkChatInitiated(ctx context.Context, matchID int) error {
	return uc.matchRepo.MarkChatInitiated(ctx, matchID)
}

// resolvePair validates a directed interaction: no self-interaction, both
// profiles must exist.
func (uc *InteractionUseCase) resolvePair(ctx context.Context, fromProfileID, toProfileID int) (*domain.Profile, *domain.Profile, error) {
	if fromProfileID == toProfileID {
		return nil, nil, domain.ErrSelfInteraction
	}

	fromProfile, err := uc.profileRepo.GetByID(ctx, fromProfileID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile %d: %w", fromProfileID, err)
	}
	toProfile, err := uc.profileRepo.GetByID(ctx, toProfileID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile %d: %w", toProfileID, err)
	}

	return fromProfile, toProfile, nil
}

func (uc *InteractionUseCase) touchActivity(ctx context.Context, userID int) {
	if err := uc.userRepo.TouchLastActive(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Int("user_id", userID).Msg("failed to touch last_active")
	}
}
