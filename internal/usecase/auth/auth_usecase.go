package auth

import (
	"context"
	"time"

	"github.com/bliinmaker/dating-bot/internal/config"
	"github.com/bliinmaker/dating-bot/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// UserResolver turns a Telegram identity into an account.
type UserResolver interface {
	GetOrCreate(ctx context.Context, telegramID int64, username *string) (*domain.User, error)
}

// AuthUseCase issues and verifies the JWTs the HTTP API runs on. Identity is
// established by the Telegram bot frontend, which is trusted to pass the real
// Telegram id; tokens only carry the internal user id.
type AuthUseCase struct {
	users  UserResolver
	secret string
	expiry time.Duration
}

func NewAuthUseCase(users UserResolver, cfg *config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		secret: cfg.Secret,
		expiry: time.Duration(cfg.ExpiryMin) * time.Minute,
	}
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Authenticate resolves the Telegram id to a user (creating one on first
// contact) and issues a signed token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, telegramID int64, username *string) (*AuthResponse, error) {
	user, err := uc.users.GetOrCreate(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(uc.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.secret))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// VerifyToken validates a token and returns the embedded user id.
func (uc *AuthUseCase) VerifyToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	return int(userID), nil
}
