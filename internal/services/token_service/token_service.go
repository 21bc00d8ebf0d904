package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vineet_portfolio/internal/domain/models"
	libjwt "vineet_portfolio/internal/lib/jwt"
	"vineet_portfolio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenNotInStorage  = errors.New("token not found in storage")
)

// TokenService выпускает пары access/refresh токенов. Refresh-токены
// одноразовые и живут в redis до ротации или логаута.
type TokenService struct {
	repo       repository.TokenRepository
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(repo repository.TokenRepository, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		repo:       repo,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	accessToken, err := libjwt.NewToken(user, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := libjwt.NewToken(user, s.secret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	err = s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens ротирует пару: старый refresh-токен проверяется, удаляется
// из хранилища и заменяется новым
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	rawUID, ok := claims["uid"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}
	userID, err := uuid.Parse(rawUID)
	if err != nil {
		return nil, ErrInvalidTokenClaims
	}

	exists, err := s.repo.GetRefreshToken(ctx, rawUID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenNotInStorage
	}

	if err := s.repo.DeleteRefreshToken(ctx, rawUID, refreshToken); err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return s.GenerateTokens(ctx, models.User{
		ID:      userID,
		Email:   email,
		IsAdmin: isAdmin,
	})
}

// ValidateAccess проверяет access-токен и возвращает uid и признак админа
func (s *TokenService) ValidateAccess(tokenString string) (uuid.UUID, bool, error) {
	uid, isAdmin, err := libjwt.ParseToken(tokenString, s.secret)
	if err != nil {
		return uuid.Nil, false, ErrInvalidToken
	}
	return uid, isAdmin, nil
}

// Logout инвалидирует все refresh-токены пользователя
func (s *TokenService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllUserTokens(ctx, userID.String())
}
