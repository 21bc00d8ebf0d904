package jwt

import (
	"fmt"
	"time"

	"vineet_portfolio/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewToken выпускает подписанный access-токен для пользователя
func NewToken(user models.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID.String()
	claims["email"] = user.Email
	claims["is_admin"] = user.IsAdmin
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия, возвращает uid из claims
func ParseToken(tokenString, secret string) (uuid.UUID, bool, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, false, fmt.Errorf("invalid token claims")
	}

	rawUID, ok := claims["uid"].(string)
	if !ok {
		return uuid.Nil, false, fmt.Errorf("uid claim missing")
	}

	uid, err := uuid.Parse(rawUID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("malformed uid claim: %w", err)
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return uid, isAdmin, nil
}
