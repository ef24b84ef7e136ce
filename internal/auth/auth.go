// Package auth issues and validates session tokens. A token is a signed JWT
// whose ID must also be live in Redis; logout deletes the Redis key, which
// revokes the token before its JWT expiry.
package auth

import (
	"fmt"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/config"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Store is the session-token slice of the storage layer.
type Store interface {
	SaveSessionToken(tokenID, userID string, ttl time.Duration) error
	GetSessionToken(tokenID string) (string, error)
	DeleteSessionToken(tokenID string) error
}

type TokenService struct {
	secret []byte
	store  Store
	ttl    time.Duration
}

func NewTokenService(secret string, store Store) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		store:  store,
		ttl:    config.SessionTokenTTL,
	}
}

// Issue mints a session token for the user and records it as live.
func (t *TokenService) Issue(userID string) (string, error) {
	tokenID := uuid.New().String()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": tokenID,
		"exp": time.Now().Add(t.ttl).Unix(),
		"iss": config.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}

	if err := t.store.SaveSessionToken(tokenID, userID, t.ttl); err != nil {
		return "", err
	}
	return signed, nil
}

// Validate checks the signature and the Redis liveness of a token and returns
// (userID, tokenID).
func (t *TokenService) Validate(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token: %w", apperrors.ErrAuthentication)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("malformed claims: %w", apperrors.ErrAuthentication)
	}
	userID, _ := claims["sub"].(string)
	tokenID, _ := claims["jti"].(string)
	if userID == "" || tokenID == "" {
		return "", "", fmt.Errorf("malformed claims: %w", apperrors.ErrAuthentication)
	}

	liveUser, err := t.store.GetSessionToken(tokenID)
	if err != nil {
		return "", "", err
	}
	if liveUser != userID {
		return "", "", fmt.Errorf("session revoked: %w", apperrors.ErrAuthentication)
	}
	return userID, tokenID, nil
}

// Revoke ends the session identified by tokenID.
func (t *TokenService) Revoke(tokenID string) error {
	return t.store.DeleteSessionToken(tokenID)
}
