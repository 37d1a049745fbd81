package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims carries only the user id; there are no scopes or roles.
type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 identity tokens.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	revoked *RevocationStore
	now     func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, revoked *RevocationStore) *TokenManager {
	if revoked == nil {
		revoked = NewRevocationStore()
	}
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// GenerateToken issues a token for userID that expires after the configured TTL.
func (m *TokenManager) GenerateToken(userID uint64) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies signature, expiry and revocation.
func (m *TokenManager) ValidateToken(encodedToken string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(encodedToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	if claims.ID != "" && m.revoked.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke blocks the token until its natural expiry.
func (m *TokenManager) Revoke(claims *Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	expiresAt := m.now().Add(m.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	m.revoked.Revoke(claims.ID, expiresAt)
}
