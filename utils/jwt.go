package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "TableBookingApp"

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager menerbitkan dan memvalidasi JWT, termasuk daftar token yang sudah logout.
type TokenManager struct {
	secret []byte
	ttl    time.Duration

	mu        sync.RWMutex
	blacklist map[string]time.Time // token -> waktu kadaluarsa
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: make(map[string]time.Time),
	}
}

func (m *TokenManager) GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ParseToken(tokenString string) (*CustomClaims, error) {
	if m.IsRevoked(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Revoke memasukkan token ke blacklist sampai masa berlakunya habis (logout)
func (m *TokenManager) Revoke(tokenString string) {
	expiry := time.Now().Add(m.ttl)
	if claims, err := m.ParseToken(tokenString); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[tokenString] = expiry
	m.pruneLocked(time.Now())
}

func (m *TokenManager) IsRevoked(tokenString string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expiry, ok := m.blacklist[tokenString]
	return ok && time.Now().Before(expiry)
}

// pruneLocked membuang entri kadaluarsa; dipanggil saat Revoke dengan lock dipegang
func (m *TokenManager) pruneLocked(now time.Time) {
	for token, expiry := range m.blacklist {
		if now.After(expiry) {
			delete(m.blacklist, token)
		}
	}
}
