// internal/adapters/out/auth/jwt_manager.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

const (
	DefaultTTL = 24 * time.Hour
	issuer     = "varzan-api"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Claims は sub（admin ID）と role を持つ HS256 トークン
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager は管理者トークンの発行と検証を行う（usecase.TokenIssuerPort / TokenVerifierPort）。
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: JWT secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *JWTManager) Issue(subject, role string) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign: %w", err)
	}
	return signed, exp, nil
}

func (m *JWTManager) Verify(token string) (admindom.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return admindom.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return admindom.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return admindom.Principal{Subject: claims.Subject, Role: claims.Role}, nil
}
