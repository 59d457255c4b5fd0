package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenIssuer         = "invoicehero"
	minimumSecretLength = 16
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenSecret  = errors.New("token secret must not be empty")
	ErrTokenSubject = errors.New("token subject must not be empty")
)

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrTokenSecret
	}
	if len(secret) < minimumSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d characters", minimumSecretLength)
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a bearer token whose subject is userID.
func (manager *TokenManager) Issue(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrTokenSubject
	}
	now := manager.now()
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(manager.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(manager.secret)
}

// Verify returns the user id carried by a token issued by Issue.
func (manager *TokenManager) Verify(tokenValue string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return manager.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(manager.now),
	)
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
