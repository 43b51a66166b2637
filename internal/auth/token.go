package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenKind separates the two token channels. A refresh token can only mint
// new access tokens; it never authorizes a resource request directly.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenExpired is returned when the token was valid but its expiry passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for bad signatures, malformed claims, or a
	// token of the wrong kind.
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL < accessTTL {
		refreshTTL = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload. The subject id is the only identity
// claim; role and identity existence are resolved against the live store.
type Claims struct {
	Kind TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// IssueAccess builds and signs a short-lived access token for the subject.
func (tm *TokenManager) IssueAccess(subjectID string) (string, time.Time, error) {
	return tm.issue(subjectID, TokenKindAccess, tm.accessTTL)
}

// IssueRefresh builds and signs a refresh token for the subject.
func (tm *TokenManager) IssueRefresh(subjectID string) (string, time.Time, error) {
	return tm.issue(subjectID, TokenKindRefresh, tm.refreshTTL)
}

// RefreshTTL exposes the refresh lifetime for cookie max-age computation.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

// AccessTTL exposes the access lifetime.
func (tm *TokenManager) AccessTTL() time.Duration {
	return tm.accessTTL
}

func (tm *TokenManager) issue(subjectID string, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate checks signature and expiry and returns the subject id. Only
// tokens of the expected kind pass; everything else fails ErrTokenInvalid,
// expiry fails ErrTokenExpired.
func (tm *TokenManager) Validate(tokenStr string, kind TokenKind) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Kind != kind || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
