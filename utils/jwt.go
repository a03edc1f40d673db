package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cppla/aiblog/config"
)

const (
	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL = 72 * time.Hour
	// TokenIssuer marks tokens minted by this blog; others are rejected.
	TokenIssuer = "aiblog"
)

var errTokenSubject = errors.New("token subject does not match user id")

// Claims identify the blog account a bearer token was issued to.
// Subject carries the user id as a decimal string.
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Expiry returns when the token stops being accepted.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Now().Add(TokenTTL)
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// IssueToken signs an access token for the account, valid for TokenTTL.
func IssueToken(userID uint, username string) (string, error) {
	return GenerateToken(userID, username, TokenTTL)
}

// GenerateToken signs a token for the account that expires after duration.
func GenerateToken(userID uint, username string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

// ParseToken validates signature, issuer and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	secret := []byte(config.Get().JWTSecret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}); err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return nil, errTokenSubject
	}
	return claims, nil
}
