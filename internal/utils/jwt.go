package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for a correctly signed token past its expiry
	ErrTokenExpired = errors.New("token is expired")

	// ErrInvalidToken is returned for any token that cannot be trusted
	ErrInvalidToken = errors.New("invalid token")
)

// AccessClaims are the claims carried by an access token
type AccessClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager manages JWT token operations
type JWTManager struct {
	secret            []byte
	method            jwt.SigningMethod
	accessTokenExpiry time.Duration
	now               func() time.Time
}

// NewJWTManager creates a new JWT manager. algorithm is one of HS256, HS384 or HS512.
func NewJWTManager(secret, algorithm string, accessTokenExpiry time.Duration) (*JWTManager, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWTManager{
		secret:            []byte(secret),
		method:            method,
		accessTokenExpiry: accessTokenExpiry,
		now:               time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens
func (j *JWTManager) WithClock(now func() time.Time) *JWTManager {
	j.now = now
	return j
}

// GenerateAccessToken generates a new access token for userID
func (j *JWTManager) GenerateAccessToken(userID string) (string, error) {
	now := j.now()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of a token and returns its user ID.
// It returns ErrTokenExpired or ErrInvalidToken and nothing else. Expiry is
// only reported for tokens whose signature checks out.
func (j *JWTManager) ValidateToken(tokenString string) (string, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	validator := jwt.NewValidator(jwt.WithExpirationRequired(), jwt.WithTimeFunc(j.now))
	if err := validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}
