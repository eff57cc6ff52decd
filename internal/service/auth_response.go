package service

import (
	"fmt"

	"github.com/prperemyshlev/pomodoro-service/internal/dto"
)

const tokenTypeBearer = "Bearer"

// newAuthResponse issues an access token for userID and wraps it in the login response
func (s *authService) newAuthResponse(userID string) (*dto.AuthResponse, error) {
	accessToken, err := s.IssueToken(userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserID:      userID,
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   s.jwtManager.GetAccessTokenExpiry(),
	}, nil
}

// IssueToken signs an access token for userID
func (s *authService) IssueToken(userID string) (string, error) {
	token, err := s.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ResolveToken returns the user ID carried by a valid token.
// It fails with ErrTokenExpired or ErrInvalidToken.
func (s *authService) ResolveToken(token string) (string, error) {
	return s.jwtManager.ValidateToken(token)
}
