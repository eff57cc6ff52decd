package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/internal/dto"
	"github.com/prperemyshlev/pomodoro-service/internal/oauth"
	"github.com/prperemyshlev/pomodoro-service/internal/repository"
	"github.com/prperemyshlev/pomodoro-service/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     oauth.GoogleClient
	states     *OAuthStateStore
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new auth service. google may be nil, in which
// case Google sign-in fails with ErrProviderDisabled.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	google oauth.GoogleClient,
	states *OAuthStateStore,
	bcryptCost int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		google:     google,
		states:     states,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a local account and logs it in
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := utils.SanitizeUsername(req.Username)
	if !utils.ValidateUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-255 letters, digits, dots, dashes or underscores", ErrInvalidInput)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be 1-72 bytes long", ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     &username,
		PasswordHash: &passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.newAuthResponse(user.ID)
}

// Login authenticates a user by username and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, utils.SanitizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.newAuthResponse(user.ID)
}

// GoogleLoginURL issues a single-use state and returns the Google consent URL carrying it
func (s *authService) GoogleLoginURL(ctx context.Context) (string, error) {
	if s.google == nil {
		return "", ErrProviderDisabled
	}

	state := uuid.NewString()
	if err := s.states.Save(ctx, state); err != nil {
		return "", err
	}

	return s.google.AuthCodeURL(state), nil
}

// LoginWithGoogle completes the authorization code flow and logs the Google user in,
// creating an account on first sign-in
func (s *authService) LoginWithGoogle(ctx context.Context, code, state string) (*dto.AuthResponse, error) {
	if s.google == nil {
		return nil, ErrProviderDisabled
	}

	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOAuthState
	}

	info, err := s.google.GetUserInfo(ctx, code)
	if err != nil {
		if errors.Is(err, oauth.ErrExchange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOAuthCode, err)
		}
		return nil, err
	}

	user, err := s.resolveGoogleUser(ctx, info)
	if err != nil {
		return nil, err
	}

	return s.newAuthResponse(user.ID)
}

// resolveGoogleUser finds the account by stored Google token, then by email,
// and creates one when neither matches. The stored token is kept current.
// Only an email Google reports as verified may link or be stored.
func (s *authService) resolveGoogleUser(ctx context.Context, info *domain.GoogleUserData) (*domain.User, error) {
	user, err := s.userRepo.GetByExternalToken(ctx, domain.ProviderGoogle, info.AccessToken)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user by google token: %w", err)
	}

	email := ""
	if info.VerifiedEmail {
		email = info.Email
	}

	if email != "" {
		user, err = s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if err := s.userRepo.UpdateExternalToken(ctx, user.ID, domain.ProviderGoogle, info.AccessToken); err != nil {
				return nil, fmt.Errorf("failed to store google token: %w", err)
			}
			return user, nil
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	user = &domain.User{
		GoogleToken: &info.AccessToken,
		Email:       optional(email),
		Name:        optional(info.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	s.logger.Info("user registered via google", zap.String("user_id", user.ID))

	return user, nil
}

// GetUser gets user information
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
