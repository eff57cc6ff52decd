package service

import (
	"errors"

	"github.com/prperemyshlev/pomodoro-service/internal/utils"
)

// Service errors. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = utils.ErrTokenExpired
	ErrInvalidToken       = utils.ErrInvalidToken

	ErrTaskNotFound          = errors.New("task not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")

	ErrProviderDisabled  = errors.New("identity provider is not configured")
	ErrInvalidOAuthState = errors.New("invalid or expired oauth state")
	ErrInvalidOAuthCode  = errors.New("invalid authorization code")

	ErrInvalidInput = errors.New("invalid input")
)
