//go:build acceptance

package acceptance

import (
	"net/http"

	"github.com/prperemyshlev/pomodoro-service/internal/dto"
)

func (s *Suite) register(username, password string) dto.AuthResponse {
	var resp dto.AuthResponse
	code := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: username, Password: password}, &resp)
	s.Require().Equal(http.StatusCreated, code)
	return resp
}

func (s *Suite) TestRegister_Success() {
	resp := s.register("alice", "pw1")

	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.AccessToken)
	s.Equal("Bearer", resp.TokenType)
	s.NotZero(resp.ExpiresIn)
}

func (s *Suite) TestRegister_DuplicateUsername() {
	s.register("alice", "pw1")

	var errResp dto.ErrorResponse
	code := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "alice", Password: "other"}, &errResp)
	s.Equal(http.StatusConflict, code)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidUsername() {
	code := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "a b", Password: "pw1"}, nil)
	s.Equal(http.StatusBadRequest, code)
}

func (s *Suite) TestLogin_Success() {
	registered := s.register("alice", "pw1")

	var resp dto.AuthResponse
	code := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "pw1"}, &resp)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(registered.UserID, resp.UserID)
	s.NotEmpty(resp.AccessToken)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.register("alice", "pw1")

	var errResp dto.ErrorResponse
	code := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "pw2"}, &errResp)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestLogin_UnknownUser() {
	code := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "nobody", Password: "pw1"}, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *Suite) TestGetMe() {
	registered := s.register("alice", "pw1")

	var me dto.UserResponse
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/auth/me", registered.AccessToken, nil, &me))
	s.Equal(registered.UserID, me.ID)
	s.Require().NotNil(me.Username)
	s.Equal("alice", *me.Username)
	s.NotEmpty(me.CreatedAt)
}

func (s *Suite) TestGetMe_NoToken() {
	var errResp dto.ErrorResponse
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/auth/me", "", nil, &errResp))
	s.Equal("Authorization header is required", errResp.Message)
}

func (s *Suite) TestGetMe_InvalidToken() {
	var errResp dto.ErrorResponse
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/auth/me", "invalid-token", nil, &errResp))
	s.Equal("Invalid token", errResp.Message)
}

func (s *Suite) TestGoogleLogin_Disabled() {
	s.Equal(http.StatusNotImplemented, s.do(http.MethodGet, "/api/v1/auth/google/login?redirect=false", "", nil, nil))
}
