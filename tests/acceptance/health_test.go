//go:build acceptance

package acceptance

import (
	"io"
	"net/http"
	"strings"

	"github.com/prperemyshlev/pomodoro-service/internal/dto"
)

func (s *Suite) TestHealthEndpoint() {
	var body map[string]string
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", "", nil, &body))
	s.Equal("pass", body["status"])
}

func (s *Suite) TestPingEndpoints() {
	var resp dto.SuccessResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/ping/app", "", nil, &resp))
	s.Equal("app is working", resp.Message)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/ping/db", "", nil, &resp))
	s.Equal("Ok", resp.Message)
}

func (s *Suite) TestMetricsEndpoint() {
	var me dto.AuthResponse
	s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Username: "metrics", Password: "pw"}, &me)
	s.do(http.MethodGet, "/api/v1/tasks", me.AccessToken, nil, nil)

	resp, err := http.Get(s.BaseURL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(strings.Contains(string(raw), "task_cache_misses"))
}
