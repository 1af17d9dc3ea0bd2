package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"folio.dev/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	core, logs := observer.New(zap.DebugLevel)
	return NewClient(srv.URL+"/", time.Second, zap.New(core)), logs
}

func TestFetchSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"success":true,"data":{"github_projects":12,"live_projects":5,"years_experience":3}}`))
	})

	stats, ok := Fetch[models.Stats](context.Background(), c, EndpointStats)
	require.True(t, ok)
	assert.Equal(t, models.Stats{GithubProjects: 12, LiveProjects: 5, YearsExperience: 3}, stats)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		logged  string
	}{
		{
			name: "success false with message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"message":"database down"}`))
			},
			logged: "database down",
		},
		{
			name: "success false without message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false}`))
			},
			logged: ErrUnsuccessful.Error(),
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`<html>bad gateway</html>`))
			},
			logged: "decoding projects response (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestClient(t, tt.handler)

			projects, ok := Fetch[[]models.Project](context.Background(), c, EndpointProjects)
			assert.False(t, ok)
			assert.Nil(t, projects)

			entries := logs.FilterMessage("error fetching endpoint").All()
			require.Len(t, entries, 1)
			assert.Equal(t, EndpointProjects, entries[0].ContextMap()["endpoint"])
			assert.Contains(t, entries[0].ContextMap()["error"], tt.logged)
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, zap.NewNop())
	_, ok := Fetch[[]models.SkillCategory](context.Background(), c, EndpointSkills)
	assert.False(t, ok)
}

func TestFetchSuccessWithNonOKStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"success":true,"data":[{"title":"Go","skills":["chi"]}]}`))
	})

	skills, ok := Fetch[[]models.SkillCategory](context.Background(), c, EndpointSkills)
	require.True(t, ok)
	assert.Equal(t, "Go", skills[0].Title)
}

func TestURL(t *testing.T) {
	c := NewClient("http://backend:5000//", 0, nil)
	assert.Equal(t, "http://backend:5000/api/education", c.URL(EndpointEducation))
	assert.Equal(t, DefaultTimeout, c.HTTPClient().Timeout)
}
