package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juntell/careers-gateway/gateway/middleware/ratelimiter"
	"juntell/careers-gateway/internal/careers"
)

func (s *testServer) seedJobs(t *testing.T, n int) []*careers.Job {
	t.Helper()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	jobs := make([]*careers.Job, 0, n)
	for i := 0; i < n; i++ {
		job := &careers.Job{
			ID:             fmt.Sprintf("00000000-0000-4000-8000-%012d", i),
			Title:          fmt.Sprintf("Engineer %02d", i),
			Department:     "engineering",
			Location:       "Seoul",
			EmploymentType: "full-time",
			Description:    "full description",
			Tags:           []string{"go"},
			Status:         careers.StatusActive,
			PostedAt:       base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.jobs.Create(context.Background(), job))
		jobs = append(jobs, job)
	}
	return jobs
}

func decodeJobs(t *testing.T, body []byte) []careers.Job {
	t.Helper()
	var jobs []careers.Job
	require.NoError(t, json.Unmarshal(body, &jobs))
	return jobs
}

func TestListJobs(t *testing.T) {
	s := newTestServer(t, nil, generous())
	seeded := s.seedJobs(t, 3)

	w := s.do(http.MethodGet, "/api/careers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	jobs := decodeJobs(t, w.Body.Bytes())
	require.Len(t, jobs, 3)
	assert.Equal(t, seeded[2].ID, jobs[0].ID, "newest first")
	assert.Empty(t, jobs[0].Description)
}

func TestListJobs_EmptyIsArray(t *testing.T) {
	s := newTestServer(t, nil, generous())

	w := s.do(http.MethodGet, "/api/careers", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListJobs_PagingIsClamped(t *testing.T) {
	s := newTestServer(t, nil, generous())
	s.seedJobs(t, 60)

	tests := []struct {
		query string
		want  int
	}{
		{"", careers.DefaultPageSize},
		{"?limit=500", careers.MaxPageSize},
		{"?limit=0&page=-1", careers.DefaultPageSize},
		{"?limit=abc", careers.DefaultPageSize},
		{"?limit=50&page=2", 10},
		{"?page=99", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/careers"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decodeJobs(t, w.Body.Bytes()), tt.want)
		})
	}
}

func TestListJobs_Filters(t *testing.T) {
	s := newTestServer(t, nil, generous())
	seeded := s.seedJobs(t, 2)
	require.NoError(t, s.jobs.Create(context.Background(), &careers.Job{
		ID: "00000000-0000-4000-8000-999999999999", Title: "Recruiter", Department: "people",
		Location: "Busan", EmploymentType: "contract", Status: careers.StatusActive,
	}))

	w := s.do(http.MethodGet, "/api/careers?q=engineer%2001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decodeJobs(t, w.Body.Bytes())
	require.Len(t, jobs, 1)
	assert.Equal(t, seeded[1].ID, jobs[0].ID)

	w = s.do(http.MethodGet, "/api/careers?department=people&location=Busan&employmentType=contract", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs = decodeJobs(t, w.Body.Bytes())
	require.Len(t, jobs, 1)
	assert.Equal(t, "Recruiter", jobs[0].Title)
}

func TestGetJob(t *testing.T) {
	s := newTestServer(t, nil, generous())
	seeded := s.seedJobs(t, 1)

	w := s.do(http.MethodGet, "/api/careers/"+seeded[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var job careers.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, "full description", job.Description)

	w = s.do(http.MethodGet, "/api/careers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/careers/11111111-2222-4333-8444-555555555555", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobs_NotRateLimited(t *testing.T) {
	s := newTestServer(t, nil, ratelimiter.Policy{MaxRequests: 1, Window: time.Minute})

	for i := 0; i < 5; i++ {
		w := s.do(http.MethodGet, "/api/careers", nil, "X-Real-IP", "192.0.2.7")
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAdmin_CreateJob(t *testing.T) {
	s := newTestServer(t, nil, generous())
	auth := []string{"Authorization", "Bearer " + testAdminToken}
	body := map[string]any{
		"title":           "Platform Engineer",
		"department":      "engineering",
		"location":        "Seoul",
		"employment_type": "full-time",
		"is_featured":     true,
	}

	w := s.do(http.MethodPost, "/admin/jobs", body)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/admin/jobs", body, auth...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data careers.Job `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, careers.StatusActive, created.Data.Status)

	w = s.do(http.MethodGet, "/api/careers/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/admin/jobs", map[string]any{"title": "missing fields"}, auth...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
