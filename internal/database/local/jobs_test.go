package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juntell/careers-gateway/internal/careers"
)

func newJob(id, title, status string, featured bool, postedAt time.Time) *careers.Job {
	return &careers.Job{
		ID:             id,
		Title:          title,
		Department:     "engineering",
		Location:       "Seoul",
		EmploymentType: "full-time",
		Description:    "about " + title,
		Tags:           []string{"go", "redis"},
		Status:         status,
		IsFeatured:     featured,
		PostedAt:       postedAt,
	}
}

func seededJobSource(t *testing.T) *JobSource {
	t.Helper()
	js := InitJobSource()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	jobs := []*careers.Job{
		newJob("j1", "Backend Engineer", careers.StatusActive, false, base),
		newJob("j2", "Frontend Engineer", careers.StatusActive, false, base.Add(time.Hour)),
		newJob("j3", "Staff Engineer", careers.StatusActive, true, base.Add(-time.Hour)),
		newJob("j4", "Closed Engineer", careers.StatusClosed, true, base),
		newJob("j5", "Recruiter", careers.StatusActive, false, base),
	}
	jobs[4].Department = "people"
	jobs[4].Location = "Busan"
	jobs[4].EmploymentType = "contract"

	for _, job := range jobs {
		require.NoError(t, js.Create(ctx, job))
	}
	return js
}

func ids(jobs []*careers.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.ID)
	}
	return out
}

func TestJobSource_ListOrdersFeaturedThenNewest(t *testing.T) {
	js := seededJobSource(t)

	jobs, err := js.List(context.Background(), careers.Filter{}.Normalize())
	require.NoError(t, err)

	assert.Equal(t, []string{"j3", "j2", "j1", "j5"}, ids(jobs))
	for _, job := range jobs {
		assert.Empty(t, job.Description)
	}
}

func TestJobSource_ListFilters(t *testing.T) {
	js := seededJobSource(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter careers.Filter
		want   []string
	}{
		{"title query is case-insensitive", careers.Filter{Query: "ENGINEER"}, []string{"j3", "j2", "j1"}},
		{"department", careers.Filter{Department: "people"}, []string{"j5"}},
		{"location", careers.Filter{Location: "Seoul"}, []string{"j3", "j2", "j1"}},
		{"employment type", careers.Filter{EmploymentType: "contract"}, []string{"j5"}},
		{"combined", careers.Filter{Query: "front", Location: "Seoul"}, []string{"j2"}},
		{"no match", careers.Filter{Query: "chef"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := js.List(ctx, tt.filter.Normalize())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(jobs))
		})
	}
}

func TestJobSource_ListPaging(t *testing.T) {
	js := seededJobSource(t)
	ctx := context.Background()

	page, err := js.List(ctx, careers.Filter{Page: 2, Limit: 3}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, []string{"j5"}, ids(page))

	page, err = js.List(ctx, careers.Filter{Page: 5, Limit: 3}.Normalize())
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestJobSource_GetReturnsCopy(t *testing.T) {
	js := seededJobSource(t)
	ctx := context.Background()

	job, err := js.Get(ctx, "j4")
	require.NoError(t, err)
	assert.Equal(t, "about Closed Engineer", job.Description)

	job.Tags[0] = "mutated"
	again, err := js.Get(ctx, "j4")
	require.NoError(t, err)
	assert.Equal(t, "go", again.Tags[0])

	_, err = js.Get(ctx, "missing")
	assert.ErrorIs(t, err, careers.ErrNotFound)
}

func TestJobSource_CreateDuplicate(t *testing.T) {
	js := seededJobSource(t)

	err := js.Create(context.Background(), newJob("j1", "dup", careers.StatusActive, false, time.Now()))
	assert.Error(t, err)
}

func TestJobSource_ImplementsRepository(t *testing.T) {
	var _ careers.Repository = (*JobSource)(nil)
}
