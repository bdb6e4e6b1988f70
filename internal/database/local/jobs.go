package local

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"juntell/careers-gateway/internal/careers"
)

// JobSource is the in-process job posting store.
type JobSource struct {
	mu   sync.RWMutex
	jobs map[string]*careers.Job
}

func InitJobSource() *JobSource {
	return &JobSource{
		jobs: make(map[string]*careers.Job),
	}
}

func (js *JobSource) Create(_ context.Context, job *careers.Job) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, exists := js.jobs[job.ID]; exists {
		return fmt.Errorf("job posting %s already exists", job.ID)
	}
	js.jobs[job.ID] = copyJob(job)
	return nil
}

func (js *JobSource) Get(_ context.Context, id string) (*careers.Job, error) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	job, exists := js.jobs[id]
	if !exists {
		return nil, careers.ErrNotFound
	}
	return copyJob(job), nil
}

func (js *JobSource) List(_ context.Context, filter careers.Filter) ([]*careers.Job, error) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	matched := make([]*careers.Job, 0, len(js.jobs))
	for _, job := range js.jobs {
		switch {
		case job.Status != careers.StatusActive:
		case query != "" && !strings.Contains(strings.ToLower(job.Title), query):
		case filter.Department != "" && job.Department != filter.Department:
		case filter.Location != "" && job.Location != filter.Location:
		case filter.EmploymentType != "" && job.EmploymentType != filter.EmploymentType:
		default:
			summary := copyJob(job)
			summary.Description = ""
			matched = append(matched, summary)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if !a.PostedAt.Equal(b.PostedAt) {
			return a.PostedAt.After(b.PostedAt)
		}
		return a.ID < b.ID
	})

	offset := filter.Offset()
	if offset < 0 || offset >= len(matched) {
		return []*careers.Job{}, nil
	}
	end := offset + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func copyJob(job *careers.Job) *careers.Job {
	copied := *job
	copied.Tags = slices.Clone(job.Tags)
	return &copied
}
