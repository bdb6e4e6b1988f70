// Package careers serves the public job posting list and detail views.
package careers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
	StatusDraft  = "draft"

	DefaultPageSize = 10
	MaxPageSize     = 50
)

var (
	ErrNotFound   = errors.New("job posting not found")
	ErrInvalidID  = errors.New("job posting id must be a UUID")
	ErrInvalidJob = errors.New("invalid job posting")
)

type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Department      string    `json:"department"`
	Location        string    `json:"location"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags"`
	Status          string    `json:"status"`
	IsFeatured      bool      `json:"is_featured"`
	PostedAt        time.Time `json:"posted_at"`
}

// Filter selects active postings. Empty string fields do not filter;
// Query matches the title case-insensitively.
type Filter struct {
	Query          string
	Department     string
	Location       string
	EmploymentType string
	Page           int
	Limit          int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Normalize trims the text filters and clamps paging: a page below 1
// becomes 1, a limit below 1 becomes DefaultPageSize, and a limit above
// MaxPageSize is capped.
func (f Filter) Normalize() Filter {
	f.Query = strings.TrimSpace(f.Query)
	f.Department = strings.TrimSpace(f.Department)
	f.Location = strings.TrimSpace(f.Location)
	f.EmploymentType = strings.TrimSpace(f.EmploymentType)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

// ParsePaging reads page and limit query values; anything that is not an
// integer falls back to the defaults.
func ParsePaging(page, limit string) (int, int) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil {
		p = 1
	}
	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil {
		l = DefaultPageSize
	}
	return p, l
}

// Repository lists postings ordered featured first, then newest first.
// List omits descriptions.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter Filter) ([]*Job, error)
}
