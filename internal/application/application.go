// Package application handles job application submissions from the
// careers site.
package application

import (
	"context"
	"errors"
	"time"
)

const StatusPending = "pending"

var ErrNotFound = errors.New("application not found")

type Application struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	Department      *string   `json:"department"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Birthday        int       `json:"birthday"`
	Referrer        *string   `json:"referrer"`
	PrivacyOptional bool      `json:"privacy_optional"`
	ResumeURL       *string   `json:"resume_url"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, limit, offset int) ([]*Application, error)
}
