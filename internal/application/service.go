package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo      Repository
	validator *Validator
	logger    *zap.Logger
	clock     func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		validator: NewValidator(),
		logger:    logger,
		clock:     time.Now,
	}
}

// Submit validates req and stores it as a pending application.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Application, error) {
	req.JobID = strings.TrimSpace(req.JobID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.BirthDate = strings.TrimSpace(req.BirthDate)

	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	birthday, err := strconv.Atoi(req.BirthDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"birthDate": "must be numeric"}}
	}

	app := &Application{
		ID:              uuid.NewString(),
		JobID:           req.JobID,
		Department:      optional(req.Department),
		Name:            req.Name,
		Phone:           FormatPhone(req.Phone),
		Email:           req.Email,
		Birthday:        birthday,
		Referrer:        optional(req.Referrer),
		PrivacyOptional: req.PrivacyOptional,
		ResumeURL:       optional(req.ResumeURL),
		Status:          StatusPending,
		CreatedAt:       s.clock().UTC(),
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("store application: %w", err)
	}

	s.logger.Info("application submitted",
		zap.String("id", app.ID),
		zap.String("job_id", app.JobID))
	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Application, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
