package careers

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Department      string   `json:"department" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	EmploymentType  string   `json:"employment_type" validate:"required"`
	ExperienceLevel string   `json:"experience_level"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status" validate:"omitempty,oneof=active closed draft"`
	IsFeatured      bool     `json:"is_featured"`
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
	clock    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return &Service{
		repo:     repo,
		validate: validate,
		logger:   logger,
		clock:    time.Now,
	}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Job, error) {
	jobs, err := s.repo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	if jobs == nil {
		jobs = []*Job{}
	}
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return nil, ErrInvalidID
	}
	return s.repo.Get(ctx, strings.ToLower(id))
}

// Create publishes a posting. Status defaults to active.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Job, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Department = strings.TrimSpace(req.Department)
	req.Location = strings.TrimSpace(req.Location)
	req.EmploymentType = strings.TrimSpace(req.EmploymentType)

	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	job := &Job{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Department:      req.Department,
		Location:        req.Location,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: strings.TrimSpace(req.ExperienceLevel),
		Description:     req.Description,
		Tags:            tags,
		Status:          status,
		IsFeatured:      req.IsFeatured,
		PostedAt:        s.clock().UTC(),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("store job posting: %w", err)
	}

	s.logger.Info("job posting created", zap.String("id", job.ID), zap.String("title", job.Title))
	return job, nil
}
