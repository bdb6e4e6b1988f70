package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"juntell/careers-gateway/internal/careers"
)

const jobsSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	department       TEXT NOT NULL,
	location         TEXT NOT NULL,
	employment_type  TEXT NOT NULL,
	experience_level TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	tags             TEXT[] NOT NULL DEFAULT '{}',
	status           TEXT NOT NULL DEFAULT 'active',
	is_featured      BOOLEAN NOT NULL DEFAULT FALSE,
	posted_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	jobSummaryColumns = `id, title, department, location, employment_type, experience_level, tags, status, is_featured, posted_at`
	jobColumns        = jobSummaryColumns + `, description`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type JobRepo struct {
	DB *pgxpool.Pool
}

func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{DB: db}
}

func (r *JobRepo) Migrate(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, jobsSchema)
	return err
}

func (r *JobRepo) Create(ctx context.Context, job *careers.Job) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID, job.Title, job.Department, job.Location, job.EmploymentType, job.ExperienceLevel,
		job.Tags, job.Status, job.IsFeatured, job.PostedAt, job.Description,
	)
	if err != nil {
		return fmt.Errorf("insert job posting: %w", err)
	}
	return nil
}

func (r *JobRepo) Get(ctx context.Context, id string) (*careers.Job, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query job posting: %w", err)
	}
	job, err := pgx.CollectExactlyOneRow(rows, scanJob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, careers.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan job posting: %w", err)
	}
	return job, nil
}

func (r *JobRepo) List(ctx context.Context, filter careers.Filter) ([]*careers.Job, error) {
	where := []string{"status = $1"}
	args := []any{careers.StatusActive}
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Query != "" {
		add("title ILIKE '%%' || $%d || '%%'", likeEscaper.Replace(filter.Query))
	}
	if filter.Department != "" {
		add("department = $%d", filter.Department)
	}
	if filter.Location != "" {
		add("location = $%d", filter.Location)
	}
	if filter.EmploymentType != "" {
		add("employment_type = $%d", filter.EmploymentType)
	}
	args = append(args, filter.Limit, filter.Offset())

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY is_featured DESC, posted_at DESC, id LIMIT $%d OFFSET $%d`,
		jobSummaryColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query job postings: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, scanJobSummary)
	if err != nil {
		return nil, fmt.Errorf("scan job postings: %w", err)
	}
	return jobs, nil
}

func scanJobSummary(row pgx.CollectableRow) (*careers.Job, error) {
	var job careers.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Department, &job.Location, &job.EmploymentType, &job.ExperienceLevel,
		&job.Tags, &job.Status, &job.IsFeatured, &job.PostedAt,
	)
	return &job, err
}

func scanJob(row pgx.CollectableRow) (*careers.Job, error) {
	var job careers.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Department, &job.Location, &job.EmploymentType, &job.ExperienceLevel,
		&job.Tags, &job.Status, &job.IsFeatured, &job.PostedAt, &job.Description,
	)
	return &job, err
}
