// Package postgres stores applications and job postings.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"juntell/careers-gateway/internal/application"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id               TEXT PRIMARY KEY,
	job_id           TEXT NOT NULL,
	department       TEXT,
	name             TEXT NOT NULL,
	phone            TEXT NOT NULL,
	email            TEXT NOT NULL,
	birthday         INTEGER NOT NULL,
	referrer         TEXT,
	privacy_optional BOOLEAN NOT NULL DEFAULT FALSE,
	resume_url       TEXT,
	status           TEXT NOT NULL DEFAULT 'pending',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const columns = `id, job_id, department, name, phone, email, birthday, referrer, privacy_optional, resume_url, status, created_at`

type ApplicationRepo struct {
	DB *pgxpool.Pool
}

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{DB: db}
}

func (r *ApplicationRepo) Migrate(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schema)
	return err
}

func (r *ApplicationRepo) Create(ctx context.Context, app *application.Application) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO applications (`+columns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.JobID, app.Department, app.Name, app.Phone, app.Email, app.Birthday,
		app.Referrer, app.PrivacyOptional, app.ResumeURL, app.Status, app.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id string) (*application.Application, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+columns+` FROM applications WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query application: %w", err)
	}
	app, err := pgx.CollectExactlyOneRow(rows, scanApplication)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return app, nil
}

func (r *ApplicationRepo) List(ctx context.Context, limit, offset int) ([]*application.Application, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+columns+` FROM applications ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	apps, err := pgx.CollectRows(rows, scanApplication)
	if err != nil {
		return nil, fmt.Errorf("scan applications: %w", err)
	}
	return apps, nil
}

func scanApplication(row pgx.CollectableRow) (*application.Application, error) {
	var app application.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.Department, &app.Name, &app.Phone, &app.Email, &app.Birthday,
		&app.Referrer, &app.PrivacyOptional, &app.ResumeURL, &app.Status, &app.CreatedAt,
	)
	return &app, err
}
