package db

import (
	"context"
	"embed"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/The-Gleb/advertisement_form/pkg/client/postgresql"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	_ usecase.SubmissionStorage = new(submissionStorage)
	_ usecase.SubmissionReader  = new(submissionStorage)
)

//go:embed migration/*.sql
var migrationsDir embed.FS

func RunMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "migration")
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	if err := m.Up(); err != nil {
		if !stdErrors.Is(err, migrate.ErrNoChange) {
			slog.Error(err.Error())
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}

type submissionStorage struct {
	client postgresql.Client
}

func NewSubmissionStorage(client postgresql.Client) *submissionStorage {
	return &submissionStorage{client: client}
}

func (s *submissionStorage) SaveSubmission(ctx context.Context, submission entity.Submission) error {
	fields := submission.Fields
	if fields == nil {
		fields = []string{}
	}

	_, err := s.client.Exec(
		ctx,
		`INSERT INTO advertisement_submissions
			("form_id", "sequence", "organization_id", "mode", "advertisement_id", "fields", "created_at")
		VALUES
			($1, $2, $3, $4, $5, $6, $7);`,
		submission.FormID,
		submission.Sequence,
		submission.OrganizationID,
		string(submission.Mode),
		submission.AdvertisementID,
		fields,
		submission.CreatedAt,
	)
	if err != nil {
		slog.Error("error inserting in advertisement_submissions",
			"error", err,
		)
		var pgErr *pgconn.PgError
		if stdErrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errors.NewDomainError(errors.ErrAlreadyExists, "submission %d of form %s already recorded", submission.Sequence, submission.FormID)
		}
		return errors.NewDomainError(errors.ErrDB, "")
	}

	return nil
}

// ListSubmissions returns the most recent submissions of an organization, newest first.
func (s *submissionStorage) ListSubmissions(ctx context.Context, organizationID string, limit int) ([]entity.Submission, error) {
	rows, err := s.client.Query(
		ctx,
		`SELECT form_id, "sequence", organization_id, mode, advertisement_id, fields, created_at
		FROM advertisement_submissions
		WHERE organization_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;`,
		organizationID, limit,
	)
	if err != nil {
		slog.Error("error selecting from advertisement_submissions",
			"error", err,
		)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	submissions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Submission, error) {
		var (
			sub  entity.Submission
			mode string
		)
		err := row.Scan(&sub.FormID, &sub.Sequence, &sub.OrganizationID, &mode, &sub.AdvertisementID, &sub.Fields, &sub.CreatedAt)
		sub.Mode = entity.Mode(mode)
		return sub, err
	})
	if err != nil {
		slog.Error("error collecting rows",
			"error", err,
		)
		return nil, errors.NewDomainError(errors.ErrDB, "")
	}

	return submissions, nil
}
