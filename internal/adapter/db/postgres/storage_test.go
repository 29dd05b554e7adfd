package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/The-Gleb/advertisement_form/pkg/client/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/ory/dockertest"
	"github.com/ory/dockertest/docker"
	"github.com/stretchr/testify/require"
)

var dsn string

func TestMain(m *testing.M) {
	os.Exit(runWithPostgres(m))
}

func runWithPostgres(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		slog.Warn("docker is not available, skipping postgres tests")
		return m.Run()
	}

	pg, err := pool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        "alpine",
			Env: []string{
				"POSTGRES_USER=postgres",
				"POSTGRES_PASSWORD=postgres",
			},
			ExposedPorts: []string{"5432"},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		slog.Error("failed to start postgres", "error", err)
		return m.Run()
	}
	defer func() {
		if err := pool.Purge(pg); err != nil {
			slog.Error("failed to purge the postgres container", "error", err)
		}
	}()

	addr := fmt.Sprintf("postgres://postgres:postgres@%s/postgres?sslmode=disable", pg.GetHostPort("5432/tcp"))

	pool.MaxWait = 30 * time.Second
	err = pool.Retry(func() error {
		conn, err := pgx.Connect(context.Background(), addr)
		if err != nil {
			return err
		}
		return conn.Close(context.Background())
	})
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		return m.Run()
	}

	dsn = addr
	return m.Run()
}

func newTestClient(t *testing.T) postgresql.Client {
	t.Helper()
	if dsn == "" {
		t.Skip("postgres is not available")
	}

	require.NoError(t, RunMigrations(dsn))
	require.NoError(t, RunMigrations(dsn), "second run must be a no-op")

	client, err := postgresql.NewClient(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	_, err = client.Exec(context.Background(), `TRUNCATE TABLE tokens, advertisement_submissions;`)
	require.NoError(t, err)

	return client
}

func TestTokenStorage_CheckToken(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Exec(ctx,
		`INSERT INTO tokens ("token", organization_id, is_admin)
		VALUES ('user-token', 'org-1', FALSE), ('admin-token', '', TRUE);`,
	)
	require.NoError(t, err)

	s := NewTokenStorage(client)

	tests := []struct {
		name    string
		token   string
		want    entity.TokenInfo
		wantErr errors.ErrorCode
	}{
		{name: "user", token: "user-token", want: entity.TokenInfo{OrganizationID: "org-1"}},
		{name: "admin", token: "admin-token", want: entity.TokenInfo{IsAdmin: true}},
		{name: "unknown", token: "nope", wantErr: errors.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CheckToken(ctx, tt.token)
			if tt.wantErr != "" {
				require.Equal(t, tt.wantErr, errors.Code(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSubmissionStorage(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	s := NewSubmissionStorage(client)

	created := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	first := entity.Submission{
		FormID:          "form-1",
		Sequence:        1,
		OrganizationID:  "org-1",
		Mode:            entity.ModeRegister,
		AdvertisementID: "ad-7",
		CreatedAt:       created,
	}
	second := entity.Submission{
		FormID:          "form-2",
		Sequence:        1,
		OrganizationID:  "org-1",
		Mode:            entity.ModeEdit,
		AdvertisementID: "ad-42",
		Fields:          []string{"endDate"},
		CreatedAt:       created.Add(time.Minute),
	}

	require.NoError(t, s.SaveSubmission(ctx, first))
	require.NoError(t, s.SaveSubmission(ctx, second))

	err := s.SaveSubmission(ctx, first)
	require.Equal(t, errors.ErrAlreadyExists, errors.Code(err))

	got, err := s.ListSubmissions(ctx, "org-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "ad-42", got[0].AdvertisementID)
	require.Equal(t, []string{"endDate"}, got[0].Fields)
	require.Equal(t, entity.ModeRegister, got[1].Mode)
	require.Empty(t, got[1].Fields)
	require.True(t, created.Equal(got[1].CreatedAt))

	got, err = s.ListSubmissions(ctx, "org-2", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}
