// Package storage keeps a local SQLite history of generated version headers.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.make-git-version/history.db"

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	// Parallel builds of several sketches may record at the same time.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveGeneration(ctx context.Context, input GenerationInput) (int64, error) {
	if input.SourcePath == "" {
		return 0, errors.New("source path is required")
	}
	if input.Version == "" {
		return 0, errors.New("version is required")
	}
	if input.GenerationUUID == "" {
		input.GenerationUUID = uuid.NewString()
	}
	if input.GeneratedAt.IsZero() {
		input.GeneratedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (
			generation_uuid, source_path, build_path, header_path, macro,
			version, version_source, commit_sha, branch, dirty, changed,
			cli_version, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.GenerationUUID, input.SourcePath, input.BuildPath, input.HeaderPath, input.Macro,
		input.Version, input.VersionSource, input.Commit, input.Branch, input.Dirty, input.Changed,
		input.CLIVersion, input.GeneratedAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const generationColumns = `
	generation_id, generation_uuid, source_path, COALESCE(build_path, ''), COALESCE(header_path, ''),
	macro, version, version_source, COALESCE(commit_sha, ''), COALESCE(branch, ''),
	dirty, changed, COALESCE(cli_version, ''), generated_at`

func scanGeneration(rows interface{ Scan(...any) error }) (Generation, error) {
	var g Generation
	err := rows.Scan(&g.GenerationID, &g.GenerationUUID, &g.SourcePath, &g.BuildPath, &g.HeaderPath,
		&g.Macro, &g.Version, &g.VersionSource, &g.Commit, &g.Branch,
		&g.Dirty, &g.Changed, &g.CLIVersion, &g.GeneratedAt)
	return g, err
}

func (s *service) GetRecent(sourcePath string, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + generationColumns + ` FROM generations`
	args := []any{}
	if sourcePath != "" {
		query += ` WHERE source_path=?`
		args = append(args, sourcePath)
	}
	query += ` ORDER BY generated_at DESC, generation_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *service) GetLatest(sourcePath string) (*Generation, error) {
	row := s.db.QueryRow(`SELECT `+generationColumns+` FROM generations
		WHERE source_path=? ORDER BY generated_at DESC, generation_id DESC LIMIT 1`, sourcePath)
	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.ExecContext(ctx, `DELETE FROM generations WHERE generated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
