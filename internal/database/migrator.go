package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// migrationLockID keys the advisory lock held while a migration file is applied.
// Any constant works as long as every replica uses the same one.
const migrationLockID = 0x57_0C_4B

// Migrator applies the *.sql files of an fs.FS in name order and remembers
// which ones ran in schema_migrations
type Migrator struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

func NewMigrator(pool *pgxpool.Pool, fsys fs.FS) *Migrator {
	return &Migrator{pool: pool, fsys: fsys}
}

// RunMigrations applies every pending file. Each file runs in its own
// transaction together with its schema_migrations row, so a failed file
// leaves no trace and is retried on the next start.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := m.files()
	if err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	pending := lo.Reject(files, func(name string, _ int) bool { return applied[name] })
	if len(pending) == 0 {
		log.Debug("[Migrator] Schema is up to date")
		return nil
	}

	for _, name := range pending {
		if err := m.apply(ctx, name); err != nil {
			return err
		}
	}
	log.WithField("count", len(pending)).Info("[Migrator] Applied migrations")
	return nil
}

// files lists the migration file names in apply order
func (m *Migrator) files() ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && path.Ext(e.Name()) == ".sql"
	})
	sort.Strings(names)
	return names, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return lo.SliceToMap(names, func(name string) (string, bool) { return name, true }), nil
}

// apply runs one file under the advisory lock. A replica that waited for the
// lock finds the row already recorded and skips the file.
func (m *Migrator) apply(ctx context.Context, name string) error {
	content, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	return pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockID); err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}

		var done bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, name,
		).Scan(&done); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			return nil
		}

		log.Printf("[Migrator] Running: %s", name)
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("run migration %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		return nil
	})
}
