package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Timesheet-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration archivo SQL versionado ("0001_init.sql" -> versión 1).
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrator aplica las migraciones embebidas y registra cada versión en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, log: log}
}

// Up aplica las migraciones pendientes en orden; cada una en su propia transacción.
// Devuelve cuántas se aplicaron.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}
	migrations, err := LoadMigrations(migrationFiles)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range migrations {
		if applied[mig.Version] {
			m.log.Debug().Int("version", mig.Version).Str("name", mig.Name).Msg("migración ya aplicada")
			continue
		}
		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("aplicando migración")
		if err := m.apply(ctx, mig); err != nil {
			return count, fmt.Errorf("migración %d (%s): %w", mig.Version, mig.Name, err)
		}
		count++
	}
	return count, nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	defer rows.Close()
	out := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadMigrations lee los .sql de migrations/ ordenados por versión.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, path := range names {
		base := strings.TrimSuffix(strings.TrimPrefix(path, "migrations/"), ".sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("nombre de migración inválido: %s", path)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("nombre de migración inválido: %s", path)
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(content)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// EmbeddedMigrations migraciones incluidas en el binario.
func EmbeddedMigrations() ([]Migration, error) {
	return LoadMigrations(migrationFiles)
}
