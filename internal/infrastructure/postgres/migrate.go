package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate aplica los scripts de migrations/ en orden de nombre dentro de una sola transacción.
// Los scripts son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	return NewTxRunner(pool).Run(ctx, func(q Querier) error {
		for _, name := range names {
			script, err := migrationFiles.ReadFile(name)
			if err != nil {
				return fmt.Errorf("leer %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("aplicar %s: %w", name, err)
			}
		}
		return nil
	})
}
