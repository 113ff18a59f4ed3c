package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration returns the content of the first embedded migration whose file name
// ends with name + ".sql", e.g. "init_schema.up".
func Migration(name string) (string, []byte, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return "", nil, err
	}

	for _, e := range entries {
		if strings.HasSuffix(e.Name(), name+".sql") {
			content, err := migrationFiles.ReadFile("migrations/" + e.Name())
			return e.Name(), content, err
		}
	}
	return "", nil, fmt.Errorf("migration file not found")
}

// MigrateUp applies every embedded *.up.sql file in name order. The statements
// are idempotent, so it is safe to run on every start.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}
	return nil
}
