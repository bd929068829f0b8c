package postgresql

import (
	"context"
	_ "embed"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables the repositories read, if missing.
func Migrate(ctx context.Context, db *database.DB) error {
	_, err := db.Exec(ctx, schema)
	return err
}
