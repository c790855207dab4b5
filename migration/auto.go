package migration

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

// AutoMigrate creates or alters the tables from the entity definitions. It is
// used for local development, the versioned migrations are the source of
// truth in deployed environments.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(xcontext.DB(ctx))
}
