package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(mysqlFS, "mysql/*.sql")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}

	require.NotZero(t, ups)
	require.Equal(t, ups, downs)
}

func TestAutoMigrate(t *testing.T) {
	ctx := testutil.MockContext()
	require.NoError(t, AutoMigrate(ctx))

	for _, table := range []string{"users", "clubs", "club_joins", "events", "event_joins", "notifications"} {
		require.True(t, xcontext.DB(ctx).Migrator().HasTable(table), table)
	}
}
