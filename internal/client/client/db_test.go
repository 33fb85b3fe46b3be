package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestInitDatabase_MigratesAndReturnsRepos(t *testing.T) {
	repos, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NotNil(t, repos.Documents)

	// schema created by the embedded migrations
	for _, table := range []string{"documents", "pages"} {
		var name string
		err := repos.DB.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoErrorf(t, err, "table %s missing", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDatabase_BadDSN(t *testing.T) {
	_, err := InitDatabase(context.Background(), "file:/nonexistent-dir/sub/x.db?mode=rw")
	require.Error(t, err)
}
