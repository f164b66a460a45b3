package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/countwave/internal/app"
	"github.com/thenoetrevino/countwave/internal/config"
	"github.com/thenoetrevino/countwave/internal/database"
	"github.com/thenoetrevino/countwave/internal/testutil"
)

func TestGetCLIFromContext_BorrowedApp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := app.New(database.NewRepository(db))
	cfg := config.Default()

	ctx := WithConfig(WithApp(context.Background(), a), cfg)
	c, err := GetCLIFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, a, c.App)
	assert.Same(t, cfg, c.Config)

	// the borrowed app and its database stay usable
	require.NoError(t, c.Close())
	assert.NoError(t, db.PingContext(context.Background()))
}

func TestGetCLIFromContext_OpensConfiguredDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "countwave.db")

	c, err := GetCLIFromContext(WithConfig(context.Background(), cfg))
	require.NoError(t, err)
	require.NotNil(t, c.App)

	workspaces, err := c.App.WorkspaceService.ListWorkspaces(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Empty(t, workspaces)
	assert.NoError(t, c.Close())
}
