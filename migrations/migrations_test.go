package migrations

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(files, "sql")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, ident, err := src.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "stock_schema", ident)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	for _, table := range []string{"users", "products", "stock_balances", "stock_reservations", "stock_ledger", "audit_logs", "stock_alerts"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}

	down, _, err := src.ReadDown(version)
	require.NoError(t, err)
	down.Close()
}
