package postgres_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
)

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := postgres.EmbeddedMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	first := migrations[0]
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "init", first.Name)
	assert.Contains(t, first.SQL, "CREATE TABLE IF NOT EXISTS invoice_items")
	assert.Contains(t, first.SQL, "uq_invoices_owner_number")
}

func TestLoadMigrations_Orden(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0010_indices.sql":  {Data: []byte("SELECT 10;")},
		"migrations/0002_usuarios.sql": {Data: []byte("SELECT 2;")},
		"migrations/0001_init.sql":     {Data: []byte("SELECT 1;")},
		"migrations/LEEME.txt":         {Data: []byte("ignorado")},
	}
	migrations, err := postgres.LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
	assert.Equal(t, "usuarios", migrations[1].Name)
}

func TestLoadMigrations_NombreInvalido(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/init.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := postgres.LoadMigrations(fsys)
	assert.Error(t, err)
}
