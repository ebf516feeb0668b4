package migrations_test

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/beer-catalog/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestRun_Up(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Run(ctx, db, "up"))
	// a second run is a no-op
	require.NoError(t, migrations.Run(ctx, db, "up"))

	assertTables(t, db, true)

	require.NoError(t, migrations.Run(ctx, db, "reset"))
	assertTables(t, db, false)

	require.NoError(t, migrations.Run(ctx, db, "up"))
	assertTables(t, db, true)
}

func TestValidate(t *testing.T) {
	const valid = "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n"

	tests := []struct {
		name      string
		fsys      fstest.MapFS
		wantError string
	}{
		{
			name: "valid files: ok",
			fsys: fstest.MapFS{
				"01_a.sql":  {Data: []byte(valid)},
				"02_b.sql":  {Data: []byte(valid)},
				"README.md": {Data: []byte("notes")},
			},
		},
		{
			name:      "missing down: error",
			fsys:      fstest.MapFS{"01_a.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")}},
			wantError: `migration "01_a.sql" missing "-- +goose Down"`,
		},
		{
			name:      "missing up: error",
			fsys:      fstest.MapFS{"01_a.sql": {Data: []byte("-- +goose Down\nSELECT 1;\n")}},
			wantError: `migration "01_a.sql" missing "-- +goose Up"`,
		},
		{
			name:      "bad filename: error",
			fsys:      fstest.MapFS{"products.sql": {Data: []byte(valid)}},
			wantError: `invalid migration filename "products.sql" (expected <version>_name.sql)`,
		},
		{
			name: "duplicate version: error",
			fsys: fstest.MapFS{
				"01_a.sql": {Data: []byte(valid)},
				"1_b.sql":  {Data: []byte(valid)},
			},
			wantError: `duplicate migration version 1 in "01_a.sql" and "1_b.sql"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := migrations.Validate(tt.fsys)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_Embedded(t *testing.T) {
	require.NoError(t, migrations.Validate(migrations.FS))
}

func assertTables(t *testing.T, db *sql.DB, want bool) {
	t.Helper()

	for _, table := range []string{"categories", "products", "cart_items"} {
		var exists bool
		err := db.QueryRowContext(t.Context(), "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, want, exists, table)
	}
}

func TestRun_NilDB(t *testing.T) {
	err := migrations.Run(context.Background(), nil, "up")
	require.ErrorContains(t, err, "db is required")
}
