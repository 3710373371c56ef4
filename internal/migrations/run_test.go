package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contentgen/internal/storage/pgtest"
)

func TestRunMigrations(t *testing.T) {
	db := pgtest.StartPostgres(t)

	err := Run(db, pgtest.MigrationsPath(t))
	require.NoError(t, err)

	for _, table := range []string{"users", "subscriptions", "payments", "content_items", "reports", "notifications", "faqs", "history"} {
		var exists bool
		err = db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "table %s should exist", table)
	}

	var exists bool
	err = db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'notifications'
			AND indexname = 'idx_notifications_dedup'
		)`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "dedup index should exist")

	var userCount int
	err = db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount)
	require.NoError(t, err)
	require.Zero(t, userCount, "migrations must not create accounts")
}

func TestMigrationIdempotency(t *testing.T) {
	db := pgtest.StartPostgres(t)
	path := pgtest.MigrationsPath(t)

	require.NoError(t, Run(db, path))
	require.NoError(t, Run(db, path), "running migrations twice should not fail")

	var faqCount int
	err := db.QueryRow("SELECT COUNT(*) FROM faqs").Scan(&faqCount)
	require.NoError(t, err)
	require.Equal(t, 4, faqCount, "seed must be applied once")
}

func TestRun_InvalidPath(t *testing.T) {
	db := pgtest.StartPostgres(t)

	err := Run(db, "/definitely/not/here")
	require.Error(t, err)
}
