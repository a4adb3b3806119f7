//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestArchiveRecordsAndDeduplicates(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("gym"),
		postgrescontainer.WithUsername("gym"),
		postgrescontainer.WithPassword("gym"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	runMigrations(t, ctx, pool)

	archive := NewArchive(pool)

	workout := WorkoutEntry{
		EventID:    uuid.NewString(),
		MemberID:   1,
		MemberName: "Alex",
		Exercise:   "Bench Press",
		Sets:       3,
		Reps:       10,
		Weight:     135,
		Volume:     4050,
		Date:       "2025-03-14 09:30",
		Topic:      "gym_workout_events",
		Offset:     10,
		ReceivedAt: time.Now().UTC(),
	}

	require.NoError(t, archive.RecordWorkout(ctx, workout))
	// Replayed Kafka messages must be harmless.
	require.NoError(t, archive.RecordWorkout(ctx, workout))

	second := workout
	second.EventID = uuid.NewString()
	second.Exercise = "Squat"
	second.Volume = 5920
	second.Offset = 11
	require.NoError(t, archive.RecordWorkout(ctx, second))

	total, err := archive.MemberVolume(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 4050.0+5920.0, total)

	other, err := archive.MemberVolume(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 0.0, other)

	member := MemberEntry{
		EventID:    uuid.NewString(),
		MemberID:   1,
		Name:       "Alex",
		Topic:      "gym_member_events",
		Offset:     1,
		ReceivedAt: time.Now().UTC(),
	}
	require.NoError(t, archive.RecordMember(ctx, member))
	require.NoError(t, archive.RecordMember(ctx, member))

	var count int
	row := pool.QueryRow(ctx, `SELECT COUNT(*) FROM member_archive WHERE member_id=1`)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func runMigrations(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()

	sql, err := os.ReadFile("../../../db/migrations/0001_init.up.sql")
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(sql))
	require.NoError(t, err)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
}
