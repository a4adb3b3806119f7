// Package postgres archives consumed registry events for reporting. The
// archive is append-only and deduplicated on event ID, so replayed Kafka
// messages are harmless.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Archive provides Postgres-backed storage for member and workout events.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive constructs an Archive.
func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

// MemberEntry is one archived member.added event.
type MemberEntry struct {
	EventID    string
	MemberID   int
	Name       string
	Topic      string
	Offset     int64
	ReceivedAt time.Time
}

// WorkoutEntry is one archived workout.logged event.
type WorkoutEntry struct {
	EventID    string
	MemberID   int
	MemberName string
	Exercise   string
	Sets       int
	Reps       int
	Weight     float64
	Volume     float64
	Date       string
	Topic      string
	Offset     int64
	ReceivedAt time.Time
}

// RecordMember stores a member.added event.
func (a *Archive) RecordMember(ctx context.Context, entry MemberEntry) error {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		`INSERT INTO member_archive (event_id, member_id, name, topic, record_offset, received_at)
         VALUES ($1,$2,$3,$4,$5,$6)
         ON CONFLICT (event_id) DO NOTHING`,
		entry.EventID,
		entry.MemberID,
		entry.Name,
		entry.Topic,
		entry.Offset,
		entry.ReceivedAt,
	)
	return err
}

// RecordWorkout stores a workout.logged event.
func (a *Archive) RecordWorkout(ctx context.Context, entry WorkoutEntry) error {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		`INSERT INTO workout_archive (event_id, member_id, member_name, exercise, sets, reps, weight, volume, logged_at, topic, record_offset, received_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
         ON CONFLICT (event_id) DO NOTHING`,
		entry.EventID,
		entry.MemberID,
		entry.MemberName,
		entry.Exercise,
		entry.Sets,
		entry.Reps,
		entry.Weight,
		entry.Volume,
		entry.Date,
		entry.Topic,
		entry.Offset,
		entry.ReceivedAt,
	)
	return err
}

// MemberVolume sums the archived volume for one member.
func (a *Archive) MemberVolume(ctx context.Context, memberID int) (float64, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var total float64
	row := conn.QueryRow(ctx,
		`SELECT COALESCE(SUM(volume), 0) FROM workout_archive WHERE member_id=$1`, memberID)
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
