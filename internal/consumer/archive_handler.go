package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"example.com/gym/internal/events"
	"example.com/gym/internal/persistence/postgres"
)

// Archive is the narrow surface of the Postgres archive the handler writes to.
type Archive interface {
	RecordMember(ctx context.Context, entry postgres.MemberEntry) error
	RecordWorkout(ctx context.Context, entry postgres.WorkoutEntry) error
}

// ArchiveHandler writes consumed registry events into the Postgres archive.
type ArchiveHandler struct {
	archive Archive
	logger  *log.Logger
}

// NewArchiveHandler constructs a handler backed by the provided archive.
func NewArchiveHandler(archive Archive) *ArchiveHandler {
	return &ArchiveHandler{
		archive: archive,
		logger:  log.New(log.Writer(), "[archive] ", log.LstdFlags),
	}
}

// Handle stores the event in the matching archive table. Unknown event types
// are logged and skipped so the offset still commits.
func (h *ArchiveHandler) Handle(ctx context.Context, msg Message) error {
	switch msg.EventType {
	case events.TypeMemberAdded:
		var payload events.MemberAdded
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode member.added payload: %w", err)
		}
		return h.archive.RecordMember(ctx, postgres.MemberEntry{
			EventID:    msg.EventID,
			MemberID:   payload.MemberID,
			Name:       payload.Name,
			Topic:      msg.Topic,
			Offset:     msg.Offset,
			ReceivedAt: msg.Timestamp,
		})
	case events.TypeWorkoutLogged:
		var payload events.WorkoutLogged
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode workout.logged payload: %w", err)
		}
		return h.archive.RecordWorkout(ctx, postgres.WorkoutEntry{
			EventID:    msg.EventID,
			MemberID:   payload.MemberID,
			MemberName: payload.MemberName,
			Exercise:   payload.Exercise,
			Sets:       payload.Sets,
			Reps:       payload.Reps,
			Weight:     payload.Weight,
			Volume:     payload.Volume,
			Date:       payload.Date,
			Topic:      msg.Topic,
			Offset:     msg.Offset,
			ReceivedAt: msg.Timestamp,
		})
	default:
		h.logger.Printf("skipping unknown event type %q (topic=%s, offset=%d)", msg.EventType, msg.Topic, msg.Offset)
		return nil
	}
}
