package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/gym/internal/domain"
)

type capturedWrite struct {
	topic string
	msgs  []kafka.Message
}

type stubWriter struct {
	writes []capturedWrite
	err    error
}

func (w *stubWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	w.writes = append(w.writes, capturedWrite{topic: topic, msgs: msgs})
	return w.err
}

func headerValue(t *testing.T, msg kafka.Message, key string) string {
	t.Helper()
	for _, header := range msg.Headers {
		if header.Key == key {
			return string(header.Value)
		}
	}
	t.Fatalf("missing header %q", key)
	return ""
}

func TestPublisherMemberAdded(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewPublisher(writer, "gym_member_events", "gym_workout_events")

	publisher.MemberAdded(context.Background(), domain.Member{Name: "Alex", MembershipID: 1})

	require.Len(t, writer.writes, 1)
	require.Equal(t, "gym_member_events", writer.writes[0].topic)

	msg := writer.writes[0].msgs[0]
	require.Equal(t, "1", string(msg.Key))
	require.Equal(t, TypeMemberAdded, headerValue(t, msg, "event_type"))
	require.JSONEq(t, `{"member_id":1,"name":"Alex"}`, string(msg.Value))

	_, err := uuid.Parse(headerValue(t, msg, "event_id"))
	require.NoError(t, err)
}

func TestPublisherWorkoutLogged(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewPublisher(writer, "gym_member_events", "gym_workout_events")

	publisher.WorkoutLogged(context.Background(),
		domain.Member{Name: "Alex", MembershipID: 1},
		domain.WorkoutRecord{
			Date:     "2025-03-14 09:30",
			Exercise: "Bench Press",
			Sets:     3,
			Reps:     10,
			Weight:   135,
			Volume:   4050,
		})

	require.Len(t, writer.writes, 1)
	require.Equal(t, "gym_workout_events", writer.writes[0].topic)

	msg := writer.writes[0].msgs[0]
	require.Equal(t, TypeWorkoutLogged, headerValue(t, msg, "event_type"))
	require.JSONEq(t,
		`{"member_id":1,"member_name":"Alex","exercise":"Bench Press","sets":3,"reps":10,"weight":135,"volume":4050,"date":"2025-03-14 09:30"}`,
		string(msg.Value))
}

func TestPublisherSwallowsWriteErrors(t *testing.T) {
	writer := &stubWriter{err: errTest}
	publisher := NewPublisher(writer, "gym_member_events", "gym_workout_events")

	// Must not panic or propagate: the registry mutation already committed.
	publisher.MemberAdded(context.Background(), domain.Member{Name: "Alex", MembershipID: 1})
	require.Len(t, writer.writes, 1)
}

var errTest = kafka.UnknownTopicOrPartition
