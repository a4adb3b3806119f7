package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"example.com/gym/internal/domain"
)

// MessageWriter is the narrow producer interface the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// Publisher turns registry mutations into Kafka messages. It implements
// domain.EventSink. Publish failures are logged and swallowed: the registry
// mutation has already committed and must not be rolled back over a broker
// hiccup.
type Publisher struct {
	writer       MessageWriter
	memberTopic  string
	workoutTopic string
	logger       *log.Logger
}

// NewPublisher constructs a Publisher emitting to the given topics.
func NewPublisher(writer MessageWriter, memberTopic, workoutTopic string) *Publisher {
	return &Publisher{
		writer:       writer,
		memberTopic:  memberTopic,
		workoutTopic: workoutTopic,
		logger:       log.New(log.Writer(), "[events] ", log.LstdFlags),
	}
}

// MemberAdded implements domain.EventSink.
func (p *Publisher) MemberAdded(ctx context.Context, member domain.Member) {
	p.publish(ctx, p.memberTopic, TypeMemberAdded, member.MembershipID, MemberAdded{
		MemberID: member.MembershipID,
		Name:     member.Name,
	})
}

// WorkoutLogged implements domain.EventSink.
func (p *Publisher) WorkoutLogged(ctx context.Context, member domain.Member, record domain.WorkoutRecord) {
	p.publish(ctx, p.workoutTopic, TypeWorkoutLogged, member.MembershipID, WorkoutLogged{
		MemberID:   member.MembershipID,
		MemberName: member.Name,
		Exercise:   record.Exercise,
		Sets:       record.Sets,
		Reps:       record.Reps,
		Weight:     record.Weight,
		Volume:     record.Volume,
		Date:       record.Date,
	})
}

func (p *Publisher) publish(ctx context.Context, topic, eventType string, memberID int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Printf("marshal error (event_type=%s): %v", eventType, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(memberID)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "occurred_at", Value: []byte(time.Now().UTC().Format(time.RFC3339Nano))},
		},
	}

	if err := p.writer.WriteMessages(ctx, topic, msg); err != nil {
		p.logger.Printf("publish error (topic=%s, event_type=%s, member=%d): %v", topic, eventType, memberID, err)
	}
}
