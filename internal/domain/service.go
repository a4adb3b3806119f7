package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"example.com/gym/internal/observability"
)

// EventSink receives notifications about registry mutations. Implementations
// must not block registry correctness: publish failures are the sink's
// problem to report.
type EventSink interface {
	MemberAdded(ctx context.Context, member Member)
	WorkoutLogged(ctx context.Context, member Member, record WorkoutRecord)
}

// SnapshotOutcome reports the result of a persistence operation. Persistence
// failures are deliberately non-fatal: they surface here as a message while
// the in-memory registry stays untouched.
type SnapshotOutcome struct {
	OK           bool
	StartedFresh bool
	Message      string
}

// Option configures optional Service behaviour.
type Option func(*Service)

// WithClock overrides the clock used to timestamp workout records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithEventSink attaches an event sink notified after successful mutations.
func WithEventSink(sink EventSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithLogger overrides the logger used for persistence outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service is the synchronized surface over the registry. The registry itself
// is single-threaded; all access goes through the service mutex.
type Service struct {
	mu       sync.Mutex
	registry *Registry
	store    SnapshotStore
	sink     EventSink
	now      func() time.Time
	logger   *log.Logger
}

// NewService wraps the registry with a snapshot store and options.
func NewService(registry *Registry, store SnapshotStore, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		store:    store,
		now:      time.Now,
		logger:   log.New(log.Writer(), "[registry] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GymName returns the facility name.
func (s *Service) GymName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Name()
}

// AddMember registers a member and returns a detached copy.
func (s *Service) AddMember(ctx context.Context, name string) Member {
	s.mu.Lock()
	id := s.registry.AddMember(name)
	member, _ := s.registry.Member(id)
	copied := detachMember(member)
	s.mu.Unlock()

	observability.RecordMemberRegistered()
	if s.sink != nil {
		s.sink.MemberAdded(ctx, copied)
	}
	return copied
}

// GetMember returns a detached copy of the member.
func (s *Service) GetMember(ctx context.Context, id int) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.registry.Member(id)
	if err != nil {
		return Member{}, err
	}
	return detachMember(member), nil
}

// ListMembers returns all members ordered by membership ID.
func (s *Service) ListMembers(ctx context.Context) []Member {
	s.mu.Lock()
	members := s.registry.Members()
	out := make([]Member, 0, len(members))
	for _, member := range members {
		out = append(out, detachMember(member))
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].MembershipID < out[j].MembershipID })
	return out
}

// LogWorkout records a workout for the member, timestamped with the service
// clock.
func (s *Service) LogWorkout(ctx context.Context, memberID int, exercise string, sets, reps int, weight float64) (WorkoutRecord, error) {
	s.mu.Lock()
	record, err := s.registry.LogWorkout(memberID, exercise, sets, reps, weight, s.now())
	var copied Member
	if err == nil {
		member, _ := s.registry.Member(memberID)
		copied = detachMember(member)
	}
	s.mu.Unlock()

	if err != nil {
		return WorkoutRecord{}, err
	}

	observability.RecordWorkoutLogged()
	if s.sink != nil {
		s.sink.WorkoutLogged(ctx, copied, record)
	}
	return record, nil
}

// MemberSummary returns the one-line activity summary for the member.
func (s *Service) MemberSummary(ctx context.Context, memberID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.registry.Member(memberID)
	if err != nil {
		return "", err
	}
	return member.Summary(), nil
}

// MemberStats returns aggregate workout statistics for the member.
func (s *Service) MemberStats(ctx context.Context, memberID int) (MemberStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.registry.Member(memberID)
	if err != nil {
		return MemberStats{}, err
	}
	return member.Stats(), nil
}

// AddEquipment registers an equipment unit.
func (s *Service) AddEquipment(ctx context.Context, name string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.AddEquipment(name, weight)
}

// ListEquipment returns all equipment ordered by name.
func (s *Service) ListEquipment(ctx context.Context) []Equipment {
	s.mu.Lock()
	units := s.registry.AllEquipment()
	out := make([]Equipment, 0, len(units))
	for _, unit := range units {
		out = append(out, *unit)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CheckOutEquipment marks a unit as in use.
func (s *Service) CheckOutEquipment(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.CheckOutEquipment(name)
}

// CheckInEquipment returns a unit to the floor.
func (s *Service) CheckInEquipment(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.CheckInEquipment(name)
}

// PerformMaintenance services a unit and resets its use counter.
func (s *Service) PerformMaintenance(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.PerformMaintenance(name)
}

// SaveSnapshot writes the full registry state to the snapshot store. Write
// failures are reported in the outcome, never raised; in-memory state is
// unaffected either way.
func (s *Service) SaveSnapshot() SnapshotOutcome {
	s.mu.Lock()
	snapshot := s.registry.Snapshot()
	s.mu.Unlock()

	if err := s.store.Save(snapshot); err != nil {
		outcome := SnapshotOutcome{Message: fmt.Sprintf("error saving gym data: %v", err)}
		s.logger.Print(outcome.Message)
		return outcome
	}

	observability.RecordSnapshotSaved(s.now())
	outcome := SnapshotOutcome{OK: true, Message: fmt.Sprintf("gym data saved to %s", s.store.Location())}
	s.logger.Print(outcome.Message)
	return outcome
}

// LoadSnapshot replaces the registry state with the stored snapshot. A
// missing snapshot leaves the registry unchanged and reports a fresh start;
// any other failure leaves the registry unchanged and reports the error.
func (s *Service) LoadSnapshot() SnapshotOutcome {
	snapshot, err := s.store.Load()
	if err != nil {
		var outcome SnapshotOutcome
		if errors.Is(err, ErrSnapshotNotFound) {
			outcome = SnapshotOutcome{StartedFresh: true, Message: fmt.Sprintf("%s not found, starting fresh", s.store.Location())}
		} else {
			outcome = SnapshotOutcome{Message: fmt.Sprintf("error loading gym data: %v", err)}
		}
		s.logger.Print(outcome.Message)
		return outcome
	}

	s.mu.Lock()
	s.registry.Restore(snapshot)
	memberCount := len(snapshot.Members)
	s.mu.Unlock()

	observability.RecordSnapshotLoaded(s.now())
	outcome := SnapshotOutcome{OK: true, Message: fmt.Sprintf("loaded gym data from %s (%d members)", s.store.Location(), memberCount)}
	s.logger.Print(outcome.Message)
	return outcome
}

func detachMember(member *Member) Member {
	copied := *member
	copied.Workouts = append([]WorkoutRecord(nil), member.Workouts...)
	return copied
}
