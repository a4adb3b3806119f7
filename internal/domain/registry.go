// Package domain defines the business logic for the gym registry service.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrMemberNotFound is returned when a membership ID has no registered member.
	ErrMemberNotFound = errors.New("member not found")
)

// DateLayout is the timestamp layout stamped onto workout records.
const DateLayout = "2006-01-02 15:04"

// WorkoutRecord is one logged exercise session. Records are immutable once
// appended to a member's history.
type WorkoutRecord struct {
	Date     string
	Exercise string
	Sets     int
	Reps     int
	Weight   float64
	Volume   float64
}

// Member is a gym participant with an append-only workout history.
type Member struct {
	Name         string
	MembershipID int
	Workouts     []WorkoutRecord
	TotalVisits  int
}

// Summary describes the member's activity in one line.
func (m *Member) Summary() string {
	if len(m.Workouts) == 0 {
		return fmt.Sprintf("%s - no workouts logged yet", m.Name)
	}
	var total float64
	for _, w := range m.Workouts {
		total += w.Volume
	}
	return fmt.Sprintf("%s - %d visits - %s lbs total volume", m.Name, m.TotalVisits, strconv.FormatFloat(total, 'f', -1, 64))
}

// MemberStats aggregates a member's workout history.
type MemberStats struct {
	TotalWorkouts      int
	TotalVolume        float64
	AverageVolume      float64
	MostCommonExercise string
}

// Stats computes aggregate statistics over the workout history. Ties on the
// most common exercise break toward the one logged first.
func (m *Member) Stats() MemberStats {
	stats := MemberStats{TotalWorkouts: len(m.Workouts)}
	if stats.TotalWorkouts == 0 {
		return stats
	}

	counts := make(map[string]int)
	best := 0
	for _, w := range m.Workouts {
		stats.TotalVolume += w.Volume
		counts[w.Exercise]++
		if counts[w.Exercise] > best {
			best = counts[w.Exercise]
			stats.MostCommonExercise = w.Exercise
		}
	}
	stats.AverageVolume = stats.TotalVolume / float64(stats.TotalWorkouts)
	return stats
}

// Registry is the in-memory member collection for one facility. It is not
// safe for concurrent use; Service provides the synchronized surface.
type Registry struct {
	name         string
	nextMemberID int
	members      map[int]*Member
	equipment    map[string]*Equipment
}

// NewRegistry creates an empty registry for the named facility. Membership
// IDs start at 1.
func NewRegistry(name string) *Registry {
	return &Registry{
		name:         name,
		nextMemberID: 1,
		members:      make(map[int]*Member),
		equipment:    make(map[string]*Equipment),
	}
}

// Name returns the facility name.
func (r *Registry) Name() string {
	return r.name
}

// AddMember registers a new member and returns the assigned membership ID.
// The ID counter increments unconditionally, so IDs are strictly increasing
// and never reused. Names are accepted as-is; empty or duplicate names are
// not rejected.
func (r *Registry) AddMember(name string) int {
	id := r.nextMemberID
	r.nextMemberID++
	r.members[id] = &Member{Name: name, MembershipID: id}
	return id
}

// Member looks up a member by membership ID.
func (r *Registry) Member(id int) (*Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// Members returns all registered members in no particular order.
func (r *Registry) Members() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, member := range r.members {
		out = append(out, member)
	}
	return out
}

// LogWorkout appends a workout record to the member's history and counts a
// visit. Volume is sets * reps * weight. Values are not validated; negative
// or zero sets, reps, and weight are recorded as given.
func (r *Registry) LogWorkout(memberID int, exercise string, sets, reps int, weight float64, at time.Time) (WorkoutRecord, error) {
	member, ok := r.members[memberID]
	if !ok {
		return WorkoutRecord{}, ErrMemberNotFound
	}

	record := WorkoutRecord{
		Date:     at.Format(DateLayout),
		Exercise: exercise,
		Sets:     sets,
		Reps:     reps,
		Weight:   weight,
		Volume:   float64(sets*reps) * weight,
	}
	member.Workouts = append(member.Workouts, record)
	member.TotalVisits++
	return record, nil
}
