package domain

import "errors"

// ErrSnapshotNotFound is returned by snapshot stores when no snapshot exists
// at the configured location.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// RegistrySnapshot is a deep copy of the registry state, detached from the
// live aggregate. It is the unit of persistence.
type RegistrySnapshot struct {
	Name         string
	NextMemberID int
	Members      map[int]Member
	Equipment    map[string]Equipment
}

// SnapshotStore persists and restores whole-registry snapshots.
type SnapshotStore interface {
	Save(snapshot RegistrySnapshot) error
	Load() (RegistrySnapshot, error)
	// Location names the backing location for human-readable status messages.
	Location() string
}

// Snapshot captures the full registry state. The returned value shares no
// memory with the registry.
func (r *Registry) Snapshot() RegistrySnapshot {
	snapshot := RegistrySnapshot{
		Name:         r.name,
		NextMemberID: r.nextMemberID,
		Members:      make(map[int]Member, len(r.members)),
		Equipment:    make(map[string]Equipment, len(r.equipment)),
	}
	for id, member := range r.members {
		copied := *member
		copied.Workouts = append([]WorkoutRecord(nil), member.Workouts...)
		snapshot.Members[id] = copied
	}
	for name, unit := range r.equipment {
		snapshot.Equipment[name] = *unit
	}
	return snapshot
}

// Restore replaces the registry's name, ID counter, members, and equipment
// with the snapshot contents. Existing state is discarded, not merged.
func (r *Registry) Restore(snapshot RegistrySnapshot) {
	r.name = snapshot.Name
	r.nextMemberID = snapshot.NextMemberID
	r.members = make(map[int]*Member, len(snapshot.Members))
	for id, member := range snapshot.Members {
		copied := member
		copied.Workouts = append([]WorkoutRecord(nil), member.Workouts...)
		r.members[id] = &copied
	}
	r.equipment = make(map[string]*Equipment, len(snapshot.Equipment))
	for name, unit := range snapshot.Equipment {
		copied := unit
		r.equipment[name] = &copied
	}
}
