// Package events defines the payloads published when the registry mutates,
// plus the Kafka plumbing to emit them.
package events

// Event types carried in the event_type message header.
const (
	TypeMemberAdded   = "member.added"
	TypeWorkoutLogged = "workout.logged"
)

// MemberAdded is emitted when a new member is registered.
type MemberAdded struct {
	MemberID int    `json:"member_id"`
	Name     string `json:"name"`
}

// WorkoutLogged is emitted for every workout record appended to a member's
// history. Volume duplicates sets * reps * weight so downstream consumers
// need not recompute it.
type WorkoutLogged struct {
	MemberID   int     `json:"member_id"`
	MemberName string  `json:"member_name"`
	Exercise   string  `json:"exercise"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Volume     float64 `json:"volume"`
	Date       string  `json:"date"`
}
