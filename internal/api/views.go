package api

import (
	"errors"
	"strings"

	"example.com/gym/internal/domain"
)

// CreateMemberRequest is the payload for POST /v1/members.
type CreateMemberRequest struct {
	Name string `json:"name"`
}

// Validate ensures request correctness. The registry itself accepts any
// name; the API is stricter so typos fail fast.
func (r CreateMemberRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateMemberResponse describes the response body for member creation.
type CreateMemberResponse struct {
	MemberID int    `json:"member_id"`
	Name     string `json:"name"`
}

// LogWorkoutRequest is the payload for POST /v1/members/{id}/workouts.
// Sets, reps, and weight are passed through unvalidated: zero-weight
// bodyweight entries are legitimate.
type LogWorkoutRequest struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

// Validate ensures request correctness.
func (r LogWorkoutRequest) Validate() error {
	if strings.TrimSpace(r.Exercise) == "" {
		return errors.New("exercise is required")
	}
	return nil
}

// WorkoutView exposes one logged workout record.
type WorkoutView struct {
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Volume   float64 `json:"volume"`
}

// MemberView exposes full details about a member.
type MemberView struct {
	MemberID    int           `json:"member_id"`
	Name        string        `json:"name"`
	TotalVisits int           `json:"total_visits"`
	Workouts    []WorkoutView `json:"workouts"`
}

// ListMembersResponse packages list results.
type ListMembersResponse struct {
	GymName string       `json:"gym_name"`
	Items   []MemberView `json:"items"`
}

// SummaryResponse carries the one-line member summary.
type SummaryResponse struct {
	MemberID int    `json:"member_id"`
	Summary  string `json:"summary"`
}

// StatsResponse carries aggregate workout statistics.
type StatsResponse struct {
	MemberID           int     `json:"member_id"`
	TotalWorkouts      int     `json:"total_workouts"`
	TotalVolume        float64 `json:"total_volume"`
	AverageVolume      float64 `json:"average_volume"`
	MostCommonExercise string  `json:"most_common_exercise,omitempty"`
}

// AddEquipmentRequest is the payload for POST /v1/equipment.
type AddEquipmentRequest struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Validate ensures request correctness.
func (r AddEquipmentRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Weight < 0 {
		return errors.New("weight must be >= 0")
	}
	return nil
}

// EquipmentView exposes one equipment unit.
type EquipmentView struct {
	Name             string  `json:"name"`
	Weight           float64 `json:"weight"`
	Available        bool    `json:"available"`
	TimesUsed        int     `json:"times_used"`
	NeedsMaintenance bool    `json:"needs_maintenance"`
}

// ListEquipmentResponse packages equipment list results.
type ListEquipmentResponse struct {
	Items []EquipmentView `json:"items"`
}

// SnapshotView reports a persistence outcome. Failures surface here with a
// message rather than as an HTTP error.
type SnapshotView struct {
	OK           bool   `json:"ok"`
	StartedFresh bool   `json:"started_fresh,omitempty"`
	Message      string `json:"message"`
}

func toSnapshotView(outcome domain.SnapshotOutcome) SnapshotView {
	return SnapshotView{
		OK:           outcome.OK,
		StartedFresh: outcome.StartedFresh,
		Message:      outcome.Message,
	}
}

func toWorkoutView(record domain.WorkoutRecord) WorkoutView {
	return WorkoutView{
		Date:     record.Date,
		Exercise: record.Exercise,
		Sets:     record.Sets,
		Reps:     record.Reps,
		Weight:   record.Weight,
		Volume:   record.Volume,
	}
}

func toMemberView(member domain.Member) MemberView {
	workouts := make([]WorkoutView, 0, len(member.Workouts))
	for _, record := range member.Workouts {
		workouts = append(workouts, toWorkoutView(record))
	}
	return MemberView{
		MemberID:    member.MembershipID,
		Name:        member.Name,
		TotalVisits: member.TotalVisits,
		Workouts:    workouts,
	}
}
