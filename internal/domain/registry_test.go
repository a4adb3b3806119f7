package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddMemberAssignsIncreasingIDs(t *testing.T) {
	registry := NewRegistry("Iron Paradise")

	require.Equal(t, 1, registry.AddMember("Alex"))
	require.Equal(t, 2, registry.AddMember("Sam"))
	require.Equal(t, 3, registry.AddMember("Alex")) // duplicate names accepted

	// Degenerate names still consume an ID.
	require.Equal(t, 4, registry.AddMember(""))
	require.Equal(t, 5, registry.AddMember("Jo"))
}

func TestMemberLookup(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")

	member, err := registry.Member(id)
	require.NoError(t, err)
	require.Equal(t, "Alex", member.Name)
	require.Equal(t, id, member.MembershipID)

	_, err = registry.Member(99)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestLogWorkoutAppendsRecordAndCountsVisit(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")
	at := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	record, err := registry.LogWorkout(id, "Bench Press", 3, 10, 135, at)
	require.NoError(t, err)
	require.Equal(t, "2025-03-14 09:30", record.Date)
	require.Equal(t, 4050.0, record.Volume)

	member, err := registry.Member(id)
	require.NoError(t, err)
	require.Len(t, member.Workouts, 1)
	require.Equal(t, 1, member.TotalVisits)
}

func TestLogWorkoutUnknownMember(t *testing.T) {
	registry := NewRegistry("Iron Paradise")

	_, err := registry.LogWorkout(42, "Squat", 4, 8, 185, time.Now())
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestLogWorkoutAcceptsDegenerateValues(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")

	// Zero-weight bodyweight work and even negative values are recorded
	// as given.
	record, err := registry.LogWorkout(id, "Pull-ups", 3, 12, 0, time.Now())
	require.NoError(t, err)
	require.Equal(t, 0.0, record.Volume)

	record, err = registry.LogWorkout(id, "Oops", -1, 5, 100, time.Now())
	require.NoError(t, err)
	require.Equal(t, -500.0, record.Volume)

	member, err := registry.Member(id)
	require.NoError(t, err)
	require.Equal(t, 2, member.TotalVisits)
}

func TestSummary(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")
	member, err := registry.Member(id)
	require.NoError(t, err)

	require.Equal(t, "Alex - no workouts logged yet", member.Summary())

	_, err = registry.LogWorkout(id, "Bench Press", 3, 10, 135, time.Now())
	require.NoError(t, err)

	require.Equal(t, "Alex - 1 visits - 4050 lbs total volume", member.Summary())
}

func TestSummaryFormatsLargeVolumesAsPlainDigits(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")

	_, err := registry.LogWorkout(id, "Leg Press", 1, 1, 12345678, time.Now())
	require.NoError(t, err)

	member, err := registry.Member(id)
	require.NoError(t, err)
	require.Equal(t, "Alex - 1 visits - 12345678 lbs total volume", member.Summary())
}

func TestStats(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")
	member, err := registry.Member(id)
	require.NoError(t, err)

	require.Equal(t, MemberStats{}, member.Stats())

	now := time.Now()
	_, err = registry.LogWorkout(id, "Bench Press", 3, 10, 135, now)
	require.NoError(t, err)
	_, err = registry.LogWorkout(id, "Squat", 4, 8, 185, now)
	require.NoError(t, err)
	_, err = registry.LogWorkout(id, "Bench Press", 3, 10, 145, now)
	require.NoError(t, err)

	stats := member.Stats()
	require.Equal(t, 3, stats.TotalWorkouts)
	require.Equal(t, 4050.0+5920.0+4350.0, stats.TotalVolume)
	require.InDelta(t, (4050.0+5920.0+4350.0)/3, stats.AverageVolume, 1e-9)
	require.Equal(t, "Bench Press", stats.MostCommonExercise)
}

func TestStatsTieBreaksTowardFirstLogged(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	id := registry.AddMember("Alex")
	now := time.Now()

	_, err := registry.LogWorkout(id, "Deadlift", 5, 5, 225, now)
	require.NoError(t, err)
	_, err = registry.LogWorkout(id, "Squat", 4, 8, 185, now)
	require.NoError(t, err)

	member, err := registry.Member(id)
	require.NoError(t, err)
	require.Equal(t, "Deadlift", member.Stats().MostCommonExercise)
}

func TestEquipmentLifecycle(t *testing.T) {
	registry := NewRegistry("Iron Paradise")

	require.NoError(t, registry.AddEquipment("Barbell", 45))
	require.ErrorIs(t, registry.AddEquipment("Barbell", 45), ErrEquipmentExists)

	unit, err := registry.Equipment("Barbell")
	require.NoError(t, err)
	require.True(t, unit.Available)
	require.Equal(t, 0, unit.TimesUsed)

	require.NoError(t, registry.CheckOutEquipment("Barbell"))
	require.ErrorIs(t, registry.CheckOutEquipment("Barbell"), ErrEquipmentUnavailable)
	require.Equal(t, 1, unit.TimesUsed)

	require.NoError(t, registry.CheckInEquipment("Barbell"))
	require.True(t, unit.Available)
	// Checking in an available unit is a no-op, not an error.
	require.NoError(t, registry.CheckInEquipment("Barbell"))

	require.ErrorIs(t, registry.CheckOutEquipment("Treadmill"), ErrEquipmentNotFound)
	require.ErrorIs(t, registry.CheckInEquipment("Treadmill"), ErrEquipmentNotFound)
}

func TestEquipmentNeedsMaintenance(t *testing.T) {
	unit := &Equipment{Name: "Barbell", TimesUsed: 10}
	require.False(t, unit.NeedsMaintenance())

	unit.TimesUsed++
	require.True(t, unit.NeedsMaintenance())
}

func TestPerformMaintenanceResetsUseCounter(t *testing.T) {
	registry := NewRegistry("Iron Paradise")
	require.NoError(t, registry.AddEquipment("Barbell", 45))

	for i := 0; i < 11; i++ {
		require.NoError(t, registry.CheckOutEquipment("Barbell"))
		require.NoError(t, registry.CheckInEquipment("Barbell"))
	}

	unit, err := registry.Equipment("Barbell")
	require.NoError(t, err)
	require.True(t, unit.NeedsMaintenance())

	require.NoError(t, registry.PerformMaintenance("Barbell"))
	require.Equal(t, 0, unit.TimesUsed)
	require.False(t, unit.NeedsMaintenance())

	require.ErrorIs(t, registry.PerformMaintenance("Treadmill"), ErrEquipmentNotFound)
}

func TestSnapshotRestoreReplacesState(t *testing.T) {
	original := NewRegistry("Iron Paradise")
	alex := original.AddMember("Alex")
	_, err := original.LogWorkout(alex, "Bench Press", 3, 10, 135, time.Now())
	require.NoError(t, err)
	require.NoError(t, original.AddEquipment("Barbell", 45))

	other := NewRegistry("Other Gym")
	other.AddMember("Stale")

	other.Restore(original.Snapshot())

	require.Equal(t, "Iron Paradise", other.Name())
	member, err := other.Member(alex)
	require.NoError(t, err)
	require.Equal(t, "Alex", member.Name)
	require.Len(t, member.Workouts, 1)

	// The stale member is gone, the ID counter continues from the snapshot.
	require.Equal(t, 2, other.AddMember("Sam"))

	// The snapshot is detached: mutating the restored registry must not
	// touch the original.
	_, err = other.LogWorkout(alex, "Squat", 4, 8, 185, time.Now())
	require.NoError(t, err)
	originalAlex, err := original.Member(alex)
	require.NoError(t, err)
	require.Len(t, originalAlex.Workouts, 1)
}
