package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/gym/internal/domain"
)

func sampleSnapshot() domain.RegistrySnapshot {
	return domain.RegistrySnapshot{
		Name:         "Iron Paradise",
		NextMemberID: 3,
		Members: map[int]domain.Member{
			1: {
				Name:         "Alex",
				MembershipID: 1,
				Workouts: []domain.WorkoutRecord{
					{Date: "2025-03-14 09:30", Exercise: "Bench Press", Sets: 3, Reps: 10, Weight: 135, Volume: 4050},
				},
				TotalVisits: 1,
			},
			2: {Name: "Sam", MembershipID: 2, Workouts: []domain.WorkoutRecord{}},
		},
		Equipment: map[string]domain.Equipment{
			"Barbell": {Name: "Barbell", Weight: 45, Available: true, TimesUsed: 12},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "gym_data.json"))
	original := sampleSnapshot()

	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, original, loaded)
}

func TestSaveWritesDocumentedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym_data.json")
	store := NewStore(path)
	require.NoError(t, store.Save(sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "gymName")
	require.Contains(t, doc, "nextMemberId")
	require.Contains(t, doc, "members")
	require.Contains(t, doc, "equipment")

	// Membership IDs serialize as stringified JSON object keys.
	var members map[string]struct {
		Name         string  `json:"name"`
		MembershipID int     `json:"membershipId"`
		TotalVisits  int     `json:"totalVisits"`
		Workouts     []struct {
			Date   string  `json:"date"`
			Volume float64 `json:"volume"`
		} `json:"workouts"`
	}
	require.NoError(t, json.Unmarshal(doc["members"], &members))
	require.Contains(t, members, "1")
	require.Contains(t, members, "2")
	require.Equal(t, "Alex", members["1"].Name)
	require.Equal(t, 1, members["1"].MembershipID)
	require.Len(t, members["1"].Workouts, 1)
	require.Equal(t, 4050.0, members["1"].Workouts[0].Volume)
	require.NotNil(t, members["2"].Workouts, "empty histories serialize as [] not null")
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestLoadRejectsNonIntegerMemberKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym_data.json")
	payload := `{"gymName":"Iron Paradise","nextMemberId":2,"members":{"abc":{"name":"Alex","membershipId":1,"workouts":[],"totalVisits":0}}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
}

func TestLoadWithoutEquipmentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym_data.json")
	payload := `{"gymName":"Iron Paradise","nextMemberId":1,"members":{}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	snapshot, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Empty(t, snapshot.Equipment)
	require.Equal(t, 1, snapshot.NextMemberID)
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym_data.json")
	store := NewStore(path)

	first := sampleSnapshot()
	require.NoError(t, store.Save(first))

	second := domain.RegistrySnapshot{Name: "Second Gym", NextMemberID: 1}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "Second Gym", loaded.Name)
	require.Empty(t, loaded.Members)
}
