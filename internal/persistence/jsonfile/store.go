// Package jsonfile persists registry snapshots as a single JSON document on
// disk. The write is a plain whole-file overwrite: no lock file and no
// rename-on-write, so concurrent writers are last-one-wins.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"example.com/gym/internal/domain"
)

// document is the on-disk shape. Membership IDs become JSON object keys and
// are therefore stringified; Load parses them back to integers.
type document struct {
	GymName      string                  `json:"gymName"`
	NextMemberID int                     `json:"nextMemberId"`
	Members      map[string]memberDoc    `json:"members"`
	Equipment    map[string]equipmentDoc `json:"equipment,omitempty"`
}

type memberDoc struct {
	Name         string       `json:"name"`
	MembershipID int          `json:"membershipId"`
	Workouts     []workoutDoc `json:"workouts"`
	TotalVisits  int          `json:"totalVisits"`
}

type workoutDoc struct {
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Volume   float64 `json:"volume"`
}

type equipmentDoc struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Available bool    `json:"available"`
	TimesUsed int     `json:"timesUsed"`
}

// Store reads and writes snapshots at a fixed path.
type Store struct {
	path string
}

// NewStore constructs a Store for the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Location implements domain.SnapshotStore.
func (s *Store) Location() string {
	return s.path
}

// Save marshals the snapshot and overwrites the file.
func (s *Store) Save(snapshot domain.RegistrySnapshot) error {
	doc := document{
		GymName:      snapshot.Name,
		NextMemberID: snapshot.NextMemberID,
		Members:      make(map[string]memberDoc, len(snapshot.Members)),
	}

	for id, member := range snapshot.Members {
		workouts := make([]workoutDoc, 0, len(member.Workouts))
		for _, w := range member.Workouts {
			workouts = append(workouts, workoutDoc{
				Date:     w.Date,
				Exercise: w.Exercise,
				Sets:     w.Sets,
				Reps:     w.Reps,
				Weight:   w.Weight,
				Volume:   w.Volume,
			})
		}
		doc.Members[strconv.Itoa(id)] = memberDoc{
			Name:         member.Name,
			MembershipID: member.MembershipID,
			Workouts:     workouts,
			TotalVisits:  member.TotalVisits,
		}
	}

	if len(snapshot.Equipment) > 0 {
		doc.Equipment = make(map[string]equipmentDoc, len(snapshot.Equipment))
		for name, unit := range snapshot.Equipment {
			doc.Equipment[name] = equipmentDoc{
				Name:      unit.Name,
				Weight:    unit.Weight,
				Available: unit.Available,
				TimesUsed: unit.TimesUsed,
			}
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load reads and parses the file. A missing file is reported as
// domain.ErrSnapshotNotFound so callers can distinguish a fresh start from a
// corrupt document.
func (s *Store) Load() (domain.RegistrySnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.RegistrySnapshot{}, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, s.path)
		}
		return domain.RegistrySnapshot{}, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.RegistrySnapshot{}, err
	}

	snapshot := domain.RegistrySnapshot{
		Name:         doc.GymName,
		NextMemberID: doc.NextMemberID,
		Members:      make(map[int]domain.Member, len(doc.Members)),
		Equipment:    make(map[string]domain.Equipment, len(doc.Equipment)),
	}

	for key, member := range doc.Members {
		id, err := strconv.Atoi(key)
		if err != nil {
			return domain.RegistrySnapshot{}, fmt.Errorf("invalid member key %q: %w", key, err)
		}
		workouts := make([]domain.WorkoutRecord, 0, len(member.Workouts))
		for _, w := range member.Workouts {
			workouts = append(workouts, domain.WorkoutRecord{
				Date:     w.Date,
				Exercise: w.Exercise,
				Sets:     w.Sets,
				Reps:     w.Reps,
				Weight:   w.Weight,
				Volume:   w.Volume,
			})
		}
		snapshot.Members[id] = domain.Member{
			Name:         member.Name,
			MembershipID: member.MembershipID,
			Workouts:     workouts,
			TotalVisits:  member.TotalVisits,
		}
	}

	for name, unit := range doc.Equipment {
		snapshot.Equipment[name] = domain.Equipment{
			Name:      unit.Name,
			Weight:    unit.Weight,
			Available: unit.Available,
			TimesUsed: unit.TimesUsed,
		}
	}

	return snapshot, nil
}
