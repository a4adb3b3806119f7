package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	membersRegisteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_service",
		Subsystem: "registry",
		Name:      "members_registered_total",
		Help:      "Number of members registered since process start.",
	})
	workoutsLoggedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_service",
		Subsystem: "registry",
		Name:      "workouts_logged_total",
		Help:      "Number of workout records appended since process start.",
	})
	snapshotSavedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gym_service",
		Subsystem: "snapshot",
		Name:      "last_saved_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful snapshot save.",
	})
	snapshotLoadedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gym_service",
		Subsystem: "snapshot",
		Name:      "last_loaded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful snapshot load.",
	})
)

func init() {
	prometheus.MustRegister(membersRegisteredCounter, workoutsLoggedCounter, snapshotSavedGauge, snapshotLoadedGauge)
}

// RecordMemberRegistered counts a successful member registration.
func RecordMemberRegistered() {
	membersRegisteredCounter.Inc()
}

// RecordWorkoutLogged counts a successfully appended workout record.
func RecordWorkoutLogged() {
	workoutsLoggedCounter.Inc()
}

// RecordSnapshotSaved updates the save watermark gauge.
func RecordSnapshotSaved(ts time.Time) {
	if ts.IsZero() {
		return
	}
	snapshotSavedGauge.Set(float64(ts.Unix()))
}

// RecordSnapshotLoaded updates the load watermark gauge.
func RecordSnapshotLoaded(ts time.Time) {
	if ts.IsZero() {
		return
	}
	snapshotLoadedGauge.Set(float64(ts.Unix()))
}
