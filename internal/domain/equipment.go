package domain

import "errors"

var (
	// ErrEquipmentNotFound is returned when no equipment is registered under the name.
	ErrEquipmentNotFound = errors.New("equipment not found")
	// ErrEquipmentExists is returned when registering a duplicate equipment name.
	ErrEquipmentExists = errors.New("equipment already registered")
	// ErrEquipmentUnavailable is returned when checking out equipment that is in use.
	ErrEquipmentUnavailable = errors.New("equipment unavailable")
)

// maintenanceThreshold is the number of check-outs after which a unit is due
// for service.
const maintenanceThreshold = 10

// Equipment is one unit of gym equipment tracked by the registry.
type Equipment struct {
	Name      string
	Weight    float64
	Available bool
	TimesUsed int
}

// NeedsMaintenance reports whether the unit has been used past the service
// threshold.
func (e *Equipment) NeedsMaintenance() bool {
	return e.TimesUsed > maintenanceThreshold
}

// AddEquipment registers a new equipment unit, available and unused.
func (r *Registry) AddEquipment(name string, weight float64) error {
	if _, ok := r.equipment[name]; ok {
		return ErrEquipmentExists
	}
	r.equipment[name] = &Equipment{Name: name, Weight: weight, Available: true}
	return nil
}

// Equipment looks up a unit by name.
func (r *Registry) Equipment(name string) (*Equipment, error) {
	unit, ok := r.equipment[name]
	if !ok {
		return nil, ErrEquipmentNotFound
	}
	return unit, nil
}

// AllEquipment returns all registered units in no particular order.
func (r *Registry) AllEquipment() []*Equipment {
	out := make([]*Equipment, 0, len(r.equipment))
	for _, unit := range r.equipment {
		out = append(out, unit)
	}
	return out
}

// CheckOutEquipment marks a unit as in use and counts the use.
func (r *Registry) CheckOutEquipment(name string) error {
	unit, ok := r.equipment[name]
	if !ok {
		return ErrEquipmentNotFound
	}
	if !unit.Available {
		return ErrEquipmentUnavailable
	}
	unit.Available = false
	unit.TimesUsed++
	return nil
}

// CheckInEquipment returns a unit to the floor. Checking in a unit that is
// already available is a no-op.
func (r *Registry) CheckInEquipment(name string) error {
	unit, ok := r.equipment[name]
	if !ok {
		return ErrEquipmentNotFound
	}
	unit.Available = true
	return nil
}

// PerformMaintenance services a unit, resetting its use counter.
func (r *Registry) PerformMaintenance(name string) error {
	unit, ok := r.equipment[name]
	if !ok {
		return ErrEquipmentNotFound
	}
	unit.TimesUsed = 0
	return nil
}
