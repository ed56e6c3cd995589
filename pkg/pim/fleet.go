package pim

import (
	"fmt"
	"sync"
)

// Unit is one compute unit: an ID, a private memory region and the kernel
// that advances it.
type Unit struct {
	ID     int
	Mem    Memory
	Kernel Kernel
}

// Fleet is a fixed set of units driven in lockstep.
type Fleet struct {
	units []*Unit
}

// NewFleet wraps the provisioned units.
func NewFleet(units []*Unit) *Fleet {
	return &Fleet{units: units}
}

// Size returns the number of units.
func (f *Fleet) Size() int {
	return len(f.units)
}

// Unit returns unit i. The returned pointer is stable for the lifetime of
// the fleet, so callers can hold buffer handles across rounds.
func (f *Fleet) Unit(i int) *Unit {
	return f.units[i]
}

// Launch runs every unit's kernel concurrently and blocks until all have
// finished. One barrier per round: no unit's round N+1 state is visible
// before every unit produced its round N result. A kernel fault is fatal to
// the run.
func (f *Fleet) Launch() error {
	var wg sync.WaitGroup
	faults := make([]error, len(f.units))
	for i, u := range f.units {
		wg.Add(1)
		go func(i int, u *Unit) {
			defer wg.Done()
			faults[i] = u.Kernel.Advance(&u.Mem)
		}(i, u)
	}
	wg.Wait()

	for i, err := range faults {
		if err != nil {
			return fmt.Errorf("unit %d kernel fault: %w", i, err)
		}
	}
	return nil
}

// SetLevel propagates the global level counter to every unit.
func (f *Fleet) SetLevel(level uint32) {
	for _, u := range f.units {
		u.Mem.Level = level
	}
}
