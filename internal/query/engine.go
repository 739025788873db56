// Package query implements the Connection Scan Algorithm query engine:
// forward (earliest-arrival), backward (latest-departure), one-to-one
// profile, and multi-criteria queries over an immutable timetable.Timetable.
package query

import (
	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/pareto"
	"github.com/transit-csa/engine/internal/timetable"
)

// Engine holds one query's worth of scratch state against a shared,
// read-only Timetable. An Engine is not safe for concurrent use; callers
// running queries in parallel give each worker its own Engine over the
// same Timetable.
type Engine struct {
	tt    *timetable.Timetable
	useHL bool

	earliestArrival []csatime.Time
	latestDeparture []csatime.Time
	reached         []bool

	profiles     []*pareto.Profile
	tripBest     []csatime.Time
	walkToTarget []csatime.Time

	bags     []*pareto.Bag
	tripBags []*pareto.Bag

	allocated bool
}

// NewEngine returns a ready-to-use Engine over tt. useHubLabels selects
// the unrestricted-walking (Hub Label) model for every query this Engine
// runs; the two models are not mixed within one Engine.
func NewEngine(tt *timetable.Timetable, useHubLabels bool) *Engine {
	e := &Engine{tt: tt, useHL: useHubLabels}
	e.Init()
	return e
}

// Init allocates the engine's scratch arrays, sized once from the
// Timetable's MaxNodeID/MaxTripID. Init is idempotent: calling it again
// after scratch is already allocated does nothing.
func (e *Engine) Init() {
	if e.allocated {
		return
	}

	numNodes := int(e.tt.MaxNodeID) + 1
	numTrips := int(e.tt.MaxTripID) + 1

	e.earliestArrival = make([]csatime.Time, numNodes)
	e.latestDeparture = make([]csatime.Time, numNodes)
	e.reached = make([]bool, numTrips)

	e.profiles = make([]*pareto.Profile, numNodes)
	for i := range e.profiles {
		e.profiles[i] = pareto.NewProfile()
	}
	e.tripBest = make([]csatime.Time, numTrips)
	e.walkToTarget = make([]csatime.Time, numNodes)

	e.bags = make([]*pareto.Bag, numNodes)
	for i := range e.bags {
		e.bags[i] = pareto.NewBag()
	}
	e.tripBags = make([]*pareto.Bag, numTrips)
	for i := range e.tripBags {
		e.tripBags[i] = pareto.NewBag()
	}

	e.allocated = true
}

// Clear releases every scratch array the engine owns. A subsequent query
// call re-allocates them via Init.
func (e *Engine) Clear() {
	e.earliestArrival = nil
	e.latestDeparture = nil
	e.reached = nil
	e.profiles = nil
	e.tripBest = nil
	e.walkToTarget = nil
	e.bags = nil
	e.tripBags = nil
	e.allocated = false
}

func (e *Engine) resetEarliestArrival() {
	for i := range e.earliestArrival {
		e.earliestArrival[i] = csatime.PosInf
	}
}

func (e *Engine) resetLatestDeparture() {
	for i := range e.latestDeparture {
		e.latestDeparture[i] = csatime.NegInf
	}
}

func (e *Engine) resetReached() {
	for i := range e.reached {
		e.reached[i] = false
	}
}
