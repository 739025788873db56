// Package timetable holds the immutable, dense-array transit model the
// query engine reads: stops with their footpaths and hub edges, the
// globally time-sorted connection array, and the hub-label inverse index.
package timetable

import (
	"sort"

	"github.com/transit-csa/engine/internal/csatime"
)

// Timetable is built once by a loader and never mutated afterward. Every
// per-node and per-trip slice is dense, indexed directly by id; there are
// no maps on this hot path.
type Timetable struct {
	Stops       []Stop
	Connections []Connection

	// InverseInHubs[h] lists, for hub h, every (stop, time) pair such that
	// (time, h) appears in Stops[stop].InHubs. InverseOutHubs is symmetric
	// over OutHubs. Both are indexed by hub id, built once at load time.
	InverseInHubs  [][]HubLink
	InverseOutHubs [][]HubLink

	MaxNodeID NodeId
	MaxTripID TripId
}

// NumStops returns the number of stop slots. Hub ids that appear only in
// hub links raise MaxNodeID without adding a stop slot, so this can be
// smaller than MaxNodeID+1.
func (t *Timetable) NumStops() int { return len(t.Stops) }

// Stop returns the stop with the given id. The caller is trusted to pass
// an id within range; the Timetable does not defensively validate.
func (t *Timetable) Stop(id NodeId) *Stop { return &t.Stops[id] }

// Builder accumulates stops, transfers, hub links, and connections while a
// loader reads input files, then produces an immutable Timetable.
type Builder struct {
	stops       []Stop
	connections []Connection
	maxNodeID   NodeId
	maxTripID   TripId
	haveNode    bool
	haveTrip    bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// EnsureStop grows the stop slice, if necessary, so that id is a valid
// index. Gaps in the observed id range are materialized as empty
// placeholder stops, matching the loader's tolerance for missing ids.
func (b *Builder) EnsureStop(id NodeId) {
	for NodeId(len(b.stops)) <= id {
		b.stops = append(b.stops, Stop{Id: NodeId(len(b.stops))})
	}
	b.touchNode(id)
}

func (b *Builder) touchNode(id NodeId) {
	if !b.haveNode || id > b.maxNodeID {
		b.maxNodeID = id
	}
	b.haveNode = true
}

func (b *Builder) touchTrip(id TripId) {
	if !b.haveTrip || id > b.maxTripID {
		b.maxTripID = id
	}
	b.haveTrip = true
}

// AddTransfer records a footpath source->target, along with its mirror on
// the target's backward-transfer list.
func (b *Builder) AddTransfer(source, target NodeId, time csatime.Time) {
	b.EnsureStop(source)
	b.EnsureStop(target)
	b.stops[source].Transfers = append(b.stops[source].Transfers, Transfer{Source: source, Target: target, Time: time})
	b.stops[target].BackwardTransfers = append(b.stops[target].BackwardTransfers, Transfer{Source: target, Target: source, Time: time})
}

// AddInHub records that one may arrive at stop by walking from hub.
func (b *Builder) AddInHub(stop, hub NodeId, time csatime.Time) {
	b.EnsureStop(stop)
	b.touchNode(hub)
	b.stops[stop].InHubs = append(b.stops[stop].InHubs, HubLink{Stop: stop, Hub: hub, Time: time})
}

// AddOutHub records that hub is reachable by walking from stop.
func (b *Builder) AddOutHub(stop, hub NodeId, time csatime.Time) {
	b.EnsureStop(stop)
	b.touchNode(hub)
	b.stops[stop].OutHubs = append(b.stops[stop].OutHubs, HubLink{Stop: stop, Hub: hub, Time: time})
}

// AddConnection appends one connection. Connections are sorted into their
// final global order by Build, so callers may add them in any order.
func (b *Builder) AddConnection(c Connection) {
	b.EnsureStop(c.DepStop)
	b.EnsureStop(c.ArrStop)
	b.touchTrip(c.Trip)
	b.connections = append(b.connections, c)
}

// Build sorts every per-stop edge list and the global connection array,
// constructs the hub inverse indices, and returns the finished, immutable
// Timetable.
func (b *Builder) Build() *Timetable {
	for i := range b.stops {
		s := &b.stops[i]
		sort.Slice(s.Transfers, func(i, j int) bool { return transferLess(s.Transfers[i], s.Transfers[j]) })
		sort.Slice(s.BackwardTransfers, func(i, j int) bool {
			return transferLess(s.BackwardTransfers[i], s.BackwardTransfers[j])
		})
		sort.Slice(s.InHubs, func(i, j int) bool { return hubLinkLess(s.InHubs[i], s.InHubs[j]) })
		sort.Slice(s.OutHubs, func(i, j int) bool { return hubLinkLess(s.OutHubs[i], s.OutHubs[j]) })
	}

	sort.Slice(b.connections, func(i, j int) bool { return b.connections[i].Less(b.connections[j]) })

	inInverse := make([][]HubLink, b.maxNodeID+1)
	outInverse := make([][]HubLink, b.maxNodeID+1)
	for _, s := range b.stops {
		for _, hl := range s.InHubs {
			inInverse[hl.Hub] = append(inInverse[hl.Hub], hl)
		}
		for _, hl := range s.OutHubs {
			outInverse[hl.Hub] = append(outInverse[hl.Hub], hl)
		}
	}
	for h := range inInverse {
		sort.Slice(inInverse[h], func(i, j int) bool { return inInverse[h][i].Time < inInverse[h][j].Time })
	}
	for h := range outInverse {
		sort.Slice(outInverse[h], func(i, j int) bool { return outInverse[h][i].Time < outInverse[h][j].Time })
	}

	return &Timetable{
		Stops:          b.stops,
		Connections:    b.connections,
		InverseInHubs:  inInverse,
		InverseOutHubs: outInverse,
		MaxNodeID:      b.maxNodeID,
		MaxTripID:      b.maxTripID,
	}
}

func transferLess(a, b Transfer) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.Target < b.Target
}

func hubLinkLess(a, b HubLink) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.Hub < b.Hub
}
