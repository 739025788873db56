package query

import (
	"sort"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/timetable"
)

// Forward returns the earliest time target can be reached departing
// source no earlier than depart, or csatime.PosInf if it cannot be
// reached at all. With targetPruning (the default), the scan stops as
// soon as no later connection could possibly improve the target's
// arrival time.
func (e *Engine) Forward(source, target timetable.NodeId, depart csatime.Time, targetPruning bool) csatime.Time {
	e.Init()
	e.resetEarliestArrival()
	e.resetReached()

	// The source is trivially reachable at its own departure time; every
	// relaxation below builds outward from this.
	e.earliestArrival[source] = depart

	e.relaxSourceForward(source, depart)

	start := sort.Search(len(e.tt.Connections), func(i int) bool {
		return e.tt.Connections[i].DepTime >= depart
	})

	for i := start; i < len(e.tt.Connections); i++ {
		c := e.tt.Connections[i]

		if targetPruning && e.earliestArrival[target] <= c.DepTime {
			if e.useHL {
				e.pullInHubs(target)
			}
			break
		}

		if e.useHL && !e.reached[c.Trip] {
			e.pullInHubs(c.DepStop)
		}

		boardable := e.reached[c.Trip] || e.earliestArrival[c.DepStop] <= c.DepTime
		if !boardable {
			continue
		}
		e.reached[c.Trip] = true

		if c.ArrTime < e.earliestArrival[c.ArrStop] {
			e.earliestArrival[c.ArrStop] = c.ArrTime
			e.relaxArrivalForward(c.ArrStop, c.ArrTime, target)
		}
	}

	return e.earliestArrival[target]
}

// relaxSourceForward seeds earliestArrival for every stop reachable from
// source by a single footpath or hub leg.
func (e *Engine) relaxSourceForward(source timetable.NodeId, depart csatime.Time) {
	if !e.useHL {
		for _, t := range e.tt.Stop(source).Transfers {
			e.earliestArrival[t.Target] = depart.Add(t.Time)
		}
		return
	}

	for _, hl := range e.tt.Stop(source).OutHubs {
		e.earliestArrival[hl.Hub] = depart.Add(hl.Time)
	}
	for i := range e.tt.Stops {
		s := &e.tt.Stops[i]
		for _, hl := range s.InHubs {
			cand := e.earliestArrival[hl.Hub].Add(hl.Time)
			if cand < e.earliestArrival[s.Id] {
				e.earliestArrival[s.Id] = cand
			}
		}
	}
}

// relaxArrivalForward propagates an improved arrival at stop out over its
// footpaths or out-hubs, stopping early once the candidate time can no
// longer improve the target (the lists are sorted by walking time).
func (e *Engine) relaxArrivalForward(stop timetable.NodeId, arrival csatime.Time, target timetable.NodeId) {
	if !e.useHL {
		for _, t := range e.tt.Stop(stop).Transfers {
			cand := arrival.Add(t.Time)
			if cand > e.earliestArrival[target] {
				break
			}
			if cand < e.earliestArrival[t.Target] {
				e.earliestArrival[t.Target] = cand
			}
		}
		return
	}

	for _, hl := range e.tt.Stop(stop).OutHubs {
		cand := arrival.Add(hl.Time)
		if cand > e.earliestArrival[target] {
			break
		}
		if cand < e.earliestArrival[hl.Hub] {
			e.earliestArrival[hl.Hub] = cand
		}
	}
}

// pullInHubs refreshes earliestArrival[node] by pulling from every hub in
// node's in-hub list. There is no early exit here: earliestArrival[hub]
// is not monotone during the scan, so every candidate must be checked.
func (e *Engine) pullInHubs(node timetable.NodeId) {
	for _, hl := range e.tt.Stop(node).InHubs {
		cand := e.earliestArrival[hl.Hub].Add(hl.Time)
		if cand < e.earliestArrival[node] {
			e.earliestArrival[node] = cand
		}
	}
}
