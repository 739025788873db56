package query

import (
	"sort"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/timetable"
)

// Backward returns the latest time source must depart to reach target no
// later than arrive, or csatime.NegInf if no such departure exists. It is
// the mirror image of Forward: connections are scanned in decreasing
// departure order, relaxation runs against backward footpaths/in-hubs,
// and pruning is always on.
func (e *Engine) Backward(source, target timetable.NodeId, arrive csatime.Time) csatime.Time {
	e.Init()
	e.resetLatestDeparture()
	e.resetReached()

	e.latestDeparture[target] = arrive
	e.relaxTargetBackward(target, arrive)

	start := sort.Search(len(e.tt.Connections), func(i int) bool {
		return e.tt.Connections[i].DepTime >= arrive
	})

	for i := start - 1; i >= 0; i-- {
		c := e.tt.Connections[i]

		if e.latestDeparture[source] >= c.ArrTime {
			if e.useHL {
				e.pullOutHubs(source)
			}
			break
		}

		if e.useHL && !e.reached[c.Trip] {
			e.pullOutHubs(c.ArrStop)
		}

		boardable := e.reached[c.Trip] || e.latestDeparture[c.ArrStop] >= c.ArrTime
		if !boardable {
			continue
		}
		e.reached[c.Trip] = true

		if c.DepTime > e.latestDeparture[c.DepStop] {
			e.latestDeparture[c.DepStop] = c.DepTime
			e.relaxDepartureBackward(c.DepStop, c.DepTime, source)
		}
	}

	return e.latestDeparture[source]
}

// relaxTargetBackward seeds latestDeparture for every stop from which
// target is reachable by a single footpath or hub leg.
func (e *Engine) relaxTargetBackward(target timetable.NodeId, arrive csatime.Time) {
	if !e.useHL {
		for _, t := range e.tt.Stop(target).BackwardTransfers {
			e.latestDeparture[t.Target] = arrive.Sub(t.Time)
		}
		return
	}

	for _, hl := range e.tt.Stop(target).InHubs {
		e.latestDeparture[hl.Hub] = arrive.Sub(hl.Time)
	}
	for i := range e.tt.Stops {
		s := &e.tt.Stops[i]
		for _, hl := range s.OutHubs {
			cand := e.latestDeparture[hl.Hub].Sub(hl.Time)
			if cand > e.latestDeparture[s.Id] {
				e.latestDeparture[s.Id] = cand
			}
		}
	}
}

// relaxDepartureBackward propagates an improved departure at stop
// backward over its footpaths or in-hubs, stopping early once the
// candidate time can no longer improve source (the lists are sorted by
// walking time).
func (e *Engine) relaxDepartureBackward(stop timetable.NodeId, depart csatime.Time, source timetable.NodeId) {
	if !e.useHL {
		for _, t := range e.tt.Stop(stop).BackwardTransfers {
			cand := depart.Sub(t.Time)
			if cand < e.latestDeparture[source] {
				break
			}
			if cand > e.latestDeparture[t.Target] {
				e.latestDeparture[t.Target] = cand
			}
		}
		return
	}

	for _, hl := range e.tt.Stop(stop).InHubs {
		cand := depart.Sub(hl.Time)
		if cand < e.latestDeparture[source] {
			break
		}
		if cand > e.latestDeparture[hl.Hub] {
			e.latestDeparture[hl.Hub] = cand
		}
	}
}

// pullOutHubs refreshes latestDeparture[node] by pulling from every hub
// in node's out-hub list. As with pullInHubs in the forward scan, there
// is no early exit: latestDeparture[hub] is not monotone during the scan.
func (e *Engine) pullOutHubs(node timetable.NodeId) {
	for _, hl := range e.tt.Stop(node).OutHubs {
		cand := e.latestDeparture[hl.Hub].Sub(hl.Time)
		if cand > e.latestDeparture[node] {
			e.latestDeparture[node] = cand
		}
	}
}
