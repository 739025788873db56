package query

import (
	"sort"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/pareto"
	"github.com/transit-csa/engine/internal/timetable"
)

// MultiCriteria returns the Pareto set over (arrival time, transfer
// count, walking time) for journeys from source to target departing no
// earlier than depart. Unlike Forward, this variant never prunes on the
// target: the front at the target can still grow from a later
// connection, so every connection from the scan start is visited.
func (e *Engine) MultiCriteria(source, target timetable.NodeId, depart csatime.Time) *pareto.Bag {
	e.Init()
	for _, b := range e.bags {
		b.Reset()
	}
	for _, b := range e.tripBags {
		b.Reset()
	}
	e.resetReached()

	e.bags[source].Insert(pareto.Element{Arrival: depart, Transfers: 0, Walk: 0})
	e.relaxSourceBag(source, depart)

	start := sort.Search(len(e.tt.Connections), func(i int) bool {
		return e.tt.Connections[i].DepTime >= depart
	})

	for i := start; i < len(e.tt.Connections); i++ {
		c := e.tt.Connections[i]

		if e.useHL && !e.reached[c.Trip] {
			e.pullInHubsBag(c.DepStop)
		}

		boarding := boardableElements(e.bags[c.DepStop], c.DepTime)
		riding := e.tripBags[c.Trip].Elements()
		if len(boarding) == 0 && len(riding) == 0 {
			continue
		}
		e.reached[c.Trip] = true

		fresh := e.tripBags[c.Trip].Elements()[:0:0] // distinct backing array from riding
		for _, e0 := range boarding {
			fresh = append(fresh, carryOnboard(e0, c.ArrTime))
		}
		for _, e0 := range riding {
			fresh = append(fresh, carryOnboard(e0, c.ArrTime))
		}

		e.tripBags[c.Trip].Reset()
		for _, ne := range fresh {
			e.tripBags[c.Trip].Insert(ne)
			e.bags[c.ArrStop].Insert(ne)
		}

		e.relaxArrivalBag(c.ArrStop, fresh)
	}

	if e.useHL {
		e.pullInHubsBag(target)
	}

	return e.bags[target]
}

// carryOnboard produces the element a rider of the connection ends up
// with: the connection's own arrival time, with transfer count and
// walking time carried over unchanged (staying seated adds neither).
func carryOnboard(e pareto.Element, arrive csatime.Time) pareto.Element {
	return pareto.Element{Arrival: arrive, Transfers: e.Transfers, Walk: e.Walk}
}

// boardableElements returns the elements of bag whose arrival is no
// later than depart, i.e. those that can catch a connection departing
// at depart.
func boardableElements(bag *pareto.Bag, depart csatime.Time) []pareto.Element {
	var out []pareto.Element
	for _, e := range bag.Elements() {
		if e.Arrival <= depart {
			out = append(out, e)
		}
	}
	return out
}

// relaxSourceBag seeds neighbor bags with a single shifted copy of the
// source's seed element, one hop per footpath or hub leg.
func (e *Engine) relaxSourceBag(source timetable.NodeId, depart csatime.Time) {
	seed := pareto.Element{Arrival: depart, Transfers: 0, Walk: 0}

	if !e.useHL {
		for _, t := range e.tt.Stop(source).Transfers {
			e.bags[t.Target].Insert(seed.Shift(t.Time))
		}
		return
	}

	for _, hl := range e.tt.Stop(source).OutHubs {
		e.bags[hl.Hub].Insert(seed.Shift(hl.Time))
	}
	for i := range e.tt.Stops {
		s := &e.tt.Stops[i]
		for _, hl := range s.InHubs {
			for _, e0 := range e.bags[hl.Hub].Elements() {
				e.bags[s.Id].Insert(e0.Shift(hl.Time))
			}
		}
	}
}

// relaxArrivalBag propagates the elements just inserted at stop out over
// its footpaths or out-hubs, one transfer per leg.
func (e *Engine) relaxArrivalBag(stop timetable.NodeId, fresh []pareto.Element) {
	if !e.useHL {
		for _, t := range e.tt.Stop(stop).Transfers {
			for _, ne := range fresh {
				e.bags[t.Target].Insert(ne.Shift(t.Time))
			}
		}
		return
	}

	for _, hl := range e.tt.Stop(stop).OutHubs {
		for _, ne := range fresh {
			e.bags[hl.Hub].Insert(ne.Shift(hl.Time))
		}
	}
}

// pullInHubsBag refreshes bag[node] by pulling every element currently in
// each in-hub's bag, shifted by that hub's walking time. Like the scalar
// forward scan's hub pull, this has no early exit: a hub's bag is not
// monotone during the scan.
func (e *Engine) pullInHubsBag(node timetable.NodeId) {
	for _, hl := range e.tt.Stop(node).InHubs {
		for _, e0 := range e.bags[hl.Hub].Elements() {
			e.bags[node].Insert(e0.Shift(hl.Time))
		}
	}
}

