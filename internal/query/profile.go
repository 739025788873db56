package query

import (
	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/pareto"
	"github.com/transit-csa/engine/internal/timetable"
)

// Profile returns every Pareto-optimal (departure, arrival) pair between
// source and target across the whole connection array.
func (e *Engine) Profile(source, target timetable.NodeId) *pareto.Profile {
	e.Init()

	// A non-pruning forward scan from departure 0 populates reached[]
	// for every trip that can reach anywhere; the profile pass below
	// relies on this and must not clear or re-derive it.
	e.Forward(source, target, 0, false)

	for i := range e.profiles {
		e.profiles[i].Reset()
	}
	for i := range e.tripBest {
		e.tripBest[i] = csatime.PosInf
	}
	for i := range e.walkToTarget {
		e.walkToTarget[i] = csatime.PosInf
	}

	e.relaxWalkToTarget(target)

	for i := len(e.tt.Connections) - 1; i >= 0; i-- {
		c := e.tt.Connections[i]
		if !e.reached[c.Trip] {
			continue
		}

		t1 := c.ArrTime.Add(e.walkToTarget[c.ArrStop])
		t2 := e.tripBest[c.Trip]
		t3 := e.profilePointQuery(c.ArrStop, c.ArrTime)

		if e.useHL {
			for _, hl := range e.tt.Stop(c.ArrStop).OutHubs {
				t3h := e.profilePointQuery(hl.Hub, c.ArrTime.Add(hl.Time))
				if t3h < t3 {
					t3 = t3h
				}
			}
		}

		tConn := minTime(t1, minTime(t2, t3))

		if e.profiles[source].Dominates(c.DepTime, tConn) {
			continue
		}

		if !e.profiles[c.DepStop].Dominates(c.DepTime, tConn) {
			e.profiles[c.DepStop].Emplace(c.DepTime, tConn, false)

			if !e.useHL {
				for _, t := range e.tt.Stop(c.DepStop).BackwardTransfers {
					e.profiles[t.Target].Emplace(c.DepTime.Sub(t.Time), tConn, true)
				}
			} else {
				for _, hl := range e.tt.Stop(c.DepStop).InHubs {
					e.profiles[hl.Hub].Emplace(c.DepTime.Sub(hl.Time), tConn, true)
				}
			}
		}

		e.tripBest[c.Trip] = tConn
	}

	return e.profiles[source]
}

// relaxWalkToTarget seeds walkToTarget for every stop from which target
// is reachable by a single footpath or hub leg, mirroring the source-side
// relaxation a forward query performs.
func (e *Engine) relaxWalkToTarget(target timetable.NodeId) {
	if !e.useHL {
		for _, t := range e.tt.Stop(target).BackwardTransfers {
			e.walkToTarget[t.Target] = t.Time
		}
		return
	}

	for _, hl := range e.tt.Stop(target).InHubs {
		e.walkToTarget[hl.Hub] = hl.Time
	}
	for i := range e.tt.Stops {
		s := &e.tt.Stops[i]
		for _, hl := range s.OutHubs {
			cand := e.walkToTarget[hl.Hub].Add(hl.Time)
			if cand < e.walkToTarget[s.Id] {
				e.walkToTarget[s.Id] = cand
			}
		}
	}
}

// profilePointQuery answers "given arrival at node at time t, what is the
// best reachable arrival at target?" using that node's profile.
func (e *Engine) profilePointQuery(node timetable.NodeId, t csatime.Time) csatime.Time {
	return e.profiles[node].PointQuery(t)
}

func minTime(a, b csatime.Time) csatime.Time {
	if a < b {
		return a
	}
	return b
}
