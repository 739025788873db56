package query

import (
	"testing"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/timetable"
)

// twoStopOneTrip builds stops 0 and 1 connected by a single trip 0
// departing stop 0 at 100 and arriving stop 1 at 200, with no footpaths.
func twoStopOneTrip() *timetable.Timetable {
	b := timetable.NewBuilder()
	b.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 1, DepTime: 100, ArrTime: 200, Seq: 0})
	return b.Build()
}

func TestForwardWaitsAndBoardsTrip(t *testing.T) {
	e := NewEngine(twoStopOneTrip(), false)
	if got := e.Forward(0, 1, 50, true); got != 200 {
		t.Fatalf("Forward(0,1,50) = %d, want 200", got)
	}
}

func TestForwardMissesDepartedTrip(t *testing.T) {
	e := NewEngine(twoStopOneTrip(), false)
	if got := e.Forward(0, 1, 150, true); got != csatime.PosInf {
		t.Fatalf("Forward(0,1,150) = %d, want PosInf", got)
	}
}

func TestForwardWrongDirectionIsUnreachable(t *testing.T) {
	e := NewEngine(twoStopOneTrip(), false)
	if got := e.Forward(1, 0, 0, true); got != csatime.PosInf {
		t.Fatalf("Forward(1,0,0) = %d, want PosInf", got)
	}
}

// footpathShortcut builds a trip from 0 to 2 arriving at 300, plus a direct
// footpath from 0 to 2 taking only 50, which should beat the trip.
func footpathShortcut() *timetable.Timetable {
	b := timetable.NewBuilder()
	b.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 2, DepTime: 100, ArrTime: 300, Seq: 0})
	b.AddTransfer(0, 2, 50)
	return b.Build()
}

func TestForwardPrefersFootpathOverSlowerTrip(t *testing.T) {
	e := NewEngine(footpathShortcut(), false)
	if got := e.Forward(0, 2, 0, true); got != 50 {
		t.Fatalf("Forward(0,2,0) = %d, want 50", got)
	}
}

// transferBetweenTrips builds trip 0 from stop 0 to stop 1 (100->150), a
// footpath from 1 to 1 is unnecessary since the transfer is at the same
// stop; trip 1 continues from stop 1 to stop 2 departing at 200 arriving
// at 300, so a passenger must wait for the later trip.
func transferBetweenTrips() *timetable.Timetable {
	b := timetable.NewBuilder()
	b.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 1, DepTime: 100, ArrTime: 150, Seq: 0})
	b.AddConnection(timetable.Connection{Trip: 1, DepStop: 1, ArrStop: 2, DepTime: 200, ArrTime: 300, Seq: 0})
	return b.Build()
}

func TestForwardAcrossTwoTrips(t *testing.T) {
	e := NewEngine(transferBetweenTrips(), false)
	if got := e.Forward(0, 2, 0, true); got != 300 {
		t.Fatalf("Forward(0,2,0) = %d, want 300", got)
	}
}

func TestForwardTargetPruningMatchesUnpruned(t *testing.T) {
	tt := transferBetweenTrips()
	pruned := NewEngine(tt, false).Forward(0, 2, 0, true)
	unpruned := NewEngine(tt, false).Forward(0, 2, 0, false)
	if pruned != unpruned {
		t.Fatalf("pruned = %d, unpruned = %d, want equal", pruned, unpruned)
	}
}

func TestForwardSameTripNoReboardNeeded(t *testing.T) {
	b := timetable.NewBuilder()
	b.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 1, DepTime: 100, ArrTime: 150, Seq: 0})
	b.AddConnection(timetable.Connection{Trip: 0, DepStop: 1, ArrStop: 2, DepTime: 150, ArrTime: 200, Seq: 1})
	e := NewEngine(b.Build(), false)
	if got := e.Forward(0, 2, 100, true); got != 200 {
		t.Fatalf("Forward(0,2,100) = %d, want 200", got)
	}
}

func TestForwardHubLabelEquivalentToDirectTransfer(t *testing.T) {
	bt := timetable.NewBuilder()
	bt.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 2, DepTime: 100, ArrTime: 300, Seq: 0})
	bt.AddTransfer(0, 2, 50)
	restricted := NewEngine(bt.Build(), false).Forward(0, 2, 0, true)

	bh := timetable.NewBuilder()
	bh.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 2, DepTime: 100, ArrTime: 300, Seq: 0})
	bh.AddOutHub(0, 9, 20)
	bh.AddInHub(2, 9, 30)
	unrestricted := NewEngine(bh.Build(), true).Forward(0, 2, 0, true)

	if restricted != unrestricted {
		t.Fatalf("restricted = %d, unrestricted (via hub) = %d, want equal", restricted, unrestricted)
	}
}

func TestForwardReusingEngineResetsState(t *testing.T) {
	e := NewEngine(transferBetweenTrips(), false)
	first := e.Forward(0, 2, 0, true)
	second := e.Forward(0, 2, 0, true)
	if first != second {
		t.Fatalf("first = %d, second = %d, want equal across reuse", first, second)
	}
}
