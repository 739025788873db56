package query

import (
	"testing"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/timetable"
)

func TestBackwardMirrorsForwardOnSimpleTrip(t *testing.T) {
	e := NewEngine(twoStopOneTrip(), false)
	if got := e.Backward(0, 1, 250); got != 100 {
		t.Fatalf("Backward(0,1,250) = %d, want 100", got)
	}
}

func TestBackwardTooEarlyDeadlineIsUnreachable(t *testing.T) {
	e := NewEngine(twoStopOneTrip(), false)
	if got := e.Backward(0, 1, 150); got != csatime.NegInf {
		t.Fatalf("Backward(0,1,150) = %d, want NegInf", got)
	}
}

func TestBackwardPrefersFootpathOverSlowerTrip(t *testing.T) {
	e := NewEngine(footpathShortcut(), false)
	// Deadline 400: both the trip (100->300) and the footpath (leaving as
	// late as 350) succeed, but the footpath allows a later departure.
	if got := e.Backward(0, 2, 400); got != 350 {
		t.Fatalf("Backward(0,2,400) = %d, want 350", got)
	}
}

func TestBackwardAcrossTwoTrips(t *testing.T) {
	e := NewEngine(transferBetweenTrips(), false)
	if got := e.Backward(0, 2, 300); got != 100 {
		t.Fatalf("Backward(0,2,300) = %d, want 100", got)
	}
}

// TestBackwardDualityWithForward checks Backward against Forward's
// earliest-arrival-for-departure relationship: for a fixed itinerary with no alternatives, the latest
// departure to arrive by exactly the trip's arrival time should equal the
// trip's own departure time.
func TestBackwardDualityWithForward(t *testing.T) {
	tt := transferBetweenTrips()
	fwd := NewEngine(tt, false).Forward(0, 2, 0, true)
	bwd := NewEngine(tt, false).Backward(0, 2, fwd)
	if bwd != 100 {
		t.Fatalf("Backward(0,2,%d) = %d, want 100 (the only feasible departure)", fwd, bwd)
	}
}

func TestBackwardHubLabelEquivalentToDirectTransfer(t *testing.T) {
	bt := timetable.NewBuilder()
	bt.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 2, DepTime: 100, ArrTime: 300, Seq: 0})
	bt.AddTransfer(0, 2, 50)
	restricted := NewEngine(bt.Build(), false).Backward(0, 2, 400)

	bh := timetable.NewBuilder()
	bh.AddConnection(timetable.Connection{Trip: 0, DepStop: 0, ArrStop: 2, DepTime: 100, ArrTime: 300, Seq: 0})
	bh.AddOutHub(0, 9, 20)
	bh.AddInHub(2, 9, 30)
	unrestricted := NewEngine(bh.Build(), true).Backward(0, 2, 400)

	if restricted != unrestricted {
		t.Fatalf("restricted = %d, unrestricted (via hub) = %d, want equal", restricted, unrestricted)
	}
}

func TestBackwardReusingEngineResetsState(t *testing.T) {
	e := NewEngine(transferBetweenTrips(), false)
	first := e.Backward(0, 2, 300)
	second := e.Backward(0, 2, 300)
	if first != second {
		t.Fatalf("first = %d, second = %d, want equal across reuse", first, second)
	}
}
