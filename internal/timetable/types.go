package timetable

import "github.com/transit-csa/engine/internal/csatime"

// NodeId identifies a stop. Hub nodes share the same dense namespace as
// stops, so a NodeId may be used as either depending on context.
type NodeId = csatime.NodeId

// TripId identifies a trip.
type TripId = csatime.TripId

// Transfer is a pedestrian footpath between two stops with a fixed
// walking time, used by the restricted-walking model.
type Transfer struct {
	Source NodeId
	Target NodeId
	Time   csatime.Time
}

// HubLink connects a stop to a hub node in the unrestricted-walking (Hub
// Label) model. An entry in Stop.InHubs means one may arrive at Stop by
// walking from Hub; an entry in Stop.OutHubs means Hub is reachable by
// walking from Stop.
type HubLink struct {
	Stop NodeId
	Hub  NodeId
	Time csatime.Time
}

// Stop holds a node's footpath and hub edges. Transfers and BackwardTransfers
// are sorted ascending by Time, ties broken by the other endpoint's id.
// InHubs and OutHubs are sorted ascending by Time, ties broken by hub id.
type Stop struct {
	Id                NodeId
	Transfers         []Transfer
	BackwardTransfers []Transfer
	InHubs            []HubLink
	OutHubs           []HubLink
}

// Connection is a single segment of a trip between two consecutive stops.
type Connection struct {
	Trip    TripId
	DepStop NodeId
	ArrStop NodeId
	DepTime csatime.Time
	ArrTime csatime.Time
	Seq     int
}

// Less orders connections lexicographically by (DepTime, ArrTime, Trip,
// Seq), the order the forward scan relies on for correctness.
func (c Connection) Less(o Connection) bool {
	if c.DepTime != o.DepTime {
		return c.DepTime < o.DepTime
	}
	if c.ArrTime != o.ArrTime {
		return c.ArrTime < o.ArrTime
	}
	if c.Trip != o.Trip {
		return c.Trip < o.Trip
	}
	return c.Seq < o.Seq
}
