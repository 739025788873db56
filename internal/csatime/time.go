// Package csatime provides the saturating time value used throughout the
// query engine, and the dense identifier types for stops/hubs and trips.
package csatime

import "math"

// Time is a nonnegative count of minutes or seconds; the unit is opaque and
// simply preserved from the input dataset. Two sentinel values, PosInf and
// NegInf, stand in for "unreachable" in the forward and backward directions
// respectively. Arithmetic on Time saturates at these sentinels instead of
// overflowing.
type Time int64

const (
	// PosInf marks "no arrival found" for forward (earliest-arrival) queries.
	PosInf Time = math.MaxInt64 / 2
	// NegInf marks "no departure found" for backward (latest-departure) queries.
	NegInf Time = math.MinInt64 / 2
)

// Add returns t+d, saturating at PosInf/NegInf rather than overflowing.
func (t Time) Add(d Time) Time {
	if t >= PosInf || d >= PosInf {
		return PosInf
	}
	if t <= NegInf || d <= NegInf {
		return NegInf
	}
	sum := t + d
	if sum >= PosInf {
		return PosInf
	}
	if sum <= NegInf {
		return NegInf
	}
	return sum
}

// Sub returns t-d. A finite result that would be negative saturates to
// NegInf, matching the backward direction's use of Time as "latest
// departure so far": a departure can't be pushed before the start of time.
func (t Time) Sub(d Time) Time {
	if t <= NegInf {
		return NegInf
	}
	if t >= PosInf {
		return PosInf
	}
	if d >= PosInf {
		return NegInf
	}
	diff := t - d
	if diff < 0 {
		return NegInf
	}
	return diff
}

func (t Time) Min(o Time) Time {
	if t < o {
		return t
	}
	return o
}
func (t Time) Max(o Time) Time {
	if t > o {
		return t
	}
	return o
}

// NodeId identifies both transit stops and Hub Label nodes in one shared,
// dense namespace; arrays sized by the maximum observed id back every
// per-node structure.
type NodeId uint32

// TripId identifies a trip; arrays sized by the maximum observed id back
// every per-trip structure.
type TripId uint32
