package pareto

import "github.com/transit-csa/engine/internal/csatime"

// profileReserve mirrors bagReserve: the common case keeps a handful of
// Pareto-optimal (dep, arr) pairs per stop.
const profileReserve = 256

// Pair is a single (departure, arrival) point in a one-to-one profile.
type Pair struct {
	Dep csatime.Time
	Arr csatime.Time
}

func (p Pair) dominates(dep, arr csatime.Time) bool {
	return p.Dep >= dep && p.Arr <= arr
}

// Profile is the Pareto set of (departure, arrival) pairs for one
// (source, target) stop pair, kept sorted by strictly decreasing Dep (and,
// by the Pareto invariant, decreasing Arr in that same order). It always
// contains the sentinel (PosInf, PosInf) pair.
type Profile struct {
	pairs []Pair
}

// NewProfile returns a Profile containing only the (inf, inf) sentinel.
func NewProfile() *Profile {
	p := &Profile{pairs: make([]Pair, 0, profileReserve)}
	p.pairs = append(p.pairs, Pair{Dep: csatime.PosInf, Arr: csatime.PosInf})
	return p
}

// Reset restores the profile to its initial sentinel-only state, keeping
// the backing array so the profile can be reused across queries.
func (p *Profile) Reset() {
	p.pairs = p.pairs[:0]
	p.pairs = append(p.pairs, Pair{Dep: csatime.PosInf, Arr: csatime.PosInf})
}

// Pairs returns the profile's pairs in decreasing-departure order. The
// slice is owned by the profile and must not be mutated by the caller.
func (p *Profile) Pairs() []Pair { return p.pairs }

// Dominates reports whether (dep, arr) is dominated by some stored pair,
// i.e. some pair has departure >= dep and arrival <= arr.
func (p *Profile) Dominates(dep, arr csatime.Time) bool {
	for _, pr := range p.pairs {
		if pr.dominates(dep, arr) {
			return true
		}
	}
	return false
}

// Emplace inserts (dep, arr) at the position preserving decreasing-Dep
// order, then drops every later pair it dominates. If check is true and
// the pair is already dominated, Emplace is a no-op.
func (p *Profile) Emplace(dep, arr csatime.Time, check bool) {
	if check && p.Dominates(dep, arr) {
		return
	}

	idx := sortSearch(p.pairs, dep)
	p.pairs = append(p.pairs, Pair{})
	copy(p.pairs[idx+1:], p.pairs[idx:])
	p.pairs[idx] = Pair{Dep: dep, Arr: arr}

	keep := p.pairs[:idx+1]
	for _, pr := range p.pairs[idx+1:] {
		if dep >= pr.Dep && arr <= pr.Arr {
			continue
		}
		keep = append(keep, pr)
	}
	p.pairs = keep
}

// sortSearch returns the first index whose pair has Dep <= dep, i.e. the
// insertion point that keeps the list sorted by strictly decreasing Dep.
func sortSearch(pairs []Pair, dep csatime.Time) int {
	lo, hi := 0, len(pairs)
	for lo < hi {
		mid := (lo + hi) / 2
		if pairs[mid].Dep > dep {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// PointQuery returns the best reachable arrival given arrival at this node
// at time t: the Arr of the last pair whose Dep >= t. By the profile's
// monotone order, scanning from the back returns this at the first match.
func (p *Profile) PointQuery(t csatime.Time) csatime.Time {
	for i := len(p.pairs) - 1; i >= 0; i-- {
		if p.pairs[i].Dep >= t {
			return p.pairs[i].Arr
		}
	}
	return csatime.PosInf
}
