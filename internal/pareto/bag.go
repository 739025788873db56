// Package pareto holds the two Pareto-front containers the query engine
// builds up during a scan: Bag, a 3-criterion insertion front used by
// multi-criteria queries, and Profile, a 2-criterion monotone front used by
// one-to-one profile queries.
package pareto

import (
	"sort"

	"github.com/transit-csa/engine/internal/csatime"
)

// bagReserve is the initial capacity reserved for a new Bag, chosen to
// avoid reallocation for the common case where the front stays in the
// low hundreds of elements.
const bagReserve = 256

// Element is a single point in the 3-criterion front: arrival time, number
// of transfers, and total walking time.
type Element struct {
	Arrival   csatime.Time
	Transfers int
	Walk      csatime.Time
}

// Dominates reports whether e dominates o: every coordinate of e is <= the
// corresponding coordinate of o, and at least one is strictly less.
func (e Element) Dominates(o Element) bool {
	if e.Arrival > o.Arrival || e.Transfers > o.Transfers || e.Walk > o.Walk {
		return false
	}
	return e.Arrival < o.Arrival || e.Transfers < o.Transfers || e.Walk < o.Walk
}

// Shift returns a copy of e with w added to both Arrival and Walk and one
// more transfer counted, the shape of a single footpath or hub leg.
func (e Element) Shift(w csatime.Time) Element {
	return Element{
		Arrival:   e.Arrival.Add(w),
		Transfers: e.Transfers + 1,
		Walk:      e.Walk.Add(w),
	}
}

// Bag is an unordered, insertion-maintained Pareto front over Element.
type Bag struct {
	elems []Element
}

// NewBag returns an empty Bag with its initial capacity reserved.
func NewBag() *Bag {
	return &Bag{elems: make([]Element, 0, bagReserve)}
}

// Len returns the number of elements currently in the bag.
func (b *Bag) Len() int { return len(b.elems) }

// Elements returns the bag's members. The slice is owned by the bag and
// must not be mutated by the caller.
func (b *Bag) Elements() []Element { return b.elems }

// Insert adds e to the bag unless some current element dominates or equals
// it, in which case the bag is unchanged. On a successful insert, every
// element e dominates is removed first. Reports whether e was inserted.
func (b *Bag) Insert(e Element) bool {
	for _, cur := range b.elems {
		if cur.Dominates(e) || cur == e {
			return false
		}
	}
	kept := b.elems[:0]
	for _, cur := range b.elems {
		if !e.Dominates(cur) {
			kept = append(kept, cur)
		}
	}
	b.elems = append(kept, e)
	return true
}

// Merge inserts every element of other into b.
func (b *Bag) Merge(other *Bag) {
	for _, e := range other.elems {
		b.Insert(e)
	}
}

// Reset empties the bag while keeping its backing array, so it can be
// reused for the next node without reallocating.
func (b *Bag) Reset() {
	b.elems = b.elems[:0]
}

// Equal reports whether b and o contain the same multiset of elements,
// ignoring order.
func (b *Bag) Equal(o *Bag) bool {
	if len(b.elems) != len(o.elems) {
		return false
	}
	a := append([]Element(nil), b.elems...)
	c := append([]Element(nil), o.elems...)
	less := func(s []Element) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Arrival != s[j].Arrival {
				return s[i].Arrival < s[j].Arrival
			}
			if s[i].Transfers != s[j].Transfers {
				return s[i].Transfers < s[j].Transfers
			}
			return s[i].Walk < s[j].Walk
		}
	}
	sort.Slice(a, less(a))
	sort.Slice(c, less(c))
	for i := range a {
		if a[i] != c[i] {
			return false
		}
	}
	return true
}
