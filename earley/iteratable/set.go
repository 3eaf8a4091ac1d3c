package iteratable

import (
	"github.com/cnf/structhash"
)

// Hashable is implemented by values stored in a Set. HashKey must return a
// plain-data value (no funcs, no interfaces wrapping closures) that fully
// determines the item's identity for deduplication purposes; structhash
// hashes it via reflection.
type Hashable interface {
	HashKey() interface{}
}

// Set is a destructively-iterated set of Hashable items. The zero value is
// not usable; create one with NewSet.
//
// Add, Remove and Union mutate the receiver in place. Copy, Subset and
// Difference return independent sets. IterateOnce followed by repeated Next
// walks the set as a worklist: items Add-ed during the walk (e.g. by a
// predict or complete deduction applied to the current item) are visited
// later in the same walk, because Next re-checks the live length of the
// backing slice rather than a frozen snapshot.
type Set struct {
	keys   map[string]struct{}
	values []interface{}
	cursor int
}

// NewSet creates an empty Set, optionally pre-sizing its backing storage.
func NewSet(capacityHint int) *Set {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Set{
		keys:   make(map[string]struct{}, capacityHint),
		values: make([]interface{}, 0, capacityHint),
		cursor: -1,
	}
}

func hashKeyOf(item interface{}) string {
	h, ok := item.(Hashable)
	if !ok {
		panic("iteratable.Set: item does not implement Hashable")
	}
	key, err := structhash.Hash(h.HashKey(), 1)
	if err != nil {
		panic(err)
	}
	return key
}

// Add inserts item if it is not already present. Reports whether the item
// was newly added.
func (s *Set) Add(item interface{}) bool {
	key := hashKeyOf(item)
	if _, found := s.keys[key]; found {
		return false
	}
	s.keys[key] = struct{}{}
	s.values = append(s.values, item)
	return true
}

// Contains reports whether an equal item is already in the set.
func (s *Set) Contains(item interface{}) bool {
	_, found := s.keys[hashKeyOf(item)]
	return found
}

// Remove deletes item from the set, if present. It does not rewind an
// in-progress iteration; a removed item that has already been visited by
// Next is simply gone from future iteration rounds.
func (s *Set) Remove(item interface{}) {
	key := hashKeyOf(item)
	if _, found := s.keys[key]; !found {
		return
	}
	delete(s.keys, key)
	for i, v := range s.values {
		if hashKeyOf(v) == key {
			s.values = append(s.values[:i], s.values[i+1:]...)
			if i <= s.cursor {
				s.cursor--
			}
			break
		}
	}
}

// Size returns the number of items currently in the set.
func (s *Set) Size() int {
	return len(s.values)
}

// Empty reports whether the set has no items.
func (s *Set) Empty() bool {
	return len(s.values) == 0
}

// Values returns a snapshot slice of the set's current items. The slice
// must not be mutated.
func (s *Set) Values() []interface{} {
	return s.values
}

// First returns an arbitrary item of the set, or nil if it is empty.
func (s *Set) First() interface{} {
	if len(s.values) == 0 {
		return nil
	}
	return s.values[0]
}

// Each calls f once for every item currently in the set. Unlike
// IterateOnce/Next, items added by f during the call are not guaranteed
// to be visited.
func (s *Set) Each(f func(interface{})) {
	for _, v := range append([]interface{}(nil), s.values...) {
		f(v)
	}
}

// Copy returns an independent Set with the same items.
func (s *Set) Copy() *Set {
	cp := NewSet(len(s.values))
	for k := range s.keys {
		cp.keys[k] = struct{}{}
	}
	cp.values = append(cp.values, s.values...)
	return cp
}

// Subset returns a new Set containing exactly the items of s for which
// pred returns true.
func (s *Set) Subset(pred func(interface{}) bool) *Set {
	sub := NewSet(0)
	for _, v := range s.values {
		if pred(v) {
			sub.Add(v)
		}
	}
	return sub
}

// Union adds every item of other into s.
func (s *Set) Union(other *Set) {
	for _, v := range other.values {
		s.Add(v)
	}
}

// Difference returns a new Set with every item of s that is not in other.
func (s *Set) Difference(other *Set) *Set {
	return s.Subset(func(item interface{}) bool {
		return !other.Contains(item)
	})
}

// Equals reports whether s and other contain the same items.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.keys) != len(other.keys) {
		return false
	}
	for k := range s.keys {
		if _, found := other.keys[k]; !found {
			return false
		}
	}
	return true
}

// IterateOnce (re)starts a destructive worklist iteration over s. Call
// this once, then loop on Next.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the iteration cursor and reports whether another item is
// available. Because it re-reads len(s.values) on every call, items Add-ed
// during the loop body (after the previous Next call) are visited before
// the iteration ends.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.values)
}

// Item returns the item at the current iteration cursor. Valid only after
// a call to Next that returned true.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.values) {
		return nil
	}
	return s.values[s.cursor]
}
