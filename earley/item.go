package earley

import (
	"fmt"
	"strings"

	"github.com/halprin/earleypcfg/grammar"
)

// Item is an Earley item: a rule, how much of its RHS has been matched
// (Dot), where that match started (Origin), and the chart position it has
// been advanced to (Pos). 0 <= Origin <= Pos and 0 <= Dot <= len(Rule.RHS).
//
// Items are immutable and created once; Advance returns a new Item rather
// than mutating the receiver. Identity is structural: two items with equal
// fields are the same item, regardless of when they were created.
type Item struct {
	Rule   *grammar.Rule
	Origin int
	Dot    int
	Pos    int
}

// HashKey implements iteratable.Hashable. Rule is referenced by its Serial
// (rules are immutable and owned by a single Grammar), so the key never
// touches the Rule's Matcher closures.
func (it Item) HashKey() interface{} {
	serial := -1
	if it.Rule != nil {
		serial = it.Rule.Serial
	}
	return struct {
		Serial, Origin, Dot, Pos int
	}{serial, it.Origin, it.Dot, it.Pos}
}

// IsPassive reports whether the item's dot has reached the end of the
// rule's RHS, i.e. the rule has been fully recognized.
func (it Item) IsPassive() bool {
	return it.Dot >= len(it.Rule.RHS)
}

// ActiveCategory returns the RHS symbol immediately right of the dot, or
// nil if the item is passive.
func (it Item) ActiveCategory() *grammar.Category {
	if it.IsPassive() {
		return nil
	}
	return it.Rule.RHS[it.Dot]
}

// Advance returns the item with its dot moved one position to the right.
// Panics if the item is already passive; callers must check IsPassive or
// ActiveCategory first.
func (it Item) Advance() Item {
	if it.IsPassive() {
		panic("earley: Advance called on a passive item")
	}
	return Item{Rule: it.Rule, Origin: it.Origin, Dot: it.Dot + 1, Pos: it.Pos + 1}
}

// AdvanceInPlace returns the item with its dot moved one position to the
// right and Pos set to newPos. Used by complete, where the
// resulting item's position is the completer's position, not Dot+1 steps
// from the predecessor's own position.
func (it Item) AdvanceInPlace(newPos int) Item {
	if it.IsPassive() {
		panic("earley: AdvanceInPlace called on a passive item")
	}
	return Item{Rule: it.Rule, Origin: it.Origin, Dot: it.Dot + 1, Pos: newPos}
}

func (it Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ->", it.Rule.LHS.Name())
	for i, c := range it.Rule.RHS {
		if i == it.Dot {
			b.WriteString(" •")
		}
		fmt.Fprintf(&b, " %s", c.Name())
	}
	if it.Dot == len(it.Rule.RHS) {
		b.WriteString(" •")
	}
	fmt.Fprintf(&b, " [%d, %d]", it.Origin, it.Pos)
	return b.String()
}
