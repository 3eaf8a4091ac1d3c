package grammar

import (
	"fmt"
	"strings"

	"github.com/halprin/earleypcfg/semiring"
)

// Rule is an immutable production LHS → RHS with an associated
// probability, stored both as the original value and pre-converted into
// the grammar's semiring.
//
// Invariants: LHS is a non-terminal; RHS is non-empty; no RHS element is
// nil. Terminals may appear anywhere in the RHS, interleaved with
// non-terminals (spec §9 open question (a): the safe policy is to allow
// it).
type Rule struct {
	LHS     *Category
	RHS     []*Category
	Prob    float64        // original probability, as supplied to the builder
	SemProb semiring.Value // Prob pre-converted into the grammar's semiring

	// Serial is the rule's ordinal position within the grammar, assigned by
	// the Builder in the order rules were added. It identifies the rule
	// within its grammar: earley.Item.HashKey keys items by it.
	Serial int
}

// IsUnitProduction reports whether r is a unit production: RHS length 1
// and RHS[0] is a non-terminal.
func (r *Rule) IsUnitProduction() bool {
	return len(r.RHS) == 1 && r.RHS[0].IsNonTerminal()
}

// IsErrorRule reports whether r is an error-recovery rule, i.e. whether
// any RHS element is the NonLexical marker category.
func (r *Rule) IsErrorRule() bool {
	for _, c := range r.RHS {
		if c == NonLexical {
			return true
		}
	}
	return false
}

func (r *Rule) String() string {
	parts := make([]string, len(r.RHS))
	for i, c := range r.RHS {
		parts[i] = c.Name()
	}
	return fmt.Sprintf("%s -> %s [%g]", r.LHS.Name(), strings.Join(parts, " "), r.Prob)
}
