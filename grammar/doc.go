/*
Package grammar implements probabilistic context-free grammars: categories
(terminals and non-terminals), rules, and a Grammar with its precomputed
left-corner and unit-production closures.

Building a Grammar

Grammars are built with a Builder. Non-terminal categories are interned by
name (two calls to NonTerminal("NP") return the same *Category, so
equality is structural by name); terminal categories are identified by
object identity, as recommended by the "terminals match by predicate"
design (construct one terminal per distinct token class and reuse it
across rules).

	b := grammar.NewBuilder(semiring.Probability{})
	np := b.NonTerminal("NP")
	he := b.Terminal("he", grammar.Literal("he"))
	b.AddRule(np, 0.5, he)
	g, err := b.Build()

Build() eagerly computes the left-corner closure R_L* and the
unit-production closure R_U*, failing with a *NotConvergentError if the
unit-production sub-grammar is not sub-stochastic on its cycles.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key "earleypcfg.grammar".
func tracer() tracing.Trace {
	return tracing.Select("earleypcfg.grammar")
}
