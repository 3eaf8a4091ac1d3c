/*
Package earleypcfg is a toolbox for parsing a finite token sequence against
a probabilistic context-free grammar (PCFG) with a probabilistic Earley
parser.

It focuses on the recognizer/parser core: the chart, the predict/scan/complete
deduction phases, the forward/inner probability calculus over a configurable
semiring, and Viterbi-best-parse reconstruction. Package structure mirrors
the shape of the problem:

■ semiring: the algebraic carrier (⊕, ⊗, 0̄, 1̄) used uniformly for
probability, log-probability, and Viterbi scoring.

■ grammar: Category, Rule, Grammar and its Builder, together with the
precomputed left-corner and unit-production closures that keep prediction
and completion finite.

■ earley: the chart, deferred score arithmetic, the three deduction phases,
Viterbi back-pointer propagation, parse-tree extraction, and the Parser
facade.

■ input: the external token-source contract (tokens are produced elsewhere;
terminals only need a predicate over them), plus one convenience
implementation.

The base package is intentionally empty of types: earley.Item/Chart track
a match's span as plain Origin/Pos ints (spec §4.1), and input.Token is the
only externally-visible token type. It exists solely to carry this overview
doc comment.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package earleypcfg
