package earley

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"

	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/input"
)

// UnexpectedTokenError is returned when, after scanning the token at
// Position, the next position's item set is empty: no active-on-terminal
// item in the chart matched the token.
type UnexpectedTokenError struct {
	Position int
	Token    input.Token
	Expected []*grammar.Category
}

func (e *UnexpectedTokenError) Error() string {
	names := make([]string, len(e.Expected))
	for i, c := range e.Expected {
		names[i] = c.Name()
	}
	lexeme := "<eof>"
	if e.Token != nil {
		lexeme = e.Token.Lexeme()
	}
	return fmt.Sprintf("unexpected token %q at position %d, expected one of {%s}",
		lexeme, e.Position, strings.Join(names, ", "))
}

// InternalInvariantViolatedError indicates a bug: an index inconsistency,
// or a missing Viterbi score at a state that must have one. It is only
// ever constructed by invariantViolated.
type InternalInvariantViolatedError struct {
	Detail string
}

func (e *InternalInvariantViolatedError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Detail)
}

// invariantViolated logs detail and, when the "earley-panic-on-invariant-
// violation" config flag is set, panics with an *InternalInvariantViolatedError
// so a caller debugging a parser bug can get a stack trace and post-mortem
// at the point of violation rather than a silently wrong parse result.
// Defaults to false: production callers get the error value back instead.
func invariantViolated(detail string) *InternalInvariantViolatedError {
	err := &InternalInvariantViolatedError{Detail: detail}
	tracer().Errorf(err.Error())
	if gconf.GetBool("earley-panic-on-invariant-violation") {
		panic(err)
	}
	return err
}

// expectedCategories collects the terminal categories that were active
// (and thus could have advanced the parse) at position pos, for inclusion
// in an UnexpectedTokenError.
func expectedCategories(chart *Chart, pos int) []*grammar.Category {
	seen := make(map[*grammar.Category]bool)
	var out []*grammar.Category
	for _, v := range chart.Sets[pos].Values() {
		item := v.(Item)
		cat := item.ActiveCategory()
		if cat != nil && cat.IsTerminal() && !cat.IsEpsilon() && !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
