package grammar

import "github.com/halprin/earleypcfg/input"

// Matcher is the predicate a terminal category uses to decide whether an
// input token matches it. Tokenization itself is out of scope for this
// module (see the input package): a Matcher only ever gets asked "does
// this token match?".
type Matcher interface {
	Match(tok input.Token) bool
}

// MatcherFunc adapts a plain function to a Matcher.
type MatcherFunc func(tok input.Token) bool

// Match implements Matcher.
func (f MatcherFunc) Match(tok input.Token) bool { return f(tok) }

// Literal returns a Matcher that matches a token whose Lexeme equals s
// exactly. It is the common case for small example/test grammars.
func Literal(s string) Matcher {
	return MatcherFunc(func(tok input.Token) bool {
		return tok != nil && tok.Lexeme() == s
	})
}

// Category is a grammar symbol: either a non-terminal (identified by name)
// or a terminal (identified by object identity, carrying a Matcher). It is
// always used by pointer (*Category); non-terminals are interned by a
// Builder so that repeated uses of the same name share a pointer and thus
// compare equal via ==, while terminals are deliberately not interned,
// matching the source's identity-based terminal equality.
type Category struct {
	name     string
	terminal Matcher // nil for non-terminals
}

// Name returns the category's display name (the non-terminal's name, or
// the terminal's descriptive label).
func (c *Category) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// IsTerminal reports whether c is a terminal category.
func (c *Category) IsTerminal() bool {
	return c != nil && c.terminal != nil
}

// IsNonTerminal reports whether c is a non-terminal category.
func (c *Category) IsNonTerminal() bool {
	return c != nil && c.terminal == nil
}

// Matches reports whether tok matches this terminal category. It is always
// false for non-terminal categories.
func (c *Category) Matches(tok input.Token) bool {
	if c == nil || c.terminal == nil {
		return false
	}
	return c.terminal.Match(tok)
}

func (c *Category) String() string {
	return c.Name()
}

// NonLexical is the distinguished "non-lexical" non-terminal marker used to
// tag error-recovery rules (spec §3: "One distinguished variant ... marks
// error-recovery rules"). A rule is an error rule iff any RHS element is
// NonLexical.
var NonLexical = &Category{name: "⊥"}

// Epsilon is a distinguished terminal category matching no token. A rule
// RHS containing Epsilon (necessarily as its sole element, since RHS must
// be non-empty) represents an empty derivation: the earley package
// advances an item active on Epsilon without consuming any input.
var Epsilon = &Category{name: "ε", terminal: MatcherFunc(func(tok input.Token) bool { return false })}

// IsEpsilon reports whether c is the distinguished Epsilon marker.
func (c *Category) IsEpsilon() bool {
	return c == Epsilon
}
