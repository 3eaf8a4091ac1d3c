/*
Package input defines the external token-source contract the earley parser
expects. Tokenization itself is explicitly out of scope for this module
(see the root package documentation): callers bring their own scanner, and
terminals in a grammar expose only a predicate over tokens ("does this
token match?"). This package supplies that contract plus one convenience
implementation so examples and tests don't need their own scanner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package input

import "strings"

// Token is the minimal surface a grammar's terminal matcher needs. Lexeme
// is the literal text of the token as found in the input (used by word- and
// category-matching terminals); applications with richer token types are
// free to type-assert a Token to get at additional fields.
type Token interface {
	Lexeme() string
}

// TokenSequence is an ordered, finite, restartable sequence of tokens. It
// is deliberately simple: Len and At are enough for the parser driver loop
// to scan position by position, and "restartable" falls out of it being a
// pure, read-only view rather than a stream with cursor state.
type TokenSequence interface {
	Len() int
	At(i int) Token
}

// StringToken is a Token whose lexeme is exactly the wrapped string. It is
// the token type produced by NewWordTokens.
type StringToken string

// Lexeme implements Token.
func (s StringToken) Lexeme() string { return string(s) }

// Tokens is a slice-backed TokenSequence.
type Tokens []Token

// Len implements TokenSequence.
func (t Tokens) Len() int { return len(t) }

// At implements TokenSequence.
func (t Tokens) At(i int) Token { return t[i] }

// NewWordTokens splits s on whitespace and wraps each word as a
// StringToken, yielding a TokenSequence. It is a convenience for tests and
// small examples (e.g. parsing "he saw her duck") and is not a general
// purpose lexer: grammars that need real tokenization (numbers, escapes,
// multi-character operators, …) should supply their own TokenSequence.
func NewWordTokens(s string) Tokens {
	words := strings.Fields(s)
	toks := make(Tokens, len(words))
	for i, w := range words {
		toks[i] = StringToken(w)
	}
	return toks
}
