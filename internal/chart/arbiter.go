package chart

import "sync/atomic"

// Token identifies one logical query cycle, e.g. everything fetched for a
// single ticker selection.
type Token int64

// Arbiter discards stale asynchronous results after rapid input changes. A
// fetch cycle mints a token before starting and checks ShouldApply before
// committing its results; a response that lost the race simply has no
// effect. It is compare-and-discard, not cancellation - in-flight requests
// run to completion.
type Arbiter struct {
	latest atomic.Int64
}

// Issue mints the next token and makes it the latest.
func (a *Arbiter) Issue() Token {
	return Token(a.latest.Add(1))
}

// ShouldApply reports whether a response carrying this token is still the
// most recent one issued.
func (a *Arbiter) ShouldApply(t Token) bool {
	return int64(t) == a.latest.Load()
}
