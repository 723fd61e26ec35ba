// Package script defines the contract between facet collection and an
// external scripting engine. The engine evaluates a user script against
// each candidate value and returns a typed verdict: reject the value,
// keep it, or replace it with a new string.
package script

import "github.com/hupe1980/facetgo/fielddata"

// Scorer exposes the relevance score of the document currently being
// collected, for scripts that read it.
type Scorer interface {
	Score() float32
}

type kind int

const (
	kindReject kind = iota
	kindKeep
	kindReplace
)

// Result is the typed outcome of evaluating a script against one value.
type Result struct {
	kind  kind
	value string
}

// Reject drops the value from the count.
func Reject() Result { return Result{kind: kindReject} }

// Keep counts the value unchanged.
func Keep() Result { return Result{kind: kindKeep} }

// Replace counts value in place of the original.
func Replace(value string) Result { return Result{kind: kindReplace, value: value} }

// Rejected reports whether the value was dropped.
func (r Result) Rejected() bool { return r.kind == kindReject }

// Apply resolves the verdict against the original value. ok is false
// when the value was rejected.
func (r Result) Apply(original string) (value string, ok bool) {
	switch r.kind {
	case kindKeep:
		return original, true
	case kindReplace:
		return r.value, true
	default:
		return "", false
	}
}

// Script is a compiled per-facet handle into the scripting engine. It is
// bound to a single collector and never called concurrently. The
// collector rebinds segment, scorer, and document context before each
// evaluation; Eval receives the field's raw value bound as the script's
// term variable.
type Script interface {
	SetScorer(s Scorer)
	SetNextSegment(seg fielddata.Segment)
	SetNextDoc(docID uint32)
	Eval(term string) Result
}

// FuncScript adapts a plain evaluation function to Script for engines
// and tests that need no segment or scorer context.
type FuncScript struct {
	Fn func(docID uint32, term string) Result

	docID uint32
}

// SetScorer implements Script.
func (s *FuncScript) SetScorer(Scorer) {}

// SetNextSegment implements Script.
func (s *FuncScript) SetNextSegment(fielddata.Segment) {}

// SetNextDoc implements Script.
func (s *FuncScript) SetNextDoc(docID uint32) { s.docID = docID }

// Eval implements Script.
func (s *FuncScript) Eval(term string) Result { return s.Fn(s.docID, term) }
