package collector

import (
	"regexp"

	"github.com/hupe1980/facetgo/script"
)

// valuePipeline applies the optional per-value stages in fixed order:
// exclusion set, full-match pattern, script. Any stage may short-circuit
// by rejecting the value; the script may also substitute it.
type valuePipeline struct {
	excluded map[string]struct{}
	pattern  *regexp.Regexp
	script   script.Script
}

// accept runs value through the stages. ok reports whether the value
// contributes to the count; out is the possibly substituted value.
func (p *valuePipeline) accept(docID uint32, value string) (out string, ok bool) {
	if _, skip := p.excluded[value]; skip {
		return "", false
	}
	if p.pattern != nil && !p.pattern.MatchString(value) {
		return "", false
	}
	if p.script != nil {
		p.script.SetNextDoc(docID)
		return p.script.Eval(value).Apply(value)
	}
	return value, true
}

// compilePattern anchors expr so it must match the entire value; facet
// patterns are written against whole-value semantics.
func compilePattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + expr + `)\z`)
}
