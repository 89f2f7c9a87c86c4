package useragent

import (
	"fmt"

	"github.com/cloudflare/ahocorasick"
	"go.elara.ws/pcre"
)

// captures wraps the capture groups produced by a pcre.Regexp match so it
// can be handed to substitute (§4.6) through the captureGetter interface.
type captures struct {
	groups []string
}

func (c captures) Group(i int) string {
	if i < 0 || i >= len(c.groups) {
		return ""
	}
	return c.groups[i]
}

// compiledRule is one flat-list rule (bot, OS, client, engine, or vendor
// fragment) after compilation: its pcre.Regexp and the rule-specific data
// payload the caller cares about when it matches.
type compiledRule[T any] struct {
	re       *pcre.Regexp
	literals []string
	data     T
}

// flatParser is the §4.3 flat-list matcher: an ordered rule table backed by
// an Aho-Corasick literal pre-filter over rules whose pattern yielded a
// provably-safe literal set, plus a fallback list of rules that must always
// be tried because no such literal could be extracted.
//
// The pre-filter is a pure speed optimization — it narrows which rules get
// their pcre.Regexp evaluated, never which rule wins. matchFirst always
// walks candidates in original rule order and returns the first real regex
// match, identically to a naive linear scan.
type flatParser[T any] struct {
	rules    []compiledRule[T]
	matcher  *ahocorasick.Matcher
	indexed  [][]int // per matcher dictionary entry, every rules[] index that literal came from
	fallback []int   // rules[] indices with no usable literal: always candidates
}

// buildFlatParser compiles pattern/data pairs into a flatParser. pattern is
// the raw (unwrapped) regex source from the YAML rule; wrap is applied to
// produce the final compiled form (fullPattern or fullVendorFragmentPattern).
func buildFlatParser[T any](patterns []string, data []T, wrap func(string) string) (*flatParser[T], error) {
	if len(patterns) != len(data) {
		return nil, fmt.Errorf("useragent: mismatched pattern/data counts (%d vs %d)", len(patterns), len(data))
	}
	p := &flatParser[T]{rules: make([]compiledRule[T], len(patterns))}

	// cloudflare/ahocorasick collapses duplicate dictionary entries to a
	// single trie terminal, so feeding it the same literal twice silently
	// drops all but the last rule that produced it. Dedup literals here and
	// keep the full list of rule indices each unique literal came from.
	litToRules := make(map[string][]int)
	var uniqueLiterals []string
	for i, raw := range patterns {
		re, err := pcre.Compile(wrap(raw))
		if err != nil {
			return nil, &LoadError{Pattern: raw, Err: err}
		}
		lits := extractLiterals(raw, minLiteralLen)
		p.rules[i] = compiledRule[T]{re: re, literals: lits, data: data[i]}
		if lits == nil {
			p.fallback = append(p.fallback, i)
			continue
		}
		for _, lit := range lits {
			if _, seen := litToRules[lit]; !seen {
				uniqueLiterals = append(uniqueLiterals, lit)
			}
			litToRules[lit] = append(litToRules[lit], i)
		}
	}
	if len(uniqueLiterals) > 0 {
		bytePatterns := make([][]byte, len(uniqueLiterals))
		p.indexed = make([][]int, len(uniqueLiterals))
		for i, lit := range uniqueLiterals {
			bytePatterns[i] = []byte(lit)
			p.indexed[i] = litToRules[lit]
		}
		p.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
	return p, nil
}

// matchFirst returns the data and captures of the first rule (in original
// rule order) whose pattern matches ua, or ok=false if none do.
func (p *flatParser[T]) matchFirst(ua string) (T, captures, bool) {
	var zero T
	candidates := p.candidateSet(ua)
	// Walk candidate indices in ascending rule order so first-match-wins
	// semantics match a naive linear scan exactly (§4.3 invariant).
	for i := 0; i < len(p.rules); i++ {
		if !candidates[i] {
			continue
		}
		groups := p.rules[i].re.FindStringSubmatch(ua)
		if groups == nil {
			continue
		}
		return p.rules[i].data, captures{groups: groups}, true
	}
	return zero, captures{}, false
}

// candidateSet computes the set of rule indices worth evaluating against ua:
// every fallback rule, plus every literal-indexed rule whose literal the
// Aho-Corasick matcher actually found in ua.
func (p *flatParser[T]) candidateSet(ua string) map[int]bool {
	candidates := make(map[int]bool, len(p.fallback)+8)
	for _, idx := range p.fallback {
		candidates[idx] = true
	}
	if p.matcher != nil {
		lowered := []byte(toLowerASCII(ua))
		for _, patIdx := range p.matcher.Match(lowered) {
			for _, ruleIdx := range p.indexed[patIdx] {
				candidates[ruleIdx] = true
			}
		}
	}
	return candidates
}

func toLowerASCII(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
