package useragent

import "strings"

// minLiteralLen is the shortest prefix literal worth indexing (§4.2).
const minLiteralLen = 3

// extractLiterals pulls lowercased prefix-literal candidates out of a regex
// source pattern for use as Aho-Corasick pre-filter keys (§4.2).
//
// There is no ecosystem library in this codebase's example pack that parses
// a PCRE pattern into a literal-prefix set the way Rust's
// regex_syntax::hir::literal::Extractor does — this is a hand-rolled,
// deliberately conservative scanner instead (see DESIGN.md). It only ever
// claims a literal that is guaranteed to appear verbatim in any string the
// pattern matches: a literal run of plain characters at the start of the
// whole pattern, or at the start of every top-level `|` alternative. The
// moment it cannot prove that — an unescaped metacharacter, a branch with no
// usable literal, anything it doesn't fully understand — it gives up and
// returns nil, which the caller treats as "always try this rule" (§4.2's
// soundness rule: losing literals degrades speed, never correctness).
func extractLiterals(pattern string, minLen int) []string {
	branches := splitTopLevelAlternatives(pattern)
	if len(branches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(branches))
	literals := make([]string, 0, len(branches))
	for _, branch := range branches {
		lit := literalPrefix(branch)
		if len(lit) < minLen {
			// One branch without a usable literal makes the whole
			// alternation un-indexable: that branch could match without
			// ever touching the literal index.
			return nil
		}
		lit = toLowerASCII(lit)
		if !seen[lit] {
			seen[lit] = true
			literals = append(literals, lit)
		}
	}
	return literals
}

// literalPrefix returns the longest run of unescaped, non-metacharacter
// bytes at the very start of branch, or "" if the branch starts with
// something that isn't provably literal (a group, a class, an anchor, an
// escape, a quantifier target).
func literalPrefix(branch string) string {
	var b strings.Builder
	for i := 0; i < len(branch); i++ {
		c := branch[i]
		if isRegexMeta(c) {
			break
		}
		// A quantifier (*, +, ?, {) applies to the previous character, so
		// that character is not unconditionally present — drop it from the
		// literal we already collected.
		if i+1 < len(branch) && isQuantifier(branch[i+1]) {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isRegexMeta(c byte) bool {
	switch c {
	case '.', '^', '$', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '\\':
		return true
	default:
		return false
	}
}

func isQuantifier(c byte) bool {
	switch c {
	case '*', '+', '?', '{':
		return true
	default:
		return false
	}
}

// splitTopLevelAlternatives splits pattern on `|` that occurs outside any
// parenthesis or bracket-class nesting. Returns nil if parens/brackets are
// unbalanced (malformed or exotic enough that literal extraction should not
// be trusted).
func splitTopLevelAlternatives(pattern string) []string {
	var branches []string
	depthParen := 0
	inClass := false
	start := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // skip escaped character
		case '[':
			if !inClass {
				inClass = true
			}
		case ']':
			inClass = false
		case '(':
			if !inClass {
				depthParen++
			}
		case ')':
			if !inClass {
				depthParen--
				if depthParen < 0 {
					return nil
				}
			}
		case '|':
			if !inClass && depthParen == 0 {
				branches = append(branches, pattern[start:i])
				start = i + 1
			}
		}
	}
	if depthParen != 0 || inClass {
		return nil
	}
	branches = append(branches, pattern[start:])
	return branches
}
