package useragent

import "strings"

// substitute expands `$0`..`$9` in template with capture groups from caps,
// then trims trailing ASCII whitespace and `.` (§4.6). Unknown or
// non-participating groups expand to empty — substitution never fails
// (§3's "Template expansion is total").
func substitute(template string, caps captureGetter) string {
	if !strings.Contains(template, "$") {
		return trimTrailing(template)
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c == '$' && i+1 < len(template) && template[i+1] >= '0' && template[i+1] <= '9' {
			idx := int(template[i+1] - '0')
			b.WriteString(caps.Group(idx))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return trimTrailing(b.String())
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\n\r\f\v.")
}

// captureGetter abstracts over the capture-group accessor of whichever regex
// engine produced a match, so substitute and capture-group helpers don't
// need to know which one matched (see matcher.go).
type captureGetter interface {
	// Group returns capture group i's text, or "" if the group did not
	// participate in the match (or does not exist).
	Group(i int) string
}
