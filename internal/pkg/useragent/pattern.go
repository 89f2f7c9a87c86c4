package useragent

import "strconv"

// matomoBoundaryPrefix is prepended to every rule regex (§4.1): start of
// string, a non-alphanumeric boundary, or one of the two special-cased
// vendor prefixes Matomo's rule set relies on.
const matomoBoundaryPrefix = `(?:^|[^A-Z0-9_\-]|[^A-Z0-9\-]_|sprd\-|MZ\-)`

// fullPattern wraps pattern with the boundary prefix and case-insensitive
// flag, producing the canonical compiled form described in §4.1.
func fullPattern(pattern string) string {
	return "(?i)" + matomoBoundaryPrefix + "(?:" + pattern + ")"
}

// fullVendorFragmentPattern additionally appends the trailing
// `[^a-z0-9]+` vendor-fragment terminator (§3) before wrapping.
func fullVendorFragmentPattern(pattern string) string {
	return fullPattern(pattern + `[^a-z0-9]+`)
}

// versionLess reports whether a < b, comparing dot-separated numeric
// components left to right; non-numeric or missing components compare as 0
// (§4.9, §7's "malformed version string compares as 0").
func versionLess(a, b string) bool {
	as := splitVersion(a)
	bs := splitVersion(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av < bv {
			return true
		}
		if av > bv {
			return false
		}
	}
	return false
}

// versionGE is the negation of versionLess, matching §4.9's `≥` definition.
func versionGE(a, b string) bool {
	return !versionLess(a, b)
}

func splitVersion(v string) []int {
	if v == "" {
		return nil
	}
	parts := make([]int, 0, 4)
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == '.' {
			n, err := strconv.Atoi(v[start:i])
			if err != nil {
				n = 0
			}
			parts = append(parts, n)
			start = i + 1
		}
	}
	return parts
}
