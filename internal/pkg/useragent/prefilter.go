package useragent

import (
	"strings"

	"go.elara.ws/pcre"
)

// prefilterKind selects how a device category's table is gated before its
// brand parser is even consulted (§4.5): a cheap, category-specific check
// that lets the pipeline skip categories that plainly cannot apply.
type prefilterKind int

const (
	// prefilterNone always runs the category's brand parser.
	prefilterNone prefilterKind = iota
	// prefilterSpecific runs a hardcoded marker regex unrelated to any
	// brand gate (e.g. the HbbTV/SmartTvA markers for televisions).
	prefilterSpecific
	// prefilterOverall runs a single regex formed by OR-ing every brand
	// gate in the category's table, so a miss there guarantees no brand
	// in the table could match either.
	prefilterOverall
)

// devicePrefilter is one compiled pre-filter instance for a device category.
type devicePrefilter struct {
	kind  prefilterKind
	re    *pcre.Regexp // nil when kind == prefilterNone
	empty bool         // true when kind == prefilterOverall and the table had no brand regexes at all
}

func (f devicePrefilter) matches(ua string) bool {
	switch f.kind {
	case prefilterNone:
		return true
	case prefilterOverall:
		if f.empty {
			return false
		}
		return f.re.MatchString(ua)
	case prefilterSpecific:
		return f.re.MatchString(ua)
	default:
		return false
	}
}

func noPrefilter() devicePrefilter { return devicePrefilter{kind: prefilterNone} }

// specificPrefilter compiles pattern as-is: unlike ordinary rule patterns,
// a "specific" marker regex is a standalone literal check (HbbTV/, FBMD/,
// ...) and is not wrapped in the Matomo boundary prefix.
func specificPrefilter(pattern string) (devicePrefilter, error) {
	re, err := pcre.Compile(pattern)
	if err != nil {
		return devicePrefilter{}, &LoadError{Pattern: pattern, Err: err}
	}
	return devicePrefilter{kind: prefilterSpecific, re: re}, nil
}

// buildOverallPrefilter ORs every brand regex in brandRegexes into one
// pattern (§4.5). An empty brandRegexes means the category's table is empty
// and can never match anything.
func buildOverallPrefilter(brandRegexes []string) (devicePrefilter, error) {
	if len(brandRegexes) == 0 {
		return devicePrefilter{kind: prefilterOverall, empty: true}, nil
	}
	joined := strings.Join(brandRegexes, "|")
	re, err := pcre.Compile(fullPattern(joined))
	if err != nil {
		return devicePrefilter{}, &LoadError{Pattern: joined, Err: err}
	}
	return devicePrefilter{kind: prefilterOverall, re: re}, nil
}
