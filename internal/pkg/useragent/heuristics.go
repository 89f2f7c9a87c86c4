package useragent

import "go.elara.ws/pcre"

// heuristicRegexes holds every precompiled regex used by the H1-H21
// device-type heuristic ladder in Parse/ParseWithHints (§4.8). They are
// compiled once at Detector construction instead of per lookup.
type heuristicRegexes struct {
	vr               *pcre.Regexp
	chromeAndroid    *pcre.Regexp
	mobileElibom     *pcre.Regexp
	padAPad          *pcre.Regexp
	androidTablet    *pcre.Regexp
	operaTablet      *pcre.Regexp
	androidMobile    *pcre.Regexp
	touch            *pcre.Regexp
	puffinDesktop    *pcre.Regexp
	puffinSmartphone *pcre.Regexp
	puffinTablet     *pcre.Regexp
	operaTV          *pcre.Regexp
	androidTV        *pcre.Regexp
	smartTVTizen     *pcre.Regexp
	tvFragment       *pcre.Regexp
	desktopFragment  *pcre.Regexp
}

func compileHeuristicRegexes() (*heuristicRegexes, error) {
	mk := func(pattern string) (*pcre.Regexp, error) {
		re, err := pcre.Compile(fullPattern(pattern))
		if err != nil {
			return nil, &LoadError{Pattern: pattern, Err: err}
		}
		return re, nil
	}

	var h heuristicRegexes
	var err error
	fields := []struct {
		dst     **pcre.Regexp
		pattern string
	}{
		{&h.vr, `Android( [.0-9]+)?; Mobile VR;| VR `},
		{&h.chromeAndroid, `Chrome/[.0-9]*`},
		{&h.mobileElibom, `(?:Mobile|eliboM)`},
		{&h.padAPad, `Pad/APad`},
		{&h.androidTablet, `Android( [.0-9]+)?; Tablet;|Tablet(?! PC)|.*\-tablet$`},
		{&h.operaTablet, `Opera Tablet`},
		{&h.androidMobile, `Android( [.0-9]+)?; Mobile;|.*\-mobile$`},
		{&h.touch, `Touch`},
		{&h.puffinDesktop, `Puffin/(?:\d+[.\d]+)[LMW]D`},
		{&h.puffinSmartphone, `Puffin/(?:\d+[.\d]+)[AIFLW]P`},
		{&h.puffinTablet, `Puffin/(?:\d+[.\d]+)[AILW]T`},
		{&h.operaTV, `Opera TV Store| OMI/`},
		{&h.androidTV, `Andr0id|(?:Android(?: UHD)?|Google) TV|\(lite\) TV|BRAVIA|Firebolt| TV$`},
		{&h.smartTVTizen, `SmartTV|Tizen.+ TV .+$`},
		{&h.tvFragment, `\(TV;`},
		{&h.desktopFragment, `Desktop(?: (?:x(?:32|64)|WOW64))?;`},
	}
	for _, f := range fields {
		*f.dst, err = mk(f.pattern)
		if err != nil {
			return nil, err
		}
	}
	return &h, nil
}

// tvClientNames lists client names that imply a TV device outright (§4.8),
// regardless of any UA regex heuristic.
var tvClientNames = map[string]bool{
	"Kylo":                true,
	"Espial TV Browser":   true,
	"LUJO TV Browser":     true,
	"LogicUI TV Browser":  true,
	"Open TV Browser":     true,
	"Seraphic Sraf":       true,
	"Opera Devices":       true,
	"Crow Browser":        true,
	"Vewd Browser":        true,
	"TiviMate":            true,
	"Quick Search TV":     true,
	"QJY TV Browser":      true,
	"TV Bro":              true,
	"Redline":             true,
}
