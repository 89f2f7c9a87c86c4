package useragent

import (
	"github.com/cloudflare/ahocorasick"
	"go.elara.ws/pcre"
)

// deviceBrandData is the per-brand payload carried by a compiled brand gate
// (§4.4): the brand name itself, plus the model template and device type to
// fall back on if the brand matches but none of its models do.
type deviceBrandData struct {
	brand         string
	modelTemplate string
	deviceType    DeviceType
	hasDeviceType bool
}

// deviceModelData is the per-model payload carried by a compiled model rule
// within a brand. Brand and DeviceType may override the owning brand's
// values (§3's per-model overrides).
type deviceModelData struct {
	modelTemplate string
	brand         string
	deviceType    DeviceType
	hasDeviceType bool
}

type modelRule struct {
	re   *pcre.Regexp
	data deviceModelData
}

type brandEntry struct {
	re       *pcre.Regexp
	literals []string
	data     deviceBrandData
	models   []modelRule
}

// deviceBrandParser is the §4.4 two-level matcher: an ordered list of brand
// gates, each guarding an ordered list of model rules tried only once its
// brand gate has matched.
type deviceBrandParser struct {
	brands   []brandEntry
	matcher  *ahocorasick.Matcher
	indexed  [][]int // per matcher dictionary entry, every brands[] index that literal came from
	fallback []int
}

// brandRegexSources returns the raw (unwrapped) brand gate patterns in
// table order, for use by buildOverallPrefilter (§4.5).
func brandRegexSources(m deviceBrandMap) []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Regex != "" {
			out = append(out, e.Regex)
		}
	}
	return out
}

// buildDeviceBrandParser compiles a device/*.yml brand map into a
// deviceBrandParser, preserving the map's YAML document order. Entries with
// no brand regex are skipped — they cannot gate anything. defaultType fills
// in a brand's device type when its YAML entry omits one (§4.4).
func buildDeviceBrandParser(m deviceBrandMap, defaultType DeviceType) (*deviceBrandParser, error) {
	p := &deviceBrandParser{}
	// See buildFlatParser: ahocorasick dedups identical dictionary
	// entries, so literals shared by two brand gates must be tracked back to
	// every brand index that produced them, not just the last one.
	litToBrands := make(map[string][]int)
	var uniqueLiterals []string
	for i, entry := range m.entries {
		if entry.Regex == "" {
			continue
		}
		brandName := m.names[i]
		re, err := pcre.Compile(fullPattern(entry.Regex))
		if err != nil {
			return nil, &LoadError{Pattern: entry.Regex, Err: err}
		}
		dt, hasDT := deviceTypeFromString(entry.Device)
		if !hasDT {
			dt, hasDT = defaultType, true
		}
		data := deviceBrandData{brand: brandName, modelTemplate: entry.Model, deviceType: dt, hasDeviceType: hasDT}

		models := make([]modelRule, 0, len(entry.Models))
		for _, me := range entry.Models {
			mre, err := pcre.Compile(fullPattern(me.Regex))
			if err != nil {
				return nil, &LoadError{Pattern: me.Regex, Err: err}
			}
			mdt, mHasDT := deviceTypeFromString(me.Device)
			mBrand := me.Brand
			models = append(models, modelRule{re: mre, data: deviceModelData{
				modelTemplate: me.Model,
				brand:         mBrand,
				deviceType:    mdt,
				hasDeviceType: mHasDT,
			}})
		}

		lits := extractLiterals(entry.Regex, minLiteralLen)
		idx := len(p.brands)
		p.brands = append(p.brands, brandEntry{re: re, literals: lits, data: data, models: models})
		if lits == nil {
			p.fallback = append(p.fallback, idx)
			continue
		}
		for _, lit := range lits {
			if _, seen := litToBrands[lit]; !seen {
				uniqueLiterals = append(uniqueLiterals, lit)
			}
			litToBrands[lit] = append(litToBrands[lit], idx)
		}
	}
	if len(uniqueLiterals) > 0 {
		bytePatterns := make([][]byte, len(uniqueLiterals))
		p.indexed = make([][]int, len(uniqueLiterals))
		for i, lit := range uniqueLiterals {
			bytePatterns[i] = []byte(lit)
			p.indexed[i] = litToBrands[lit]
		}
		p.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
	return p, nil
}

// brandMatch is the outcome of a successful two-level lookup (§4.4): the
// matched brand, its captures, and — if one of its model rules also
// matched — that model's data and captures.
type brandMatch struct {
	brand         deviceBrandData
	brandCaptures captures
	model         *deviceModelData
	modelCaptures captures
}

// matchFirst finds the first brand (in table order) whose gate matches ua,
// then tries that brand's model rules in order for a refinement. A brand
// gate match with no model match still returns ok=true: §4.4 treats
// brand-only detection as valid.
func (p *deviceBrandParser) matchFirst(ua string) (brandMatch, bool) {
	candidates := make(map[int]bool, len(p.fallback)+8)
	for _, idx := range p.fallback {
		candidates[idx] = true
	}
	if p.matcher != nil {
		lowered := []byte(toLowerASCII(ua))
		for _, patIdx := range p.matcher.Match(lowered) {
			for _, brandIdx := range p.indexed[patIdx] {
				candidates[brandIdx] = true
			}
		}
	}

	for i := 0; i < len(p.brands); i++ {
		if !candidates[i] {
			continue
		}
		b := &p.brands[i]
		groups := b.re.FindStringSubmatch(ua)
		if groups == nil {
			continue
		}
		match := brandMatch{brand: b.data, brandCaptures: captures{groups: groups}}
		for _, m := range b.models {
			mg := m.re.FindStringSubmatch(ua)
			if mg == nil {
				continue
			}
			data := m.data
			match.model = &data
			match.modelCaptures = captures{groups: mg}
			break
		}
		return match, true
	}
	return brandMatch{}, false
}
