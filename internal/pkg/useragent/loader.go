package useragent

import (
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// vendorFragmentData is the payload for a compiled vendorfragments.yml rule.
type vendorFragmentData struct {
	brand string
}

// deviceCategory is one entry of the fixed, ordered device-detection table
// (§4.5, §4.8): a device-type default, the pre-filter that gates it, whether
// a prefilter-only match still claims the type, and its brand/model parser.
type deviceCategory struct {
	defaultType DeviceType
	prefilter   devicePrefilter
	claimsType  bool
	brandParser *deviceBrandParser
}

// Detector holds every compiled rule table needed to classify User-Agent
// strings. Build one with FromDir and reuse it — construction is the
// expensive part; Parse and ParseWithHints do no further compilation.
type Detector struct {
	botParser           *flatParser[botEntry]
	osParser            *flatParser[osEntry]
	browserParser       *flatParser[clientEntry]
	feedReaderParser    *flatParser[clientEntry]
	mobileAppParser     *flatParser[clientEntry]
	libraryParser       *flatParser[clientEntry]
	mediaPlayerParser   *flatParser[clientEntry]
	pimParser           *flatParser[clientEntry]
	engineParser        *flatParser[engineData]
	vendorFragmentParser *flatParser[vendorFragmentData]
	deviceParsers       []deviceCategory
	heuristics          *heuristicRegexes
	appHints            hintMap
	browserHints        hintMap
}

// deviceSpec describes one device/*.yml table's place in the fixed pipeline
// order (§4.5). Order matters: it is the order deviceParsers are tried in
// detectDevice.
type deviceSpec struct {
	file        string
	defaultType DeviceType
	specific    string // non-empty => prefilterSpecific pattern; else Overall/None per overall
	overall     bool
	claimsType  bool
}

var deviceSpecs = []deviceSpec{
	{file: "shell_tv.yml", defaultType: Tv, specific: `(?i)[a-z]+[ _]Shell[ _]\w{6}|tclwebkit`, claimsType: true},
	{file: "televisions.yml", defaultType: Tv, specific: `(?i)(?:HbbTV|SmartTvA)/`, claimsType: true},
	{file: "consoles.yml", defaultType: Console, overall: true},
	{file: "car_browsers.yml", defaultType: CarBrowser, overall: true},
	{file: "cameras.yml", defaultType: Camera, overall: true},
	{file: "portable_media_player.yml", defaultType: PortableMediaPlayer, overall: true},
	{file: "notebooks.yml", defaultType: Notebook, specific: `FBMD/`},
	{file: "mobiles.yml", defaultType: Smartphone},
}

// FromDir loads every Matomo rule file under dir (the "regexes/" layout
// described in §6: bots.yml, oss.yml, vendorfragments.yml, client/*.yml,
// client/hints/*.yml, device/*.yml) and compiles a ready-to-use Detector.
//
// Construction fans out across an errgroup, mirroring the concurrent
// rayon::join build used by the source this rule set was distilled from.
func FromDir(dir string) (*Detector, error) {
	clientDir := filepath.Join(dir, "client")
	deviceDir := filepath.Join(dir, "device")

	var (
		botParser                                                                      *flatParser[botEntry]
		osParser                                                                        *flatParser[osEntry]
		browserParser, feedReaderParser, mobileAppParser, libraryParser, mediaPlayerParser, pimParser *flatParser[clientEntry]
		engineParser         *flatParser[engineData]
		vendorFragmentParser *flatParser[vendorFragmentData]
		deviceParsers        []deviceCategory
		appHints, browserHints hintMap
		heuristics           *heuristicRegexes
	)

	var g errgroup.Group

	g.Go(func() (err error) {
		bots, err := loadYAMLSlice[botEntry](filepath.Join(dir, "bots.yml"))
		if err != nil {
			return err
		}
		patterns, data := splitBotEntries(bots)
		botParser, err = buildFlatParser(patterns, data, fullPattern)
		return err
	})

	g.Go(func() (err error) {
		oss, err := loadYAMLSlice[osEntry](filepath.Join(dir, "oss.yml"))
		if err != nil {
			return err
		}
		patterns, data := splitOsEntries(oss)
		osParser, err = buildFlatParser(patterns, data, fullPattern)
		return err
	})

	clientFiles := []struct {
		file string
		dst  **flatParser[clientEntry]
	}{
		{"browsers.yml", &browserParser},
		{"feed_readers.yml", &feedReaderParser},
		{"mobile_apps.yml", &mobileAppParser},
		{"libraries.yml", &libraryParser},
		{"mediaplayers.yml", &mediaPlayerParser},
		{"pim.yml", &pimParser},
	}
	for _, cf := range clientFiles {
		cf := cf
		g.Go(func() (err error) {
			entries, err := loadYAMLSlice[clientEntry](filepath.Join(clientDir, cf.file))
			if err != nil {
				return err
			}
			patterns, data := splitClientEntries(entries)
			*cf.dst, err = buildFlatParser(patterns, data, fullPattern)
			return err
		})
	}

	g.Go(func() (err error) {
		engines, err := loadYAMLSlice[engineEntry](filepath.Join(clientDir, "browser_engine.yml"))
		if err != nil {
			return err
		}
		patterns := make([]string, len(engines))
		data := make([]engineData, len(engines))
		for i, e := range engines {
			patterns[i] = e.Regex
			data[i] = engineData{name: e.Name}
		}
		engineParser, err = buildFlatParser(patterns, data, fullPattern)
		return err
	})

	g.Go(func() (err error) {
		vf, err := loadVendorFragmentMap(filepath.Join(dir, "vendorfragments.yml"))
		if err != nil {
			return err
		}
		var patterns []string
		var data []vendorFragmentData
		for i, brand := range vf.brands {
			for _, pat := range vf.patterns[i] {
				patterns = append(patterns, pat)
				data = append(data, vendorFragmentData{brand: brand})
			}
		}
		vendorFragmentParser, err = buildFlatParser(patterns, data, fullVendorFragmentPattern)
		return err
	})

	g.Go(func() (err error) {
		var err1, err2 error
		appHints, err1 = loadHintMap(filepath.Join(clientDir, "hints", "apps.yml"))
		browserHints, err2 = loadHintMap(filepath.Join(clientDir, "hints", "browsers.yml"))
		if err1 != nil {
			return err1
		}
		return err2
	})

	g.Go(func() (err error) {
		heuristics, err = compileHeuristicRegexes()
		return err
	})

	g.Go(func() error {
		built, err := buildDeviceParsers(deviceDir)
		if err != nil {
			return err
		}
		deviceParsers = built
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Detector{
		botParser:            botParser,
		osParser:             osParser,
		browserParser:        browserParser,
		feedReaderParser:     feedReaderParser,
		mobileAppParser:      mobileAppParser,
		libraryParser:        libraryParser,
		mediaPlayerParser:    mediaPlayerParser,
		pimParser:            pimParser,
		engineParser:         engineParser,
		vendorFragmentParser: vendorFragmentParser,
		deviceParsers:        deviceParsers,
		heuristics:           heuristics,
		appHints:             appHints,
		browserHints:         browserHints,
	}, nil
}

func buildDeviceParsers(deviceDir string) ([]deviceCategory, error) {
	out := make([]deviceCategory, len(deviceSpecs))
	var g errgroup.Group
	for i, spec := range deviceSpecs {
		i, spec := i, spec
		g.Go(func() error {
			m, err := loadDeviceBrandMap(filepath.Join(deviceDir, spec.file))
			if err != nil {
				return err
			}
			brandParser, err := buildDeviceBrandParser(m, spec.defaultType)
			if err != nil {
				return err
			}

			var prefilter devicePrefilter
			switch {
			case spec.specific != "":
				prefilter, err = specificPrefilter(spec.specific)
			case spec.overall:
				prefilter, err = buildOverallPrefilter(brandRegexSources(m))
			default:
				prefilter = noPrefilter()
			}
			if err != nil {
				return err
			}

			out[i] = deviceCategory{
				defaultType: spec.defaultType,
				prefilter:   prefilter,
				claimsType:  spec.claimsType,
				brandParser: brandParser,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func splitBotEntries(bots []botEntry) ([]string, []botEntry) {
	patterns := make([]string, len(bots))
	for i, b := range bots {
		patterns[i] = b.Regex
	}
	return patterns, bots
}

func splitOsEntries(oss []osEntry) ([]string, []osEntry) {
	patterns := make([]string, len(oss))
	for i, o := range oss {
		patterns[i] = o.Regex
	}
	return patterns, oss
}

func splitClientEntries(entries []clientEntry) ([]string, []clientEntry) {
	patterns := make([]string, len(entries))
	for i, e := range entries {
		patterns[i] = e.Regex
	}
	return patterns, entries
}

func loadYAMLSlice[T any](path string) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	var out []T
	if err := yaml.Unmarshal(content, &out); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return out, nil
}

func loadDeviceBrandMap(path string) (deviceBrandMap, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return deviceBrandMap{}, &LoadError{File: path, Err: err}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return deviceBrandMap{}, &LoadError{File: path, Err: err}
	}
	m, err := decodeDeviceBrandMap(&node)
	if err != nil {
		return deviceBrandMap{}, &LoadError{File: path, Err: err}
	}
	return m, nil
}

func loadVendorFragmentMap(path string) (vendorFragmentMap, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return vendorFragmentMap{}, &LoadError{File: path, Err: err}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return vendorFragmentMap{}, &LoadError{File: path, Err: err}
	}
	m, err := decodeVendorFragmentMap(&node)
	if err != nil {
		return vendorFragmentMap{}, &LoadError{File: path, Err: err}
	}
	return m, nil
}

func loadHintMap(path string) (hintMap, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	var out hintMap
	if err := yaml.Unmarshal(content, &out); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return out, nil
}
