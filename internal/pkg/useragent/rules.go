package useragent

import "gopkg.in/yaml.v3"

// Deserialization targets for the Matomo YAML rule files (§3). Field order
// within each struct matches the upstream schema; fields absent from a given
// file default to their zero value.

type botEntry struct {
	Regex    string        `yaml:"regex"`
	Name     string        `yaml:"name"`
	Category string        `yaml:"category"`
	URL      string        `yaml:"url"`
	Producer *botProducer  `yaml:"producer"`
}

type botProducer struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type osEntry struct {
	Regex   string `yaml:"regex"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// clientEntry covers all six client YAML schemas (browsers, feed readers,
// mobile apps, libraries, media players, PIM) — they share one flat shape.
type clientEntry struct {
	Regex   string     `yaml:"regex"`
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Engine  *engineRef `yaml:"engine"`
}

type engineRef struct {
	Default  string    `yaml:"default"`
	Versions yaml.Node `yaml:"versions"`
}

// orderedVersions decodes engine.versions preserving YAML map insertion order
// (threshold → engine name), required for §4.7's "last qualifying entry wins".
func (e *engineRef) orderedVersions() ([]versionThreshold, error) {
	if e == nil || e.Versions.Kind != yaml.MappingNode {
		return nil, nil
	}
	out := make([]versionThreshold, 0, len(e.Versions.Content)/2)
	for i := 0; i+1 < len(e.Versions.Content); i += 2 {
		var threshold, name string
		if err := e.Versions.Content[i].Decode(&threshold); err != nil {
			return nil, err
		}
		if err := e.Versions.Content[i+1].Decode(&name); err != nil {
			return nil, err
		}
		out = append(out, versionThreshold{threshold: threshold, name: name})
	}
	return out, nil
}

type versionThreshold struct {
	threshold string
	name      string
}

type engineEntry struct {
	Regex string `yaml:"regex"`
	Name  string `yaml:"name"`
}

// deviceBrandEntry is one value in a device/*.yml file's brand → entry map.
type deviceBrandEntry struct {
	Regex  string       `yaml:"regex"`
	Device string       `yaml:"device"`
	Model  string       `yaml:"model"`
	Models []modelEntry `yaml:"models"`
}

type modelEntry struct {
	Regex  string `yaml:"regex"`
	Model  string `yaml:"model"`
	Device string `yaml:"device"`
	Brand  string `yaml:"brand"`
}

// deviceBrandMap preserves YAML map insertion order — first-match-wins
// depends on it. yaml.v3 decodes a mapping into a yaml.Node's Content slice
// in document order; decodeDeviceBrandMap below walks that directly instead
// of going through a plain Go map (which would lose order).
type deviceBrandMap struct {
	names   []string
	entries []deviceBrandEntry
}

func decodeDeviceBrandMap(node *yaml.Node) (deviceBrandMap, error) {
	var out deviceBrandMap
	if node == nil || node.Kind == 0 {
		return out, nil
	}
	root := node
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		root = node.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return out, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var name string
		if err := root.Content[i].Decode(&name); err != nil {
			return out, err
		}
		var entry deviceBrandEntry
		if err := root.Content[i+1].Decode(&entry); err != nil {
			return out, err
		}
		out.names = append(out.names, name)
		out.entries = append(out.entries, entry)
	}
	return out, nil
}

// vendorFragmentMap is brand → ordered list of regex fragments
// (vendorfragments.yml), order-preserving for the same reason.
type vendorFragmentMap struct {
	brands   []string
	patterns [][]string
}

func decodeVendorFragmentMap(node *yaml.Node) (vendorFragmentMap, error) {
	var out vendorFragmentMap
	if node == nil || node.Kind == 0 {
		return out, nil
	}
	root := node
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		root = node.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return out, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var brand string
		if err := root.Content[i].Decode(&brand); err != nil {
			return out, err
		}
		var patterns []string
		if err := root.Content[i+1].Decode(&patterns); err != nil {
			return out, err
		}
		out.brands = append(out.brands, brand)
		out.patterns = append(out.patterns, patterns)
	}
	return out, nil
}

// hintMap is a simple package-id → name lookup (client/hints/*.yml); order
// does not matter since lookups are by exact key.
type hintMap map[string]string
