package useragent

// engineData is the payload for a compiled browser_engine.yml rule: just the
// engine's canonical name (e.g. "Blink", "Gecko", "WebKit").
type engineData struct {
	name string
}

// resolveEngine implements §4.7: start from the client's default engine,
// apply the last qualifying version-threshold override, then cross-check the
// result against the engine-regex table to recover an engine version.
func (d *Detector) resolveEngine(ua string, client clientEntry, browserVersion string) (name, version string) {
	if client.Engine != nil {
		engineName := client.Engine.Default

		if browserVersion != "" {
			thresholds, err := client.Engine.orderedVersions()
			if err == nil {
				for _, t := range thresholds {
					if versionGE(browserVersion, t.threshold) {
						engineName = t.name
					}
				}
			}
		}

		if engineName != "" {
			if data, caps, ok := d.engineParser.matchFirst(ua); ok && equalFoldASCII(data.name, engineName) {
				return data.name, caps.Group(1)
			}
			return engineName, ""
		}
	}

	if data, caps, ok := d.engineParser.matchFirst(ua); ok {
		return data.name, caps.Group(1)
	}
	return "", ""
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
