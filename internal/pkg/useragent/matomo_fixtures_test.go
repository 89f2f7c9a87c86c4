//go:build matomo_fixtures

package useragent

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// fixtureCase mirrors one entry of Matomo's own device-detector test
// fixtures (Tests/fixtures/*.yml upstream). Run with -tags matomo_fixtures,
// UADETECT_RULES_DIR pointing at a checkout of the real rule set and
// UADETECT_FIXTURES_DIR pointing at the directory holding browser.yml, to
// exercise this detector against Matomo's own corpus.
type fixtureCase struct {
	UserAgent string `yaml:"user_agent"`
	Os        struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"os"`
	Client struct {
		Name string `yaml:"name"`
	} `yaml:"client"`
}

func loadFixtureCases(t *testing.T, filename string) []fixtureCase {
	t.Helper()
	dir := os.Getenv("UADETECT_FIXTURES_DIR")
	if dir == "" {
		t.Skip("UADETECT_FIXTURES_DIR not set; skipping Matomo fixture corpus test")
	}
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Skipf("could not read fixture %s: %v", filename, err)
	}
	var cases []fixtureCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parsing fixture %s: %v", filename, err)
	}
	return cases
}

func TestMatomoFixtureCorpus(t *testing.T) {
	rulesDir := os.Getenv("UADETECT_RULES_DIR")
	if rulesDir == "" {
		t.Skip("UADETECT_RULES_DIR not set; skipping Matomo fixture corpus test")
	}
	d, err := FromDir(rulesDir)
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}

	cases := loadFixtureCases(t, "browser.yml")
	passed, failed := 0, 0
	for _, c := range cases {
		det := d.Parse(c.UserAgent)
		if det.Os == nil || det.Os.Name != c.Os.Name {
			failed++
			continue
		}
		if det.Client == nil || det.Client.Name != c.Client.Name {
			failed++
			continue
		}
		passed++
	}
	t.Logf("Matomo fixture corpus: %d passed, %d failed", passed, failed)
}
