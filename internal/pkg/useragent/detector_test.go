package useragent

import "testing"

func loadTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := FromDir("testdata/rules")
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}
	return d
}

func TestParseBotShortCircuits(t *testing.T) {
	d := loadTestDetector(t)
	det := d.Parse("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")

	if !det.IsBot() {
		t.Fatalf("expected bot detection")
	}
	if det.Bot.Name != "Googlebot" {
		t.Errorf("bot name = %q, want Googlebot", det.Bot.Name)
	}
	if det.Os != nil || det.Client != nil || det.Device != nil {
		t.Errorf("bot detection must leave os/client/device nil, got os=%v client=%v device=%v", det.Os, det.Client, det.Device)
	}
}

func TestParseDesktopChrome(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	det := d.Parse(ua)

	if det.Os == nil || det.Os.Name != "Windows" || det.Os.Version != "10" {
		t.Fatalf("os = %+v, want Windows 10", det.Os)
	}
	if det.Client == nil || det.Client.Name != "Chrome" || det.Client.Version != "91.0.4472.124" {
		t.Fatalf("client = %+v, want Chrome 91.0.4472.124", det.Client)
	}
	if det.Client.Engine != "WebKit" {
		t.Errorf("engine = %q, want WebKit", det.Client.Engine)
	}
	if det.Device == nil || det.Device.Kind == nil || *det.Device.Kind != Desktop {
		t.Fatalf("device = %+v, want desktop (inferred from Windows)", det.Device)
	}
}

func TestParseIPhoneSafari(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	det := d.Parse(ua)

	if det.Os == nil || det.Os.Name != "iOS" {
		t.Fatalf("os = %+v, want iOS", det.Os)
	}
	if det.Client == nil || det.Client.Name != "Mobile Safari" {
		t.Fatalf("client = %+v, want Mobile Safari", det.Client)
	}
	if det.Device == nil || det.Device.Brand != "Apple" || det.Device.Model != "iPhone" {
		t.Fatalf("device = %+v, want Apple iPhone", det.Device)
	}
	if det.Device.Kind == nil || *det.Device.Kind != Smartphone {
		t.Errorf("device kind = %v, want smartphone", det.Device.Kind)
	}
}

func TestParseIPadModelOverridesDeviceType(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (iPad; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	det := d.Parse(ua)

	if det.Device == nil || det.Device.Model != "iPad" {
		t.Fatalf("device = %+v, want model iPad", det.Device)
	}
	if det.Device.Kind == nil || *det.Device.Kind != Tablet {
		t.Errorf("device kind = %v, want tablet (model-level override)", det.Device.Kind)
	}
}

func TestParseAndroidTabletHeuristic(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (Linux; Android 4.4; Tablet; rv:40.0) Gecko/40.0 Firefox/40.0"
	det := d.Parse(ua)

	if det.Os == nil || det.Os.Name != "Android" || det.Os.Version != "4.4" {
		t.Fatalf("os = %+v, want Android 4.4", det.Os)
	}
	if det.Client == nil || det.Client.Name != "Firefox" || det.Client.Engine != "Gecko" {
		t.Fatalf("client = %+v, want Firefox/Gecko", det.Client)
	}
	if det.Device == nil || det.Device.Kind == nil || *det.Device.Kind != Tablet {
		t.Fatalf("device = %+v, want tablet inferred from 'Android 4.4; Tablet;' fragment", det.Device)
	}
	if det.Device.Brand != "" {
		t.Errorf("brand = %q, want empty (heuristic match has no brand)", det.Device.Brand)
	}
}

func TestParseVendorFragmentFallback(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (Linux; Android 9; Samsung SM-G960F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0 Mobile Safari/537.36"
	det := d.Parse(ua)

	if det.Device == nil || det.Device.Brand != "Samsung" {
		t.Fatalf("device = %+v, want brand Samsung via vendor fragment", det.Device)
	}
}

func TestParseWithHintsMobileAppOverride(t *testing.T) {
	d := loadTestDetector(t)
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0 Safari/537.36"
	det := d.ParseWithHints(ua, &ClientHints{XRequestedWith: "com.example.app"})

	if det.Client == nil || det.Client.Kind != ClientMobileApp || det.Client.Name != "Example App" {
		t.Fatalf("client = %+v, want mobile app Example App", det.Client)
	}
}

func TestParseUnknownUAHasNoFacets(t *testing.T) {
	d := loadTestDetector(t)
	det := d.Parse("some-internal-tool/1.0")

	if det.IsBot() || det.Os != nil || det.Client != nil || det.Device != nil {
		t.Errorf("expected an entirely empty Detection for an unrecognized UA, got %+v", det)
	}
}
