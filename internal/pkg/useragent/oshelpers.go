package useragent

// isAndroidOS and isDesktopOS group OS names into the two families the H1-H21
// heuristic ladder cares about (§4.8): whether an OS is an Android
// derivative, and whether it is normally run on non-mobile hardware.
//
// The source this spec was distilled from groups OS names this way too, but
// its exact family tables were not available for this implementation — the
// lists below are a judgment call, grounded in Matomo's own published
// OS-family groupings (Os.php's OS_FAMILIES), not in the distilled source.
// See DESIGN.md.

var androidFamily = map[string]bool{
	"Android":               true,
	"CyanogenMod":           true,
	"Fire OS":               true,
	"Remix OS":              true,
	"Resurrection Remix OS": true,
	"MocorDroid":            true,
	"Funtouch":              true,
}

func isAndroidOS(name string) bool {
	return androidFamily[name]
}

var desktopFamily = map[string]bool{
	"Windows":     true,
	"Windows RT":  true,
	"Mac":         true,
	"GNU/Linux":   true,
	"Chrome OS":   true,
	"Chromium OS": true,
	"BeOS":        true,
	"Solaris":     true,
	"AmigaOS":     true,
	"Haiku OS":    true,
	"Unix":        true,
	"IBM":         true,
	"FreeBSD":     true,
	"OpenBSD":     true,
	"NetBSD":      true,
}

func isDesktopOS(name string) bool {
	return desktopFamily[name]
}
