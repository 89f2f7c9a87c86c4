package useragent

import "strings"

// Parse classifies ua with no client hints. Equivalent to
// ParseWithHints(ua, nil).
func (d *Detector) Parse(ua string) Detection {
	return d.ParseWithHints(ua, nil)
}

// ParseWithHints runs the full detection pipeline described in §4.8: bot
// short-circuit, OS, client, client-hint override, device brand/model,
// vendor-fragment fallback, Apple normalization, the H1-H21 heuristic
// ladder, and finally the client-hint model/mobile fill-ins.
func (d *Detector) ParseWithHints(ua string, hints *ClientHints) Detection {
	// 1. Bot check short-circuits everything else (invariant 1).
	if data, caps, ok := d.botParser.matchFirst(ua); ok {
		bot := &Bot{
			Name:     substitute(data.Name, caps),
			Category: data.Category,
			URL:      data.URL,
		}
		if data.Producer != nil {
			bot.Producer = &BotProducer{Name: data.Producer.Name, URL: data.Producer.URL}
		}
		return Detection{Bot: bot}
	}

	// 2. OS detection.
	var os *Os
	if data, caps, ok := d.osParser.matchFirst(ua); ok {
		version := caps.Group(1)
		if data.Version != "" {
			version = substitute(data.Version, caps)
		}
		os = &Os{Name: substitute(data.Name, caps), Version: version}
	}

	// 3. Client detection.
	client := d.detectClient(ua)

	// 4. X-Requested-With client override from hints.
	if hints != nil && hints.XRequestedWith != "" {
		xrw := hints.XRequestedWith
		if appName, ok := d.appHints[xrw]; ok {
			version := ""
			if client != nil && strings.EqualFold(client.Name, appName) {
				version = client.Version
			}
			client = &Client{Kind: ClientMobileApp, Name: appName, Version: version}
		} else if browserName, ok := d.browserHints[xrw]; ok {
			var version, engine, engineVersion string
			if client != nil && strings.EqualFold(client.Name, browserName) {
				version, engine, engineVersion = client.Version, client.Engine, client.EngineVersion
			}
			client = &Client{Kind: ClientBrowser, Name: browserName, Version: version, Engine: engine, EngineVersion: engineVersion}
		}
	}

	// 5. Device detection.
	var deviceType *DeviceType
	var brand, model string
	if dev := d.detectDevice(ua); dev != nil {
		deviceType, brand, model = dev.Kind, dev.Brand, dev.Model
	}

	// Matomo treats the "Unknown" brand as empty.
	if brand == "Unknown" {
		brand = ""
	}

	// 6. Vendor fragment fallback.
	if brand == "" {
		if data, _, ok := d.vendorFragmentParser.matchFirst(ua); ok {
			brand = data.brand
		}
	}

	// 7. Apple brand heuristics.
	osName, osVersion := "", ""
	if os != nil {
		osName, osVersion = os.Name, os.Version
	}
	isAppleOS := osName == "iPadOS" || osName == "tvOS" || osName == "watchOS" || osName == "iOS" || osName == "Mac"
	isAndroidFamily := os != nil && isAndroidOS(os.Name)
	clientName := ""
	if client != nil {
		clientName = client.Name
	}

	if brand == "Apple" && !isAppleOS {
		deviceType, brand, model = nil, "", ""
	}
	if brand == "" && isAppleOS {
		brand = "Apple"
	}

	hr := d.heuristics

	setType := func(t DeviceType) { deviceType = &t }
	isType := func(t DeviceType) bool { return deviceType != nil && *deviceType == t }

	if deviceType == nil && hr.vr.MatchString(ua) {
		setType(Wearable)
	}
	if deviceType == nil && isAndroidFamily && hr.chromeAndroid.MatchString(ua) {
		if hr.mobileElibom.MatchString(ua) {
			setType(Smartphone)
		} else {
			setType(Tablet)
		}
	}
	if isType(Smartphone) && hr.padAPad.MatchString(ua) {
		setType(Tablet)
	}
	if deviceType == nil && (hr.androidTablet.MatchString(ua) || hr.operaTablet.MatchString(ua)) {
		setType(Tablet)
	}
	if deviceType == nil && hr.androidMobile.MatchString(ua) {
		setType(Smartphone)
	}
	if deviceType == nil && osName == "Android" && osVersion != "" {
		if versionLess(osVersion, "2.0") {
			setType(Smartphone)
		} else if versionGE(osVersion, "3.0") && versionLess(osVersion, "4.0") {
			setType(Tablet)
		}
	}
	if isType(FeaturePhone) && isAndroidFamily {
		setType(Smartphone)
	}
	if osName == "Java ME" && deviceType == nil {
		setType(FeaturePhone)
	}
	if osName == "KaiOS" {
		setType(FeaturePhone)
	}
	if deviceType == nil &&
		(osName == "Windows RT" || (osName == "Windows" && osVersion != "" && versionGE(osVersion, "8"))) &&
		hr.touch.MatchString(ua) {
		setType(Tablet)
	}
	if deviceType == nil && hr.puffinDesktop.MatchString(ua) {
		setType(Desktop)
	}
	if deviceType == nil && hr.puffinSmartphone.MatchString(ua) {
		setType(Smartphone)
	}
	if deviceType == nil && hr.puffinTablet.MatchString(ua) {
		setType(Tablet)
	}
	if hr.operaTV.MatchString(ua) {
		setType(Tv)
	}
	if osName == "Coolita OS" {
		setType(Tv)
		brand = "coocaa"
	}
	if !(isType(Tv) || isType(Peripheral)) && hr.androidTV.MatchString(ua) {
		setType(Tv)
	}
	if deviceType == nil && hr.smartTVTizen.MatchString(ua) {
		setType(Tv)
	}
	if tvClientNames[clientName] {
		setType(Tv)
	}
	if deviceType == nil && hr.tvFragment.MatchString(ua) {
		setType(Tv)
	}
	if !isType(Desktop) && strings.Contains(ua, "Desktop") && hr.desktopFragment.MatchString(ua) {
		setType(Desktop)
	}
	if deviceType == nil && os != nil && isDesktopOS(os.Name) {
		setType(Desktop)
	}

	// Client hints: device model fallback.
	if model == "" && hints != nil && hints.Model != "" {
		model = hints.Model
	}
	// Client hints: mobile flag.
	if deviceType == nil && hints != nil && hints.Mobile != nil && *hints.Mobile {
		setType(Smartphone)
	}

	var device *Device
	if deviceType != nil || brand != "" {
		device = &Device{Kind: deviceType, Brand: brand, Model: model}
	}

	return Detection{Os: os, Client: client, Device: device}
}

// detectClient tries the six client-facet parsers in the fixed order from
// §4.8 and returns the first match, with its engine resolved.
func (d *Detector) detectClient(ua string) *Client {
	parsers := []*flatParser[clientEntry]{
		d.browserParser,
		d.feedReaderParser,
		d.mobileAppParser,
		d.libraryParser,
		d.mediaPlayerParser,
		d.pimParser,
	}
	kinds := []ClientType{ClientBrowser, ClientFeedReader, ClientMobileApp, ClientLibrary, ClientMediaPlayer, ClientPim}

	for i, p := range parsers {
		data, caps, ok := p.matchFirst(ua)
		if !ok {
			continue
		}
		version := caps.Group(1)
		if data.Version != "" {
			version = substitute(data.Version, caps)
		}
		engine, engineVersion := d.resolveEngine(ua, data, version)
		return &Client{
			Kind:          kinds[i],
			Name:          substitute(data.Name, caps),
			Version:       version,
			Engine:        engine,
			EngineVersion: engineVersion,
		}
	}
	return nil
}

// detectDevice walks the fixed device category table (§4.5, §4.8) and
// returns the first category whose prefilter and brand/model match.
func (d *Detector) detectDevice(ua string) *Device {
	for _, cat := range d.deviceParsers {
		if !cat.prefilter.matches(ua) {
			continue
		}

		if match, ok := cat.brandParser.matchFirst(ua); ok {
			if match.model != nil {
				deviceType := cat.defaultType
				if match.model.hasDeviceType {
					deviceType = match.model.deviceType
				} else if match.brand.hasDeviceType {
					deviceType = match.brand.deviceType
				}
				brand := match.brand.brand
				if match.model.brand != "" {
					brand = match.model.brand
				}
				model := ""
				if match.model.modelTemplate != "" {
					model = substitute(match.model.modelTemplate, match.modelCaptures)
				}
				return &Device{Kind: &deviceType, Brand: brand, Model: model}
			}

			deviceType := cat.defaultType
			if match.brand.hasDeviceType {
				deviceType = match.brand.deviceType
			}
			model := ""
			if match.brand.modelTemplate != "" {
				model = substitute(match.brand.modelTemplate, match.brandCaptures)
			}
			return &Device{Kind: &deviceType, Brand: match.brand.brand, Model: model}
		}

		if cat.claimsType {
			dt := cat.defaultType
			return &Device{Kind: &dt}
		}
	}
	return nil
}
