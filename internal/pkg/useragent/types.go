// Package useragent classifies HTTP User-Agent strings (and optional client
// hint headers) into bot, OS, client, and device facets using the Matomo
// device-detector YAML rule set.
package useragent

import "strings"

// ClientType is the facet a client rule belongs to.
type ClientType int

const (
	ClientBrowser ClientType = iota
	ClientFeedReader
	ClientMobileApp
	ClientLibrary
	ClientMediaPlayer
	ClientPim
)

func (c ClientType) String() string {
	switch c {
	case ClientBrowser:
		return "browser"
	case ClientFeedReader:
		return "feed reader"
	case ClientMobileApp:
		return "mobile app"
	case ClientLibrary:
		return "library"
	case ClientMediaPlayer:
		return "mediaplayer"
	case ClientPim:
		return "pim"
	default:
		return ""
	}
}

// MarshalJSON renders the facet using its spec-defined lower-case string.
func (c ClientType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// DeviceType is the closed device-type enumeration from the spec's data model.
type DeviceType int

const (
	Desktop DeviceType = iota
	Smartphone
	Tablet
	Phablet
	FeaturePhone
	Console
	Tv
	CarBrowser
	Camera
	PortableMediaPlayer
	Notebook
	SmartDisplay
	SmartSpeaker
	Wearable
	Peripheral
)

func (d DeviceType) String() string {
	switch d {
	case Desktop:
		return "desktop"
	case Smartphone:
		return "smartphone"
	case Tablet:
		return "tablet"
	case Phablet:
		return "phablet"
	case FeaturePhone:
		return "feature phone"
	case Console:
		return "console"
	case Tv:
		return "tv"
	case CarBrowser:
		return "car browser"
	case Camera:
		return "camera"
	case PortableMediaPlayer:
		return "portable media player"
	case Notebook:
		return "notebook"
	case SmartDisplay:
		return "smart display"
	case SmartSpeaker:
		return "smart speaker"
	case Wearable:
		return "wearable"
	case Peripheral:
		return "peripheral"
	default:
		return ""
	}
}

// MarshalJSON renders the device type using its spec-defined lower-case string.
func (d DeviceType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// deviceTypeFromString parses a device-type name from rule YAML (e.g. "tv",
// "television", "car browser") into a DeviceType. Unknown names yield false,
// matching the spec's "degrade, don't crash" rule for query-time data.
func deviceTypeFromString(s string) (DeviceType, bool) {
	switch strings.ToLower(s) {
	case "desktop":
		return Desktop, true
	case "smartphone":
		return Smartphone, true
	case "tablet":
		return Tablet, true
	case "phablet":
		return Phablet, true
	case "feature phone":
		return FeaturePhone, true
	case "console":
		return Console, true
	case "tv", "television":
		return Tv, true
	case "car browser":
		return CarBrowser, true
	case "camera":
		return Camera, true
	case "portable media player":
		return PortableMediaPlayer, true
	case "notebook":
		return Notebook, true
	case "smart display":
		return SmartDisplay, true
	case "smart speaker":
		return SmartSpeaker, true
	case "wearable":
		return Wearable, true
	case "peripheral":
		return Peripheral, true
	default:
		return 0, false
	}
}

// ClientHints carries optional client-hint values pulled from HTTP headers
// (§6): X-Requested-With, Sec-CH-UA-Mobile, Sec-CH-UA-Model.
type ClientHints struct {
	XRequestedWith string
	Model          string
	Mobile         *bool
}

// Detection is the result of parsing one User-Agent string. If Bot is set,
// Os, Client and Device are always nil (invariant 1 in spec.md §8).
type Detection struct {
	Bot    *Bot    `json:"bot,omitempty"`
	Os     *Os     `json:"os,omitempty"`
	Client *Client `json:"client,omitempty"`
	Device *Device `json:"device,omitempty"`
}

// IsBot reports whether the request was identified as an automated client.
func (d Detection) IsBot() bool { return d.Bot != nil }

// Bot identifies an automated client (search indexer, monitor, scraper).
type Bot struct {
	Name     string        `json:"name"`
	Category string        `json:"category,omitempty"`
	URL      string        `json:"url,omitempty"`
	Producer *BotProducer  `json:"producer,omitempty"`
}

// BotProducer names the company or project behind a bot.
type BotProducer struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Os is the detected operating system.
type Os struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Client is the detected browser/feed-reader/mobile-app/library/media-player/PIM.
type Client struct {
	Kind          ClientType `json:"type"`
	Name          string     `json:"name"`
	Version       string     `json:"version,omitempty"`
	Engine        string     `json:"engine,omitempty"`
	EngineVersion string     `json:"engine_version,omitempty"`
}

// Device is the detected device type/brand/model. Present iff Kind is set
// or Brand is non-empty (spec.md §3 invariant).
type Device struct {
	Kind    *DeviceType `json:"type,omitempty"`
	Brand   string      `json:"brand,omitempty"`
	Model   string      `json:"model,omitempty"`
}
