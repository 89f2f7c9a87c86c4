package auditlog_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uadetect/internal/auditlog"
	"uadetect/internal/pkg/useragent"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func openTestLog(t *testing.T) *auditlog.Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")

	log, err := auditlog.Open(path, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	return log
}

func TestRecordPersistsBotDetection(t *testing.T) {
	log := openTestLog(t)

	det := useragent.Detection{
		Bot: &useragent.Bot{Name: "Googlebot", Category: "Search bot"},
	}

	err := log.Record("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", det)
	require.NoError(t, err)
}

func TestRecordPersistsFullDetection(t *testing.T) {
	log := openTestLog(t)

	mobile := smartphoneKind()
	det := useragent.Detection{
		Os: &useragent.Os{Name: "Android", Version: "14"},
		Client: &useragent.Client{
			Kind:    useragent.ClientBrowser,
			Name:    "Chrome",
			Version: "120.0.0.0",
		},
		Device: &useragent.Device{
			Kind:  mobile,
			Brand: "Samsung",
			Model: "SM-G998B",
		},
	}

	err := log.Record("some-android-ua", det)
	require.NoError(t, err)
}

func smartphoneKind() *useragent.DeviceType {
	d := useragent.Smartphone
	return &d
}

func TestRecordRejectsClosedConnection(t *testing.T) {
	log := openTestLog(t)
	require.NoError(t, log.Close())

	err := log.Record("ua", useragent.Detection{})
	assert.Error(t, err)
}
