package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uadetect/internal/httpapi"
	"uadetect/internal/pkg/useragent"
)

const testRulesDir = "../pkg/useragent/testdata/rules"

func newTestServer(t *testing.T) *httpapi.Server {
	t.Helper()
	detector, err := useragent.FromDir(testRulesDir)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return httpapi.NewServer(detector, logger, nil)
}

func TestHealthzReturnsOK(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "ok", payload["status"])
}

func TestDetectReturnsClientAndOs(t *testing.T) {
	srv := newTestServer(t)

	payload, err := json.Marshal(map[string]string{
		"user_agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var det useragent.Detection
	require.NoError(t, json.Unmarshal(body, &det))

	require.NotNil(t, det.Os)
	assert.Equal(t, "Windows", det.Os.Name)
	require.NotNil(t, det.Client)
	assert.Equal(t, "Chrome", det.Client.Name)
}

func TestDetectRejectsMissingUserAgent(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDetectRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
