package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-palette/internal/colorutil"
	"color-palette/internal/config"
	"color-palette/internal/metrics"
	"color-palette/internal/ui"
)

type fakeSink struct {
	got []string
	err error
}

func (f *fakeSink) WriteText(_ context.Context, text string) error {
	f.got = append(f.got, text)
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Listen:        "127.0.0.1:0",
		AllowedOrigin: "https://palette.test",
		TimeoutSec:    2,
		Env:           &config.EnvConfig{Env: config.Development},
	}
}

func newTestServer(t *testing.T, sink colorutil.TextSink) *httptest.Server {
	t.Helper()
	ui.SetOutput(io.Discard)
	t.Cleanup(func() { ui.SetOutput(io.Discard) })

	srv := NewServer(testConfig(), colorutil.NewSeededSource(11), sink)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRandom(t *testing.T) {
	ts := newTestServer(t, nil)

	before := testutil.ToFloat64(metrics.ColorsGenerated)
	var body map[string]string
	getJSON(t, ts.URL+"/api/random", http.StatusOK, &body)

	assert.Regexp(t, `^#[0-9A-F]{6}$`, body["color"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ColorsGenerated))
}

func TestPalette(t *testing.T) {
	ts := newTestServer(t, nil)

	var body PaletteResponse
	getJSON(t, ts.URL+"/api/palette?base=%23336699", http.StatusOK, &body)

	require.Len(t, body.Colors, colorutil.PaletteSize)
	assert.Equal(t, "#336699", body.Colors[0])
	assert.GreaterOrEqual(t, body.Spread, 0.0)

	var random PaletteResponse
	getJSON(t, ts.URL+"/api/palette", http.StatusOK, &random)
	assert.Len(t, random.Colors, colorutil.PaletteSize)
}

func TestPaletteBadBase(t *testing.T) {
	ts := newTestServer(t, nil)

	before := testutil.ToFloat64(metrics.InvalidColors.WithLabelValues("palette"))
	var body map[string]string
	getJSON(t, ts.URL+"/api/palette?base=purple", http.StatusBadRequest, &body)

	assert.Contains(t, body["error"], "invalid color format")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.InvalidColors.WithLabelValues("palette")))
}

func TestColor(t *testing.T) {
	ts := newTestServer(t, nil)

	var d colorutil.Description
	getJSON(t, ts.URL+"/api/color?hex=ff0000", http.StatusOK, &d)
	assert.Equal(t, "#FF0000", d.Hex)
	assert.Equal(t, colorutil.RGB{R: 255}, d.RGB)
	assert.Equal(t, colorutil.HSL{H: 0, S: 100, L: 50}, d.HSL)
}

func TestContrast(t *testing.T) {
	ts := newTestServer(t, nil)

	var body ContrastResponse
	getJSON(t, ts.URL+"/api/contrast?fg=%23000000&bg=%23FFFFFF", http.StatusOK, &body)
	assert.InDelta(t, 21.0, body.Ratio, 1e-9)

	var bad map[string]string
	getJSON(t, ts.URL+"/api/contrast?fg=%23000000", http.StatusBadRequest, &bad)
	assert.NotEmpty(t, bad["error"])
}

func TestAccessibility(t *testing.T) {
	ts := newTestServer(t, nil)

	before := testutil.ToFloat64(metrics.AccessibilityChecks.WithLabelValues("AA"))
	var v colorutil.Verdict
	getJSON(t, ts.URL+"/api/accessibility?fg=767676&bg=FFFFFF", http.StatusOK, &v)

	assert.Equal(t, colorutil.Verdict{Contrast: "4.54", PassesAA: true, PassesAAA: false, Level: colorutil.LevelAA}, v)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AccessibilityChecks.WithLabelValues("AA")))
}

func TestCopy(t *testing.T) {
	sink := &fakeSink{}
	ts := newTestServer(t, sink)

	resp, err := http.Post(ts.URL+"/api/copy", "application/json", strings.NewReader(`{"text":"#ABCDEF"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body CopyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Copied)
	assert.Equal(t, []string{"#ABCDEF"}, sink.got)
}

func TestCopyFailureIsNotAnError(t *testing.T) {
	sink := &fakeSink{err: errors.New("no display")}
	ts := newTestServer(t, sink)

	before := testutil.ToFloat64(metrics.ClipboardWrites.WithLabelValues("failed"))
	resp, err := http.Post(ts.URL+"/api/copy", "application/json", strings.NewReader(`{"text":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body CopyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Copied)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ClipboardWrites.WithLabelValues("failed")))
}

func TestCopyRejectsBadBody(t *testing.T) {
	ts := newTestServer(t, &fakeSink{})

	resp, err := http.Post(ts.URL+"/api/copy", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	big := `{"text":"` + strings.Repeat("a", maxCopyBytes) + `"}`
	resp, err = http.Post(ts.URL+"/api/copy", "application/json", strings.NewReader(big))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCopyRequiresJSONContentType(t *testing.T) {
	sink := &fakeSink{}
	ts := newTestServer(t, sink)

	for _, ct := range []string{"text/plain", "application/x-www-form-urlencoded", ""} {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/copy", strings.NewReader(`{"text":"rm -rf ~"}`))
		require.NoError(t, err)
		req.Header.Set("Origin", "https://elsewhere.example")
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode, "content type %q", ct)
	}
	assert.Empty(t, sink.got)

	resp, err := http.Post(ts.URL+"/api/copy", "application/json; charset=utf-8", strings.NewReader(`{"text":"#123456"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"#123456"}, sink.got)
}

func TestCORSAndMethods(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/palette", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://palette.test", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Post(ts.URL+"/api/random", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(b))
}

func TestStartStopsOnCancel(t *testing.T) {
	var log bytes.Buffer
	ui.SetOutput(&log)
	t.Cleanup(func() { ui.SetOutput(io.Discard) })

	srv := NewServer(testConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, log.String(), "Shutting down gracefully")
}

func TestStartReturnsServeError(t *testing.T) {
	ui.SetOutput(io.Discard)

	srv := NewServer(testConfig(), nil, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	srv.mu.Lock()
	srv.ln.Close()
	srv.mu.Unlock()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after the listener failed")
	}
}
