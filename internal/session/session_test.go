package session

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"history-map/data"
	"history-map/internal/canvas"
	"history-map/internal/config"
	"history-map/internal/facts"
	"history-map/internal/interaction"
	"history-map/internal/location"
	"history-map/internal/resource"
	"history-map/internal/types"
	"history-map/internal/viewport"
)

type mockSpeaker struct {
	spoken []string
}

func (m *mockSpeaker) IsAvailable() bool { return true }
func (m *mockSpeaker) Speak(text string) { m.spoken = append(m.spoken, text) }

// failingFetcher fails for one location and serves the embedded bundle
// for the rest.
type failingFetcher struct {
	fail  string
	err   error
	inner *resource.Fetcher
}

func (f *failingFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if location == f.fail {
		return nil, f.err
	}
	return f.inner.Fetch(ctx, location)
}

type staticFetcher map[string][]byte

func (f staticFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	b, ok := f[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			Boundaries: "embed:countries.geojson",
			Facts:      "embed:historical_facts.json",
		},
		Canvas:   config.CanvasConfig{ID: "countryCanvas", Width: 800, Height: 400},
		Map:      config.MapConfig{ThemeToggle: true, ViewportWidth: 1024, ViewportHeight: 768},
		Location: config.LocationConfig{Provider: "reported"},
	}
}

func newTestSession(t *testing.T, cfg *config.Config, opts ...Option) (*Session, *mockSpeaker) {
	t.Helper()
	speaker := &mockSpeaker{}
	opts = append([]Option{WithSpeaker(speaker)}, opts...)
	s, err := New(testContext(t), cfg, testLogger(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, speaker
}

func TestInit_LoadsLayer(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Init(testContext(t)))

	st := s.State()
	assert.True(t, st.LayerLoaded)
	assert.Empty(t, st.LoadError)
	assert.True(t, st.GeolocationAvailable)
	assert.True(t, st.NarrationAvailable)

	// padded max bounds enclose every sample country
	south, west := st.MaxBounds[0][0], st.MaxBounds[0][1]
	north, east := st.MaxBounds[1][0], st.MaxBounds[1][1]
	assert.Less(t, south, -40.9)
	assert.Less(t, west, -73.9)
	assert.Greater(t, north, 51.1)
	assert.Greater(t, east, 153.6)
	assert.GreaterOrEqual(t, st.Zoom, 2)

	fc, err := s.Countries()
	require.NoError(t, err)
	assert.Len(t, fc.Features, 8)
}

func TestInit_DataLoadFailure(t *testing.T) {
	embedded := resource.NewFetcherWithFS(nil, data.FS, testLogger())

	tests := []struct {
		name    string
		fetcher facts.Fetcher
	}{
		{
			name:    "boundaries unavailable",
			fetcher: &failingFetcher{fail: "embed:countries.geojson", err: errors.New("connection refused"), inner: embedded},
		},
		{
			name:    "facts unavailable",
			fetcher: &failingFetcher{fail: "embed:historical_facts.json", err: errors.New("404 Not Found"), inner: embedded},
		},
		{
			name: "malformed boundaries",
			fetcher: staticFetcher{
				"embed:countries.geojson":     []byte(`{"type":"FeatureCollection","features":[`),
				"embed:historical_facts.json": []byte(`{}`),
			},
		},
		{
			name: "malformed facts",
			fetcher: staticFetcher{
				"embed:countries.geojson":     []byte(`{"type":"FeatureCollection","features":[]}`),
				"embed:historical_facts.json": []byte(`[1,2,3]`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, testConfig(), WithFetcher(tt.fetcher))

			err := s.Init(testContext(t))
			assert.True(t, errors.Is(err, ErrDataLoad), "got %v", err)

			st := s.State()
			assert.False(t, st.LayerLoaded)
			assert.NotEmpty(t, st.LoadError)
			// the tile-only map keeps its initial view
			assert.Equal(t, types.NewCoords(20, 0), st.Center)
			assert.Equal(t, 2, st.Zoom)
			assert.Equal(t, [2][2]float64{{-85, -180}, {85, 180}}, st.MaxBounds)
			assert.Equal(t, "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", st.TileLayer.URL)

			_, err = s.Countries()
			assert.True(t, errors.Is(err, ErrNoLayer))
			_, _, err = s.Fact("France")
			assert.True(t, errors.Is(err, ErrNoLayer))
			assert.True(t, errors.Is(s.Enter("France", ""), ErrNoLayer))
			_, err = s.Click("France", types.NewCoords(47, 2), "")
			assert.True(t, errors.Is(err, ErrNoLayer))

			// other controls still work
			theme, err := s.ToggleTheme()
			require.NoError(t, err)
			assert.Equal(t, viewport.ThemeDark, theme)
		})
	}
}

func TestSession_ClickNarratesAndDraws(t *testing.T) {
	s, speaker := newTestSession(t, testConfig())
	require.NoError(t, s.Init(testContext(t)))

	popup, err := s.Click("France", types.NewCoords(47, 2), "")
	require.NoError(t, err)
	assert.Contains(t, popup.Content, "<b>France</b><br>")
	assert.Contains(t, popup.Content, "Bastille")
	require.Len(t, speaker.spoken, 1)
	assert.Contains(t, speaker.spoken[0], "Bastille")

	var buf bytes.Buffer
	require.NoError(t, s.WriteCanvasPNG("countryCanvas", &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
	// France projects to around (404, 96) on an 800x400 surface
	_, _, _, a := img.At(404, 96).RGBA()
	assert.NotZero(t, a)

	err = s.WriteCanvasPNG("missing", &buf)
	assert.True(t, errors.Is(err, canvas.ErrSurfaceNotFound))
}

func TestSession_ClickShowsFactVerbatim(t *testing.T) {
	s, speaker := newTestSession(t, testConfig())
	require.NoError(t, s.Init(testContext(t)))

	fc, err := s.Countries()
	require.NoError(t, err)

	withFact := 0
	for _, f := range fc.Features {
		name := f.Properties.MustString("ADMIN")
		fact, ok, err := s.Fact(name)
		require.NoError(t, err)

		before := len(speaker.spoken)
		popup, err := s.Click(name, types.NewCoords(0, 0), "")
		require.NoError(t, err, name)

		assert.Equal(t, name, popup.Title)
		assert.Contains(t, popup.Content, name)
		if !ok {
			assert.Contains(t, popup.Content, interaction.NoFactText, name)
			assert.Len(t, speaker.spoken, before, name)
			continue
		}
		withFact++
		assert.Contains(t, popup.Content, fact.Description, name)
		require.Len(t, speaker.spoken, before+1, name)
		assert.Equal(t, fact.Description, speaker.spoken[before])
	}
	assert.Equal(t, 6, withFact)

	// the bundled South Africa fact carries an apostrophe
	fact, ok, err := s.Fact("South Africa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, fact.Description, "'")
}

func TestSession_ClickWithoutFact(t *testing.T) {
	s, speaker := newTestSession(t, testConfig())
	require.NoError(t, s.Init(testContext(t)))

	name, popup, err := s.ClickAt(types.NewCoords(-10, -50), "")
	require.NoError(t, err)
	assert.Equal(t, "Brazil", name)
	assert.Contains(t, popup.Content, interaction.NoFactText)
	assert.Empty(t, speaker.spoken)

	_, _, err = s.ClickAt(types.NewCoords(0, -150), "")
	assert.True(t, errors.Is(err, interaction.ErrNoCountry))
}

func TestSession_HoverState(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Init(testContext(t)))

	require.NoError(t, s.Enter("Egypt", "Mozilla/5.0 Firefox/120.0"))
	assert.Equal(t, "Egypt", s.State().Hovered)

	fc, err := s.Countries()
	require.NoError(t, err)
	last := fc.Features[len(fc.Features)-1]
	assert.Equal(t, "Egypt", last.Properties["ADMIN"])

	require.NoError(t, s.Leave("Egypt", ""))
	assert.Empty(t, s.State().Hovered)
}

func TestSession_Locate(t *testing.T) {
	s, _ := newTestSession(t, testConfig())

	pos := types.NewCoords(35.68, 139.65)
	_, err := s.Locate(testContext(t), location.Request{Reported: &pos})
	require.NoError(t, err)
	_, err = s.Locate(testContext(t), location.Request{Reported: &pos})
	require.NoError(t, err)

	st := s.State()
	assert.Len(t, st.Markers, 1)
	assert.Equal(t, location.LocateZoom, st.Zoom)

	require.NoError(t, s.RemoveLocation())
	assert.True(t, errors.Is(s.RemoveLocation(), location.ErrNoMarker))

	_, err = s.Locate(testContext(t), location.Request{})
	assert.True(t, errors.Is(err, location.ErrGeolocation))
}

func TestNew_LocationProviders(t *testing.T) {
	tests := []struct {
		provider  string
		available bool
		wantErr   bool
	}{
		{provider: "reported", available: true},
		{provider: "none", available: false},
		{provider: "", available: false},
		{provider: "gps", wantErr: true},
		{provider: "geoip", wantErr: true}, // no database configured
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := testConfig()
			cfg.Location.Provider = tt.provider

			s, err := New(testContext(t), cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.available, s.State().GeolocationAvailable)

			if !tt.available {
				_, err := s.Locate(testContext(t), location.Request{})
				assert.True(t, errors.Is(err, location.ErrUnsupportedCapability))
			}
		})
	}
}

func TestNew_NoThemeControl(t *testing.T) {
	cfg := testConfig()
	cfg.Map.ThemeToggle = false
	s, _ := newTestSession(t, cfg)

	theme, err := s.ToggleTheme()
	assert.True(t, errors.Is(err, viewport.ErrNoThemeControl))
	assert.Equal(t, viewport.ThemeLight, theme)
}
