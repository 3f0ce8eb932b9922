package boundary

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"ADMIN": "Square"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]], [[4,4],[6,4],[6,6],[4,6],[4,4]]]}},
    {"type": "Feature", "properties": {"ADMIN": "Islands"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[20,20],[30,20],[30,30],[20,30],[20,20]]],
        [[[-40,-30],[-35,-30],[-35,-25],[-40,-25],[-40,-30]]]
     ]}},
    {"type": "Feature", "properties": {"ADMIN": "Inner"},
     "geometry": {"type": "Polygon", "coordinates": [[[4,4],[6,4],[6,6],[4,6],[4,4]]]}},
    {"type": "Feature", "properties": {"ADMIN": "Capital"},
     "geometry": {"type": "Point", "coordinates": [50, 50]}},
    {"type": "Feature", "properties": {"NAME": "Nameless"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "properties": {"ADMIN": "Square"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
  ]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLayer(t *testing.T) *Layer {
	t.Helper()
	fc, err := Decode([]byte(testCollection))
	require.NoError(t, err)
	layer, err := NewLayer(fc, DefaultStyle, testLogger())
	require.NoError(t, err)
	return layer
}

func names(fs []*Feature) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

func TestNewLayer(t *testing.T) {
	layer := newTestLayer(t)

	assert.Equal(t, []string{"Square", "Islands", "Inner", "Capital"}, names(layer.Features()))
	for _, f := range layer.Features() {
		assert.Equal(t, DefaultStyle, f.Style, f.Name)
		assert.Equal(t, StateDefault, f.State, f.Name)
	}

	sq, ok := layer.Feature("Square")
	require.True(t, ok)
	poly, ok := sq.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly, 2, "duplicate must not replace the first feature")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"type":"FeatureCollection","features":[`))
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = NewLayer(nil, DefaultStyle, testLogger())
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestLayer_SetAndResetStyle(t *testing.T) {
	layer := newTestLayer(t)

	require.NoError(t, layer.SetStyle("Islands", HighlightStyle))
	f, _ := layer.Feature("Islands")
	assert.Equal(t, HighlightStyle, f.Style)
	assert.Equal(t, StateHighlighted, f.State)

	require.NoError(t, layer.ResetStyle("Islands"))
	assert.Equal(t, layer.DefaultStyle(), f.Style)
	assert.Equal(t, StateDefault, f.State)

	assert.ErrorIs(t, layer.SetStyle("Atlantis", HighlightStyle), ErrUnknownFeature)
	assert.ErrorIs(t, layer.ResetStyle("Atlantis"), ErrUnknownFeature)
}

func TestLayer_BringToFront(t *testing.T) {
	layer := newTestLayer(t)

	require.NoError(t, layer.BringToFront("Square"))
	assert.Equal(t, []string{"Islands", "Inner", "Capital", "Square"}, names(layer.Features()))

	require.NoError(t, layer.BringToFront("Square"))
	assert.Equal(t, []string{"Islands", "Inner", "Capital", "Square"}, names(layer.Features()))

	assert.ErrorIs(t, layer.BringToFront("Atlantis"), ErrUnknownFeature)
}

func TestLayer_Bounds(t *testing.T) {
	layer := newTestLayer(t)

	b := layer.Bounds()
	assert.Equal(t, orb.Point{-40, -30}, b.Min)
	assert.Equal(t, orb.Point{50, 50}, b.Max)

	padded := PadBound(b, 0.1)
	assert.InDelta(t, -49.0, padded.Min.Lon(), 1e-9)
	assert.InDelta(t, -38.0, padded.Min.Lat(), 1e-9)
	assert.InDelta(t, 59.0, padded.Max.Lon(), 1e-9)
	assert.InDelta(t, 58.0, padded.Max.Lat(), 1e-9)
}

func TestLayer_OnAndDispatch(t *testing.T) {
	layer := newTestLayer(t)

	var got []string
	require.NoError(t, layer.On("Inner", Click, func(ev Event) {
		got = append(got, "first:"+ev.Feature.Name)
	}))
	require.NoError(t, layer.On("Inner", Click, func(ev Event) {
		got = append(got, "second:"+ev.Feature.Name)
	}))
	require.NoError(t, layer.On("Inner", PointerEnter, func(ev Event) {
		got = append(got, "enter")
	}))

	require.NoError(t, layer.Dispatch("Inner", Event{Type: Click, LatLng: orb.Point{5, 5}}))
	assert.Equal(t, []string{"first:Inner", "second:Inner"}, got)

	require.NoError(t, layer.Dispatch("Square", Event{Type: Click}), "no handlers is not an error")
	assert.ErrorIs(t, layer.Dispatch("Atlantis", Event{Type: Click}), ErrUnknownFeature)
	assert.ErrorIs(t, layer.On("Atlantis", Click, func(Event) {}), ErrUnknownFeature)
}

func TestLayer_HitTest(t *testing.T) {
	layer := newTestLayer(t)

	tests := []struct {
		name  string
		point orb.Point
		want  string
		found bool
	}{
		{name: "inside outer ring", point: orb.Point{2, 2}, want: "Square", found: true},
		{name: "inside hole is the inner country", point: orb.Point{5, 5}, want: "Inner", found: true},
		{name: "second polygon of multipolygon", point: orb.Point{-37, -27}, want: "Islands", found: true},
		{name: "ocean", point: orb.Point{-100, 0}, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := layer.HitTest(tt.point)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, f.Name)
			}
		})
	}
}

func TestLayer_FeatureCollection(t *testing.T) {
	layer := newTestLayer(t)
	require.NoError(t, layer.SetStyle("Square", HighlightStyle))

	b, err := json.Marshal(layer.FeatureCollection())
	require.NoError(t, err)

	var out struct {
		Features []struct {
			Properties struct {
				Admin   string `json:"ADMIN"`
				Tooltip string `json:"tooltip"`
				Style   Style  `json:"style"`
				State   string `json:"state"`
			} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out.Features, 4)
	assert.Equal(t, "Square", out.Features[0].Properties.Admin)
	assert.Equal(t, "Square", out.Features[0].Properties.Tooltip)
	assert.Equal(t, HighlightStyle, out.Features[0].Properties.Style)
	assert.Equal(t, "highlighted", out.Features[0].Properties.State)
	assert.Equal(t, DefaultStyle, out.Features[1].Properties.Style)
}

func TestEngineFromUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", true},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0", true},
		{"Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko", false},
		{"Mozilla/4.0 (compatible; MSIE 8.0; Windows NT 6.1)", false},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0 Safari/537.36 Edge/18.17763", false},
		{"Opera/9.80 (Windows NT 6.1) Presto/2.12.388 Version/12.18", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.ua, func(t *testing.T) {
			assert.Equal(t, tt.want, EngineFromUserAgent(tt.ua).SupportsReorder())
		})
	}
}
