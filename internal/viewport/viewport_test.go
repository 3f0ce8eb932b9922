package viewport

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"history-map/internal/types"
)

func TestNew_Defaults(t *testing.T) {
	v := New(DefaultOptions())

	assert.Equal(t, types.NewCoords(20, 0), v.Center())
	assert.Equal(t, 2, v.Zoom())

	s := v.State()
	assert.Equal(t, [2][2]float64{{-85, -180}, {85, 180}}, s.MaxBounds)
	assert.True(t, s.TileLayer.NoWrap)
	assert.False(t, s.WorldCopyJump)
	assert.Nil(t, s.Popup)
	assert.Empty(t, s.Markers)
}

func TestViewport_SetView(t *testing.T) {
	tests := []struct {
		name       string
		center     types.Coords
		zoom       int
		wantCenter types.Coords
		wantZoom   int
	}{
		{name: "in range", center: types.NewCoords(48.85, 2.35), zoom: 13, wantCenter: types.NewCoords(48.85, 2.35), wantZoom: 13},
		{name: "zoom below min", center: types.NewCoords(0, 0), zoom: 0, wantCenter: types.NewCoords(0, 0), wantZoom: 2},
		{name: "zoom above max", center: types.NewCoords(0, 0), zoom: 25, wantCenter: types.NewCoords(0, 0), wantZoom: 18},
		{name: "center held in bounds", center: types.NewCoords(89, 10), zoom: 5, wantCenter: types.NewCoords(85, 10), wantZoom: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(DefaultOptions())
			v.SetView(tt.center, tt.zoom)
			assert.Equal(t, tt.wantCenter, v.Center())
			assert.Equal(t, tt.wantZoom, v.Zoom())
		})
	}
}

func TestViewport_FitBounds(t *testing.T) {
	v := New(DefaultOptions())
	b := orb.Bound{Min: orb.Point{-10, 40}, Max: orb.Point{10, 50}}

	v.FitBounds(b)

	assert.Equal(t, types.NewCoords(45, 0), v.Center())
	// 20 degrees of longitude in 1024px: log2(1024*360/(256*20)) = log2(72) ~ 6.17
	assert.Equal(t, 6, v.Zoom())
}

func TestBoundsZoom(t *testing.T) {
	world := orb.Bound{Min: orb.Point{-180, -85}, Max: orb.Point{180, 85}}
	assert.Equal(t, 1, BoundsZoom(world, 1024, 768, 18))

	point := orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{5, 5}}
	assert.Equal(t, 18, BoundsZoom(point, 1024, 768, 18))
}

func TestViewport_Popup(t *testing.T) {
	v := New(DefaultOptions())
	_, ok := v.Popup()
	require.False(t, ok, "new viewport has a popup")

	v.OpenPopup(Popup{Anchor: types.NewCoords(1, 2), Content: "first"})
	v.OpenPopup(Popup{Anchor: types.NewCoords(3, 4), Content: "second"})

	p, ok := v.Popup()
	require.True(t, ok)
	assert.Equal(t, "second", p.Content)

	v.ClosePopup()
	_, ok = v.Popup()
	assert.False(t, ok)
}

func TestNewTitledPopup(t *testing.T) {
	text := `Nelson Mandela became the country's first "democratically elected" president & more.`
	p := NewTitledPopup(types.NewCoords(-29, 24), "South Africa", text)

	assert.Equal(t, "South Africa", p.Title)
	assert.Equal(t, text, p.Text)
	assert.Equal(t, "<b>South Africa</b><br>"+text, p.Content)
	assert.Contains(t, p.Content, text)
	assert.Equal(t, types.NewCoords(-29, 24), p.Anchor)
}

func TestViewport_Markers(t *testing.T) {
	v := New(DefaultOptions())

	m := v.AddMarker(Marker{Position: types.NewCoords(10, 20), Icon: "pulsing-icon", Popup: "You are here"})
	require.NotZero(t, m.ID)

	p, ok := v.Popup()
	require.True(t, ok, "marker popup not opened")
	assert.Equal(t, m.ID, p.MarkerID)
	assert.Equal(t, "You are here", p.Content)

	require.True(t, v.RemoveMarker(m.ID))
	assert.Empty(t, v.Markers())
	_, ok = v.Popup()
	assert.False(t, ok, "marker popup still open after removal")
	assert.False(t, v.RemoveMarker(m.ID))
}

func TestViewport_RemoveMarkerKeepsOtherPopup(t *testing.T) {
	v := New(DefaultOptions())
	m := v.AddMarker(Marker{Position: types.NewCoords(10, 20), Popup: "You are here"})
	v.OpenPopup(Popup{Content: "France"})

	v.RemoveMarker(m.ID)

	p, ok := v.Popup()
	require.True(t, ok)
	assert.Equal(t, "France", p.Content)
}

func TestViewport_ToggleTheme(t *testing.T) {
	v := New(DefaultOptions())
	for _, want := range []Theme{ThemeDark, ThemeLight, ThemeDark} {
		got, err := v.ToggleTheme()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	opts := DefaultOptions()
	opts.ThemeToggle = false
	v = New(opts)
	got, err := v.ToggleTheme()
	assert.ErrorIs(t, err, ErrNoThemeControl)
	assert.Equal(t, ThemeLight, got)
}
