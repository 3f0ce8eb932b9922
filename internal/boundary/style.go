package boundary

// Style is the visual style of one feature. Two styles are equal when every
// field is equal, which is what reset-after-hover relies on.
type Style struct {
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// DefaultStyle is the shared resting style of every country.
var DefaultStyle = Style{
	Color:       "#3388ff",
	Weight:      1,
	FillColor:   "#66ccff",
	FillOpacity: 0.7,
}

// HighlightStyle is applied while the pointer is over a country.
var HighlightStyle = Style{
	Color:       "#666",
	Weight:      2,
	FillColor:   "#ffcc33",
	FillOpacity: 0.9,
}

// VisualState is the feature's current visual state.
type VisualState string

const (
	StateDefault     VisualState = "default"
	StateHighlighted VisualState = "highlighted"
)
