// Package interaction wires hover and click reactions onto the boundary
// layer: highlight on enter, reset on leave, and on click a popup, the
// fact read aloud and the country outline drawn on the canvas.
package interaction

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"

	"history-map/internal/boundary"
	"history-map/internal/canvas"
	"history-map/internal/facts"
	"history-map/internal/metrics"
	"history-map/internal/types"
	"history-map/internal/viewport"
)

// NoFactText is shown in place of a description for countries without a fact.
const NoFactText = "No historical facts available."

var ErrNoCountry = errors.New("no country at this location")

// FactSource looks up the fact for a country.
type FactSource interface {
	Lookup(country string) (facts.Fact, bool)
}

// Narrator reads text aloud without blocking.
type Narrator interface {
	Speak(text string)
}

// Deps are the collaborators a Controller reacts through.
type Deps struct {
	Layer     *boundary.Layer
	Facts     FactSource
	View      *viewport.Viewport
	Narrator  Narrator
	Projector *canvas.Projector
	Surfaces  *canvas.Registry
	SurfaceID string
}

// Controller owns the per-feature event handlers. It is not safe for
// concurrent use; the session serializes access.
type Controller struct {
	Deps
	hovered string
	logger  *slog.Logger
}

func NewController(deps Deps, logger *slog.Logger) *Controller {
	return &Controller{
		Deps:   deps,
		logger: logger.With("component", "interaction-controller"),
	}
}

// Attach subscribes the enter, leave and click reactions on every feature.
func (c *Controller) Attach() error {
	for _, f := range c.Layer.Features() {
		if err := c.Layer.On(f.Name, boundary.PointerEnter, c.onEnter); err != nil {
			return err
		}
		if err := c.Layer.On(f.Name, boundary.PointerLeave, c.onLeave); err != nil {
			return err
		}
		if err := c.Layer.On(f.Name, boundary.Click, c.onClickEvent); err != nil {
			return err
		}
	}
	c.logger.Debug("handlers attached", "features", c.Layer.Len())
	return nil
}

// Enter delivers a pointer-enter event to the named feature.
func (c *Controller) Enter(name string, engine boundary.Engine) error {
	return c.Layer.Dispatch(name, boundary.Event{Type: boundary.PointerEnter, Engine: engine})
}

// Leave delivers a pointer-leave event to the named feature.
func (c *Controller) Leave(name string, engine boundary.Engine) error {
	return c.Layer.Dispatch(name, boundary.Event{Type: boundary.PointerLeave, Engine: engine})
}

// Click delivers a click at latlng to the named feature.
func (c *Controller) Click(name string, latlng orb.Point, engine boundary.Engine) error {
	return c.Layer.Dispatch(name, boundary.Event{Type: boundary.Click, LatLng: latlng, Engine: engine})
}

// ClickAt hit-tests latlng and clicks the topmost country there.
func (c *Controller) ClickAt(latlng orb.Point, engine boundary.Engine) (string, error) {
	f, ok := c.Layer.HitTest(latlng)
	if !ok {
		return "", ErrNoCountry
	}
	return f.Name, c.Click(f.Name, latlng, engine)
}

// Hovered returns the name of the highlighted feature, if any.
func (c *Controller) Hovered() (string, bool) {
	return c.hovered, c.hovered != ""
}

func (c *Controller) onEnter(ev boundary.Event) {
	metrics.FeatureEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	name := ev.Feature.Name

	// a missed leave must not leave two features highlighted
	if c.hovered != "" && c.hovered != name {
		if err := c.Layer.ResetStyle(c.hovered); err != nil {
			c.logger.Error("failed to reset previous highlight", "feature", c.hovered, "error", err)
		}
	}

	if err := c.Layer.SetStyle(name, boundary.HighlightStyle); err != nil {
		c.logger.Error("failed to highlight feature", "feature", name, "error", err)
		return
	}
	c.hovered = name

	if !ev.Engine.SupportsReorder() {
		c.logger.Debug("engine cannot raise features", "engine", ev.Engine.Name)
		return
	}
	if err := c.Layer.BringToFront(name); err != nil {
		c.logger.Error("failed to raise feature", "feature", name, "error", err)
	}
}

func (c *Controller) onLeave(ev boundary.Event) {
	metrics.FeatureEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	name := ev.Feature.Name

	if err := c.Layer.ResetStyle(name); err != nil {
		c.logger.Error("failed to reset feature style", "feature", name, "error", err)
		return
	}
	if c.hovered == name {
		c.hovered = ""
	}
}

func (c *Controller) onClickEvent(ev boundary.Event) {
	metrics.FeatureEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	if err := c.onClick(ev); err != nil {
		c.logger.Error("click handling incomplete", "feature", ev.Feature.Name, "error", err)
	}
}

// onClick shows the popup, narrates the fact and draws the outline. Popup
// and narration always happen before the canvas is touched.
func (c *Controller) onClick(ev boundary.Event) error {
	name := ev.Feature.Name

	fact, ok := c.Facts.Lookup(name)
	if ok {
		metrics.FactLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.FactLookupsTotal.WithLabelValues("miss").Inc()
	}

	c.View.OpenPopup(viewport.NewTitledPopup(types.CoordsFromPoint(ev.LatLng), name, PopupText(fact, ok)))

	if ok && fact.Description != "" {
		c.Narrator.Speak(fact.Description)
		metrics.NarrationsTotal.WithLabelValues("requested").Inc()
	}

	surface, found := c.Surfaces.Get(c.SurfaceID)
	if !found {
		metrics.CanvasDrawsTotal.WithLabelValues("no_surface").Inc()
		return fmt.Errorf("%w: %s", canvas.ErrSurfaceNotFound, c.SurfaceID)
	}

	if err := c.Projector.Draw(surface, ev.Feature.Geometry); err != nil {
		if errors.Is(err, canvas.ErrUnsupportedGeometry) {
			// already logged by the projector
			metrics.CanvasDrawsTotal.WithLabelValues("unsupported").Inc()
			return nil
		}
		metrics.CanvasDrawsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.CanvasDrawsTotal.WithLabelValues("ok").Inc()

	c.logger.Info("country selected", "feature", name, "has_fact", ok)
	return nil
}

// PopupText is the popup body for a country: its fact, or NoFactText.
func PopupText(fact facts.Fact, ok bool) string {
	if !ok {
		return NoFactText
	}
	return fact.Description
}
