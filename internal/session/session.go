// Package session owns one map session: the viewport, the country layer,
// the fact table and the adapters that react to the user. All state
// changes go through the session lock.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"history-map/internal/boundary"
	"history-map/internal/canvas"
	"history-map/internal/config"
	"history-map/internal/facts"
	"history-map/internal/interaction"
	"history-map/internal/location"
	"history-map/internal/metrics"
	"history-map/internal/narration"
	"history-map/internal/providers/geoip"
	"history-map/internal/providers/openstreetmap"
	"history-map/internal/resource"
	"history-map/internal/timezone"
	"history-map/internal/types"
	"history-map/internal/viewport"
)

// BoundsPadding is the fraction the layer bounds grow by to form the max
// bounds of the view.
const BoundsPadding = 0.1

var (
	ErrDataLoad = errors.New("failed to load map data")
	ErrNoLayer  = errors.New("country layer not loaded")
)

// Option overrides a collaborator the session would otherwise build from
// configuration.
type Option func(*Session)

// WithFetcher replaces the resource fetcher.
func WithFetcher(f facts.Fetcher) Option {
	return func(s *Session) { s.fetcher = f }
}

// WithGeolocator replaces the geolocation capability.
func WithGeolocator(g location.Geolocator) Option {
	return func(s *Session) { s.geolocator = g }
}

// WithSpeaker replaces the speech capability.
func WithSpeaker(sp narration.Speaker) Option {
	return func(s *Session) { s.speaker = sp }
}

// WithLocationOptions sets the marker enrichment options.
func WithLocationOptions(opts ...location.Option) Option {
	return func(s *Session) { s.locationOpts = opts }
}

// Session is the application context object.
type Session struct {
	mu sync.Mutex

	cfg        *config.Config
	view       *viewport.Viewport
	layer      *boundary.Layer
	facts      *facts.Store
	controller *interaction.Controller
	location   *location.Service
	narration  *narration.Adapter
	surfaces   *canvas.Registry
	projector  *canvas.Projector
	fetcher    facts.Fetcher

	geolocator   location.Geolocator
	speaker      narration.Speaker
	locationOpts []location.Option
	closers      []io.Closer

	loadErr error
	logger  *slog.Logger
}

// New builds a session from cfg. The country layer is not loaded until
// Init is called. ctx bounds background workers such as the speech queue.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:       cfg,
		surfaces:  canvas.NewRegistry(),
		projector: canvas.NewProjector(logger),
		logger:    logger.With("component", "session"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = resource.NewFetcher(logger)
	}

	vo := viewport.DefaultOptions()
	vo.ThemeToggle = cfg.Map.ThemeToggle
	if cfg.Map.ViewportWidth > 0 && cfg.Map.ViewportHeight > 0 {
		vo.Width, vo.Height = cfg.Map.ViewportWidth, cfg.Map.ViewportHeight
	}
	if cfg.Map.TileURL != "" {
		vo.TileLayer.URL = cfg.Map.TileURL
	}
	if cfg.Map.Attribution != "" {
		vo.TileLayer.Attribution = cfg.Map.Attribution
	}
	s.view = viewport.New(vo)

	s.surfaces.Register(cfg.Canvas.ID, canvas.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height))

	if s.speaker == nil {
		s.speaker = speakerFromConfig(ctx, cfg.Narration, logger)
	}
	s.narration = narration.NewAdapter(s.speaker, logger)

	if s.geolocator == nil {
		g, err := s.geolocatorFromConfig(cfg.Location, logger)
		if err != nil {
			return nil, err
		}
		s.geolocator = g
	}
	if s.locationOpts == nil {
		s.locationOpts = locationOptionsFromConfig(cfg.Location, logger)
	}
	s.location = location.NewService(s.geolocator, s.view, logger, s.locationOpts...)

	return s, nil
}

func speakerFromConfig(ctx context.Context, cfg config.NarrationConfig, logger *slog.Logger) narration.Speaker {
	if cfg.Command == "" {
		return narration.Unsupported{}
	}
	return narration.NewCommandSpeaker(ctx, cfg.Command, cfg.Args, cfg.QueueSize, logger)
}

func (s *Session) geolocatorFromConfig(cfg config.LocationConfig, logger *slog.Logger) (location.Geolocator, error) {
	switch cfg.Provider {
	case "geoip":
		client, err := geoip.Open(cfg.GeoIPDatabase, logger)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client)
		return location.NewIP(client), nil
	case "reported":
		return location.Reported{}, nil
	case "none", "":
		return location.Unsupported{}, nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", cfg.Provider)
	}
}

func locationOptionsFromConfig(cfg config.LocationConfig, logger *slog.Logger) []location.Option {
	var opts []location.Option
	if cfg.Timezone {
		tz, err := timezone.NewService()
		if err != nil {
			logger.Warn("timezone lookup disabled", "error", err)
		} else {
			opts = append(opts, location.WithTimezone(tz))
		}
	}
	if cfg.ReverseGeocode {
		opts = append(opts, location.WithReverseGeocoder(openstreetmap.NewClient(logger)))
	}
	return opts
}

// Init fetches the boundary and fact resources in parallel. When both
// arrive the country layer is built, the view fitted to it and the
// interaction handlers attached. If either fails the map stays tile-only
// and the error wraps ErrDataLoad.
func (s *Session) Init(ctx context.Context) error {
	var (
		fc    *geojson.FeatureCollection
		store *facts.Store
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.fetcher.Fetch(gctx, s.cfg.Data.Boundaries)
		if err != nil {
			return fmt.Errorf("failed to fetch boundaries: %w", err)
		}
		fc, err = boundary.Decode(b)
		return err
	})
	g.Go(func() error {
		var err error
		store, err = facts.Load(gctx, s.cfg.Data.Facts, s.fetcher)
		return err
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		err = s.attach(fc, store)
	}
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %v", ErrDataLoad, err)
		metrics.DataLoadFailuresTotal.Inc()
		s.logger.Error("error loading data", "error", err)
		return s.loadErr
	}

	s.logger.Info("map data loaded", "countries", s.layer.Len(), "facts", s.facts.Len())
	return nil
}

func (s *Session) attach(fc *geojson.FeatureCollection, store *facts.Store) error {
	layer, err := boundary.NewLayer(fc, boundary.DefaultStyle, s.logger)
	if err != nil {
		return err
	}

	controller := interaction.NewController(interaction.Deps{
		Layer:     layer,
		Facts:     store,
		View:      s.view,
		Narrator:  s.narration,
		Projector: s.projector,
		Surfaces:  s.surfaces,
		SurfaceID: s.cfg.Canvas.ID,
	}, s.logger)
	if err := controller.Attach(); err != nil {
		return err
	}

	if layer.Len() > 0 {
		bounds := layer.Bounds()
		s.view.SetMaxBounds(boundary.PadBound(bounds, BoundsPadding))
		s.view.FitBounds(bounds)
	}

	s.layer = layer
	s.facts = store
	s.controller = controller
	s.loadErr = nil
	return nil
}

// MapState is the JSON view of the session.
type MapState struct {
	viewport.State
	LayerLoaded          bool   `json:"layerLoaded"`
	LoadError            string `json:"loadError,omitempty"`
	Hovered              string `json:"hovered,omitempty"`
	NarrationAvailable   bool   `json:"narrationAvailable"`
	GeolocationAvailable bool   `json:"geolocationAvailable"`
}

// State returns a snapshot of the map.
func (s *Session) State() MapState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := MapState{
		State:                s.view.State(),
		LayerLoaded:          s.layer != nil,
		NarrationAvailable:   s.narration.IsAvailable(),
		GeolocationAvailable: s.location.IsAvailable(),
	}
	if s.loadErr != nil {
		st.LoadError = s.loadErr.Error()
	}
	if s.controller != nil {
		st.Hovered, _ = s.controller.Hovered()
	}
	return st
}

// Countries returns the country layer as GeoJSON in paint order.
func (s *Session) Countries() (*geojson.FeatureCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.layer == nil {
		return nil, ErrNoLayer
	}
	return s.layer.FeatureCollection(), nil
}

// Fact looks up the fact for a country. It returns ErrNoLayer when the
// map data never loaded.
func (s *Session) Fact(name string) (facts.Fact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.facts == nil {
		return facts.Fact{}, false, ErrNoLayer
	}
	f, ok := s.facts.Lookup(name)
	return f, ok, nil
}

// Enter highlights the named country.
func (s *Session) Enter(name, userAgent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil {
		return ErrNoLayer
	}
	return s.controller.Enter(name, boundary.EngineFromUserAgent(userAgent))
}

// Leave resets the named country to the default style.
func (s *Session) Leave(name, userAgent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil {
		return ErrNoLayer
	}
	return s.controller.Leave(name, boundary.EngineFromUserAgent(userAgent))
}

// Click selects the named country at the given coordinate and returns the
// popup it opened.
func (s *Session) Click(name string, at types.Coords, userAgent string) (viewport.Popup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil {
		return viewport.Popup{}, ErrNoLayer
	}
	if err := s.controller.Click(name, at.Point(), boundary.EngineFromUserAgent(userAgent)); err != nil {
		return viewport.Popup{}, err
	}
	p, _ := s.view.Popup()
	return p, nil
}

// ClickAt selects whichever country lies under the coordinate.
func (s *Session) ClickAt(at types.Coords, userAgent string) (string, viewport.Popup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller == nil {
		return "", viewport.Popup{}, ErrNoLayer
	}
	name, err := s.controller.ClickAt(at.Point(), boundary.EngineFromUserAgent(userAgent))
	if err != nil {
		return "", viewport.Popup{}, err
	}
	p, _ := s.view.Popup()
	return name, p, nil
}

// WriteCanvasPNG encodes the surface with the given id.
func (s *Session) WriteCanvasPNG(id string, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	surface, ok := s.surfaces.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", canvas.ErrSurfaceNotFound, id)
	}
	enc, ok := surface.(canvas.PNGEncoder)
	if !ok {
		return fmt.Errorf("surface %s cannot be encoded", id)
	}
	return enc.EncodePNG(w)
}

// Locate finds the user and replaces the location marker. The lookup runs
// outside the session lock; only placing the marker holds it.
func (s *Session) Locate(ctx context.Context, req location.Request) (viewport.Marker, error) {
	fix, err := s.location.Resolve(ctx, req)
	if err != nil {
		if errors.Is(err, location.ErrUnsupportedCapability) {
			metrics.LocateTotal.WithLabelValues("unsupported").Inc()
		} else {
			metrics.LocateTotal.WithLabelValues("error").Inc()
		}
		return viewport.Marker{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.LocateTotal.WithLabelValues("ok").Inc()
	return s.location.Place(fix), nil
}

// RemoveLocation removes the user marker.
func (s *Session) RemoveLocation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location.RemoveMarker()
}

// ToggleTheme switches the page theme.
func (s *Session) ToggleTheme() (viewport.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ToggleTheme()
}

// Close releases resources opened from configuration.
func (s *Session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
