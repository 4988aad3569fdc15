package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/ctxlog"
)

// ErrInvalidFeatures is returned by Classify for a missing collection or
// a null entry in its features array.
var ErrInvalidFeatures = errors.New("invalid feature collection")

// Recorder persists registrations outside the process.
type Recorder interface {
	Record(ctx context.Context, seq int, layer asset.LayerConfig) error
}

// AssetService is the map's registrar: it owns every registered layer and
// answers questions about how features render on them.
type AssetService struct {
	ctx      context.Context
	bus      *EventBus
	recorder Recorder

	mu     sync.RWMutex
	order  []string
	layers map[string]asset.LayerConfig
}

// NewAssetService creates an empty registrar. bus and recorder may be nil.
func NewAssetService(ctx context.Context, bus *EventBus, recorder Recorder) *AssetService {
	return &AssetService{
		ctx:      ctx,
		bus:      bus,
		recorder: recorder,
		layers:   make(map[string]asset.LayerConfig),
	}
}

// RegisterAssetLayer implements asset.Registrar. Registering an ID again
// replaces the layer but keeps its original position.
func (s *AssetService) RegisterAssetLayer(cfg asset.LayerConfig) {
	s.mu.Lock()
	if _, exists := s.layers[cfg.ID]; !exists {
		s.order = append(s.order, cfg.ID)
	}
	s.layers[cfg.ID] = cfg
	seq := s.seqLocked(cfg.ID)
	s.mu.Unlock()

	if s.recorder != nil {
		if err := s.recorder.Record(s.ctx, seq, cfg); err != nil {
			ctxlog.FromContext(s.ctx).Warn("recording registration failed", "id", cfg.ID, "err", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(Event{Resource: "assets", Action: "registered", ID: cfg.ID})
	}
}

func (s *AssetService) seqLocked(id string) int {
	for i, v := range s.order {
		if v == id {
			return i + 1
		}
	}
	return 0
}

// List returns the registered layers in registration order.
func (s *AssetService) List() []Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Registration, 0, len(s.order))
	for i, id := range s.order {
		out = append(out, Registration{Seq: i + 1, Layer: s.layers[id].Clone()})
	}
	return out
}

// Layers returns the registered configs in registration order.
func (s *AssetService) Layers() []asset.LayerConfig {
	regs := s.List()
	out := make([]asset.LayerConfig, len(regs))
	for i, r := range regs {
		out[i] = r.Layer
	}
	return out
}

// Get returns a layer by ID.
func (s *AssetService) Get(id string) (asset.LayerConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layer, ok := s.layers[id]
	if !ok {
		return asset.LayerConfig{}, false
	}
	return layer.Clone(), true
}

// Style picks the rule the layer applies to a feature. Layers without
// rules return an empty result.
func (s *AssetService) Style(id string, props geojson.Properties) (StyleResult, error) {
	layer, ok := s.Get(id)
	if !ok {
		return StyleResult{}, fmt.Errorf("asset layer %q not found", id)
	}
	return styleFor(layer, props), nil
}

// Attributes extracts the layer's report attributes from a feature.
func (s *AssetService) Attributes(id string, props geojson.Properties) (map[string]string, error) {
	layer, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("asset layer %q not found", id)
	}
	return layer.Attributes.Extract(props), nil
}

// Classify styles and extracts attributes for every feature in fc.
func (s *AssetService) Classify(id string, fc *geojson.FeatureCollection) ([]FeatureResult, error) {
	layer, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("asset layer %q not found", id)
	}
	if fc == nil {
		return nil, fmt.Errorf("%w: nil feature collection", ErrInvalidFeatures)
	}

	results := make([]FeatureResult, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil {
			return nil, fmt.Errorf("%w: feature %d is null", ErrInvalidFeatures, i)
		}
		results = append(results, Classify(layer, f))
	}
	return results, nil
}

// Classify applies one layer's rules to a single feature. A nil feature
// is treated as one without properties.
func Classify(layer asset.LayerConfig, f *geojson.Feature) FeatureResult {
	var props geojson.Properties
	if f != nil {
		props = f.Properties
	}
	style := styleFor(layer, props)
	return FeatureResult{
		ID:         asset.PropString(props, layer.IDField),
		Visible:    len(layer.Style) == 0 || style.Rule != "",
		Style:      style,
		Attributes: layer.Attributes.Extract(props),
	}
}

func styleFor(layer asset.LayerConfig, props geojson.Properties) StyleResult {
	rule, ok := layer.Style.Match(props)
	if !ok {
		return StyleResult{}
	}
	return StyleResult{Rule: rule.Name, Symbolizer: rule.Symbolizer.Render(props)}
}
