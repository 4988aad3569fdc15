package asset

import (
	"context"

	"github.com/joeblew999/plat-assets/internal/ctxlog"
)

// Registrar adds a layer to the active map. Registration is
// fire-and-forget; the registrar owns the config afterwards.
type Registrar interface {
	RegisterAssetLayer(cfg LayerConfig)
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(cfg LayerConfig)

// RegisterAssetLayer calls f(cfg).
func (f RegistrarFunc) RegisterAssetLayer(cfg LayerConfig) { f(cfg) }

// Platform is what the host page tells us about itself.
type Platform struct {
	MapsEnabled bool   // mapping is supported on this page
	PinPrefix   string // image path prefix for map pins
}

// Setup registers each layer in order and returns how many were
// registered. Nothing is registered when the platform has no maps.
func Setup(ctx context.Context, p Platform, r Registrar, layers ...LayerConfig) int {
	log := ctxlog.FromContext(ctx)
	if !p.MapsEnabled {
		log.Info("maps not supported, skipping asset registration")
		return 0
	}

	for _, l := range layers {
		r.RegisterAssetLayer(l.Clone())
		log.Info("registered asset layer",
			"id", l.ID, "version", l.Version, "typename", l.TypeName(), "category", l.Category)
	}
	return len(layers)
}
