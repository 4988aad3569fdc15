// Package viewer contains Datastar SSE handlers for the asset panel.
package viewer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/humastar"
	"github.com/joeblew999/plat-assets/internal/service"
	"github.com/joeblew999/plat-assets/internal/templates"
)

type AssetHandler struct {
	humastar.Handler
	assets *service.AssetService
	bus    *service.EventBus
}

func NewAssetHandler(assets *service.AssetService, bus *service.EventBus, renderer *templates.Renderer) *AssetHandler {
	return &AssetHandler{
		Handler: humastar.Handler{Renderer: renderer},
		assets:  assets,
		bus:     bus,
	}
}

func (h *AssetHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/viewer/assets", h.ListAssets, huma.OperationTags("viewer"))
	huma.Post(api, "/api/v1/viewer/assets/{id}/inspect", h.Inspect, huma.OperationTags("viewer"))
	huma.Get(api, "/api/v1/viewer/events", h.Events, huma.OperationTags("viewer"))
}

func (h *AssetHandler) ListAssets(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		sse.Patch(h.renderAssetList(), "#asset-list")
	}), nil
}

type InspectInput struct {
	ID      string `path:"id" doc:"Asset layer ID"`
	RawBody []byte
}

// Inspect styles the feature held in the "feature" signal against one
// layer and shows the result under the layer's card.
func (h *AssetHandler) Inspect(ctx context.Context, input *InspectInput) (*huma.StreamResponse, error) {
	signals, err := humastar.ParseSignals(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid request data: " + err.Error())
	}
	layer, ok := h.assets.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound(fmt.Sprintf("asset layer %q not found", input.ID))
	}
	props := geojson.Properties(signals.Object("feature"))

	return h.Stream(func(sse humastar.SSE) {
		html, err := h.Renderer.Render("inspect-result", inspectResult(layer, props))
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Patch(html, "#inspect-"+layer.ID)
	}), nil
}

// Events streams registrations as they happen and refreshes the list.
func (h *AssetHandler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		ch := h.bus.Subscribe()
		defer h.bus.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				if ev.Resource == "assets" {
					sse.Patch(h.renderAssetList(), "#asset-list")
				}
				if html, err := h.Renderer.Render("asset-event", ev); err == nil {
					sse.Patch(html, "#asset-events")
				}
				sse.DispatchCustomEvent("asset-changed", map[string]any{
					"resource": ev.Resource, "action": ev.Action, "id": ev.ID,
				})
			}
		}
	}), nil
}

// AssetCard is the template data for one registered layer.
type AssetCard struct {
	ID         string
	Version    int
	Category   string
	Item       string
	TypeName   string
	Format     asset.Format
	Rules      int
	ConfigJSON string
}

func assetCard(layer asset.LayerConfig) AssetCard {
	configJSON, _ := json.Marshal(layer)
	return AssetCard{
		ID:         layer.ID,
		Version:    layer.Version,
		Category:   layer.Category,
		Item:       layer.Item,
		TypeName:   layer.TypeName(),
		Format:     layer.Format,
		Rules:      len(layer.Style),
		ConfigJSON: string(configJSON),
	}
}

func (h *AssetHandler) renderAssetList() string {
	layers := h.assets.Layers()
	items := make([]any, len(layers))
	for i, l := range layers {
		items[i] = assetCard(l)
	}
	return h.RenderList("asset-card", items, "No asset layers", "Mapping is disabled or nothing was registered")
}

// InspectResult is the template data for an inspected feature.
type InspectResult struct {
	Rule    string
	Fill    string
	Radius  float64
	Title   string
	Details string
}

func inspectResult(layer asset.LayerConfig, props geojson.Properties) InspectResult {
	res := service.Classify(layer, &geojson.Feature{Properties: props})
	out := InspectResult{
		Rule:   res.Style.Rule,
		Fill:   res.Style.Symbolizer.Fill,
		Radius: res.Style.Symbolizer.PointRadius,
		Title:  res.Style.Symbolizer.Title,
	}
	for _, k := range layer.Attributes.Keys() {
		if layer.Attributes[k].IsDerived() {
			out.Details = res.Attributes[k]
			break
		}
	}
	return out
}
