// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/service"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Asset    *service.AssetService
	Defaults asset.LayerConfig
}

// Types

type IDInput struct {
	ID string `path:"id" doc:"Asset layer ID" example:"streetlights"`
}

type LayerOutput struct {
	Body asset.LayerConfig
}

type RegistrationsOutput struct {
	Body []service.Registration
}

// FeatureBody carries one feature's attribute bag.
type FeatureBody struct {
	Properties map[string]any `json:"properties" doc:"Feature attributes"`
}

type FeatureInput struct {
	IDInput
	Body FeatureBody
}

type AttributesBody struct {
	Attributes map[string]string `json:"attributes" doc:"Extracted report attributes"`
}

type ClassifyInput struct {
	IDInput
	RawBody []byte `contentType:"application/geo+json" doc:"GeoJSON FeatureCollection"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds the REST handlers.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterRoutes registers every REST route on api.
func RegisterRoutes(api huma.API, svc *Services) {
	h := NewAPIHandler(svc)
	h.RegisterHealth(api)
	h.RegisterAssets(api)
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterAssets registers the asset layer routes.
func (h *APIHandler) RegisterAssets(api huma.API) {
	huma.Get(api, "/api/v1/assets", h.GetAssets, huma.OperationTags("assets"))
	huma.Get(api, "/api/v1/assets/{id}", h.GetAsset, huma.OperationTags("assets"))
	huma.Post(api, "/api/v1/assets/{id}/style", h.StyleFeature, huma.OperationTags("assets"))
	huma.Post(api, "/api/v1/assets/{id}/attributes", h.ExtractAttributes, huma.OperationTags("assets"))
	huma.Post(api, "/api/v1/assets/{id}/classify", h.ClassifyFeatures, huma.OperationTags("assets"))
	huma.Get(api, "/api/v1/defaults", h.GetDefaults, huma.OperationTags("assets"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) GetAssets(ctx context.Context, input *struct{}) (*RegistrationsOutput, error) {
	if h.svc == nil || h.svc.Asset == nil {
		return &RegistrationsOutput{Body: []service.Registration{}}, nil
	}
	return &RegistrationsOutput{Body: h.svc.Asset.List()}, nil
}

func (h *APIHandler) GetAsset(ctx context.Context, input *IDInput) (*LayerOutput, error) {
	if h.svc == nil || h.svc.Asset == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	layer, ok := h.svc.Asset.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("asset layer not found")
	}
	return &LayerOutput{Body: layer}, nil
}

func (h *APIHandler) GetDefaults(ctx context.Context, input *struct{}) (*LayerOutput, error) {
	if h.svc == nil {
		return &LayerOutput{}, nil
	}
	return &LayerOutput{Body: h.svc.Defaults.Clone()}, nil
}

func (h *APIHandler) StyleFeature(ctx context.Context, input *FeatureInput) (*struct{ Body service.StyleResult }, error) {
	if h.svc == nil || h.svc.Asset == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	res, err := h.svc.Asset.Style(input.ID, geojson.Properties(input.Body.Properties))
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &struct{ Body service.StyleResult }{Body: res}, nil
}

func (h *APIHandler) ExtractAttributes(ctx context.Context, input *FeatureInput) (*struct{ Body AttributesBody }, error) {
	if h.svc == nil || h.svc.Asset == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	attrs, err := h.svc.Asset.Attributes(input.ID, geojson.Properties(input.Body.Properties))
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &struct{ Body AttributesBody }{Body: AttributesBody{Attributes: attrs}}, nil
}

func (h *APIHandler) ClassifyFeatures(ctx context.Context, input *ClassifyInput) (*struct{ Body []service.FeatureResult }, error) {
	if h.svc == nil || h.svc.Asset == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	fc, err := geojson.UnmarshalFeatureCollection(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid GeoJSON: " + err.Error())
	}
	results, err := h.svc.Asset.Classify(input.ID, fc)
	if errors.Is(err, service.ErrInvalidFeatures) {
		return nil, huma.Error400BadRequest(err.Error())
	}
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &struct{ Body []service.FeatureResult }{Body: results}, nil
}
