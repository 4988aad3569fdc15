package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/cobrand/bathnes"
	"github.com/joeblew999/plat-assets/internal/service"
)

func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	cfg := huma.DefaultConfig("plat-assets test", "1.0.0")
	cfg.Transformers = append(cfg.Transformers, LinkTransformer())
	_, api := humatest.New(t, cfg)

	svc := service.NewAssetService(context.Background(), nil, nil)
	asset.Setup(context.Background(), asset.Platform{MapsEnabled: true}, svc,
		bathnes.Layers(bathnes.Defaults(), 0)...)

	RegisterRoutes(api, &Services{Asset: svc, Defaults: bathnes.Defaults()})
	NewInfoHandler("bathnes", t.TempDir(), "/i/pin", true, false).RegisterRoutes(api)
	NewDBHandler(nil).RegisterRoutes(api)
	return api
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", decode[HealthBody](t, resp.Body.Bytes()).Status)
	assert.Contains(t, resp.Header().Values("Link"), `</api/v1/assets>; rel="assets"`)
}

func TestListAssets(t *testing.T) {
	api := newTestAPI(t)
	resp := api.Get("/api/v1/assets")
	require.Equal(t, http.StatusOK, resp.Code)

	regs := decode[[]service.Registration](t, resp.Body.Bytes())
	require.Len(t, regs, 2)
	assert.Equal(t, "gritbins", regs[0].Layer.ID)
	assert.Equal(t, "Gritbins", regs[0].Layer.HTTPOptions.Params["TYPENAME"])
	assert.Equal(t, "streetlights", regs[1].Layer.ID)
	require.Len(t, regs[1].Layer.Style, 2)
	assert.Equal(t, "B&NES", regs[1].Layer.Style[0].Filter.Pattern)
	assert.True(t, regs[1].Layer.Style[1].Filter.Negate)
	assert.Equal(t, "asset_details", regs[1].Layer.Attributes["asset_details"].Derived)
}

func TestGetAsset(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/v1/assets/gritbins")
	require.Equal(t, http.StatusOK, resp.Code)
	layer := decode[asset.LayerConfig](t, resp.Body.Bytes())
	assert.Equal(t, "grit bin", layer.Item)
	assert.Contains(t, resp.Header().Values("Link"), `</api/v1/assets/gritbins>; rel="self"`)

	resp = api.Get("/api/v1/assets/potholes")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetDefaults(t *testing.T) {
	api := newTestAPI(t)
	resp := api.Get("/api/v1/defaults")
	require.Equal(t, http.StatusOK, resp.Code)

	layer := decode[asset.LayerConfig](t, resp.Body.Bytes())
	assert.Equal(t, bathnes.WFSURL, layer.HTTPOptions.URL)
	assert.NotContains(t, layer.HTTPOptions.Params, "TYPENAME")
	assert.Equal(t, "WFS", layer.HTTPOptions.Params["SERVICE"])
}

func TestStyleFeature(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/v1/assets/streetlights/style", map[string]any{
		"properties": map[string]any{"ownername": "B&NES Highways", "unitdescription": "Column", "unitno": "12"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	res := decode[service.StyleResult](t, resp.Body.Bytes())
	assert.Equal(t, "owned", res.Rule)
	assert.Equal(t, "Column 12", res.Symbolizer.Title)

	resp = api.Post("/api/v1/assets/streetlights/style", map[string]any{
		"properties": map[string]any{"unitno": "12"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "default", decode[service.StyleResult](t, resp.Body.Bytes()).Rule)

	resp = api.Post("/api/v1/assets/potholes/style", map[string]any{"properties": map[string]any{}})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExtractAttributes(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/v1/assets/streetlights/attributes", map[string]any{
		"properties": map[string]any{"feature_id": "SL9", "street": "Milsom St", "ownername": "B&NES"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode[AttributesBody](t, resp.Body.Bytes())
	assert.Equal(t, "SL9", body.Attributes["feature_id"])
	lines := strings.Split(body.Attributes["asset_details"], "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "street: Milsom St", lines[0])
	assert.Equal(t, "owner: B&NES", lines[1])
}

func TestClassifyFeatures(t *testing.T) {
	api := newTestAPI(t)

	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[375000,164000]},
		 "properties":{"feature_no":"101","ownername":"B&NES"}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[375100,164100]},
		 "properties":{"feature_no":"102"}}]}`

	resp := api.Post("/api/v1/assets/streetlights/classify",
		"Content-Type: application/geo+json", strings.NewReader(fc))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	results := decode[[]service.FeatureResult](t, resp.Body.Bytes())
	require.Len(t, results, 2)
	assert.Equal(t, "101", results[0].ID)
	assert.Equal(t, "owned", results[0].Style.Rule)
	assert.Equal(t, "default", results[1].Style.Rule)

	resp = api.Post("/api/v1/assets/streetlights/classify",
		"Content-Type: application/geo+json", strings.NewReader("not json"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.Post("/api/v1/assets/streetlights/classify",
		"Content-Type: application/geo+json",
		strings.NewReader(`{"type":"FeatureCollection","features":[null]}`))
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestInfo(t *testing.T) {
	api := newTestAPI(t)
	resp := api.Get("/api/v1/info")
	require.Equal(t, http.StatusOK, resp.Code)

	info := decode[InfoBody](t, resp.Body.Bytes())
	assert.Equal(t, "bathnes", info.Cobrand)
	assert.True(t, info.MapsEnabled)
	assert.False(t, info.DB)
}

func TestDBRoutesWithoutDatabase(t *testing.T) {
	api := newTestAPI(t)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/tables").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/registrations").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		api.Post("/api/v1/query", map[string]any{"query": "SELECT 1"}).Code)
}
