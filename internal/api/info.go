package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type InfoHandler struct {
	cobrand     string
	dataDir     string
	pinPrefix   string
	mapsEnabled bool
	dbOK        bool
}

func NewInfoHandler(cobrand, dataDir, pinPrefix string, mapsEnabled, dbOK bool) *InfoHandler {
	return &InfoHandler{cobrand: cobrand, dataDir: dataDir, pinPrefix: pinPrefix, mapsEnabled: mapsEnabled, dbOK: dbOK}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name        string `json:"name" doc:"Service name"`
	Version     string `json:"version" doc:"Service version"`
	Cobrand     string `json:"cobrand" doc:"Cobrand whose layers are served" example:"bathnes"`
	DataDir     string `json:"data_dir" doc:"Data directory path"`
	PinPrefix   string `json:"pin_prefix" doc:"Image path prefix for map pins" example:"/i/pin"`
	MapsEnabled bool   `json:"maps_enabled" doc:"Whether asset layers were registered"`
	DB          bool   `json:"db" doc:"Whether the registration ledger is available"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:        "plat-assets",
		Version:     "0.1.0",
		Cobrand:     h.cobrand,
		DataDir:     h.dataDir,
		PinPrefix:   h.pinPrefix,
		MapsEnabled: h.mapsEnabled,
		DB:          h.dbOK,
	}}, nil
}
