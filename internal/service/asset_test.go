package service

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/cobrand/bathnes"
)

type recorded struct {
	seq int
	id  string
}

type fakeRecorder struct {
	calls []recorded
	err   error
}

func (r *fakeRecorder) Record(ctx context.Context, seq int, layer asset.LayerConfig) error {
	r.calls = append(r.calls, recorded{seq, layer.ID})
	return r.err
}

func newRegistered(t *testing.T) (*AssetService, *EventBus, *fakeRecorder) {
	t.Helper()
	bus := NewEventBus(8)
	rec := &fakeRecorder{}
	svc := NewAssetService(context.Background(), bus, rec)
	n := asset.Setup(context.Background(), asset.Platform{MapsEnabled: true}, svc,
		bathnes.Layers(bathnes.Defaults(), 0)...)
	require.Equal(t, 2, n)
	return svc, bus, rec
}

func TestRegisterAndList(t *testing.T) {
	svc, _, rec := newRegistered(t)

	regs := svc.List()
	require.Len(t, regs, 2)
	assert.Equal(t, 1, regs[0].Seq)
	assert.Equal(t, bathnes.GritBinsID, regs[0].Layer.ID)
	assert.Equal(t, bathnes.StreetLightsID, regs[1].Layer.ID)
	assert.Equal(t, []recorded{{1, bathnes.GritBinsID}, {2, bathnes.StreetLightsID}}, rec.calls)

	layer, ok := svc.Get(bathnes.GritBinsID)
	require.True(t, ok)
	assert.Equal(t, "Gritbins", layer.TypeName())

	_, ok = svc.Get("nope")
	assert.False(t, ok)
}

func TestReRegisterKeepsPosition(t *testing.T) {
	svc, _, _ := newRegistered(t)

	grit := bathnes.GritBinsV1(bathnes.Defaults())
	svc.RegisterAssetLayer(grit)

	regs := svc.List()
	require.Len(t, regs, 2)
	assert.Equal(t, bathnes.GritBinsID, regs[0].Layer.ID)
	assert.Equal(t, 1, regs[0].Layer.Version)
}

func TestGetReturnsCopy(t *testing.T) {
	svc, _, _ := newRegistered(t)

	layer, _ := svc.Get(bathnes.GritBinsID)
	layer.HTTPOptions.Params[asset.ParamTypeName] = "Changed"

	again, _ := svc.Get(bathnes.GritBinsID)
	assert.Equal(t, "Gritbins", again.TypeName())
}

func TestRegisterPublishesEvent(t *testing.T) {
	bus := NewEventBus(4)
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)

	svc := NewAssetService(context.Background(), bus, nil)
	svc.RegisterAssetLayer(asset.LayerConfig{ID: "x"})

	ev := <-ch
	assert.Equal(t, Event{Resource: "assets", Action: "registered", ID: "x"}, ev)
}

func TestRecorderErrorDoesNotBlockRegistration(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	svc := NewAssetService(context.Background(), nil, rec)
	svc.RegisterAssetLayer(asset.LayerConfig{ID: "x"})

	_, ok := svc.Get("x")
	assert.True(t, ok)
}

func TestStyleAndAttributes(t *testing.T) {
	svc, _, _ := newRegistered(t)

	res, err := svc.Style(bathnes.StreetLightsID, geojson.Properties{
		"ownername": "B&NES Highways", "unitdescription": "Column", "unitno": "9",
	})
	require.NoError(t, err)
	assert.Equal(t, "owned", res.Rule)
	assert.Equal(t, "Column 9", res.Symbolizer.Title)
	assert.Equal(t, "#FFFF00", res.Symbolizer.Fill)

	res, err = svc.Style(bathnes.GritBinsID, geojson.Properties{})
	require.NoError(t, err)
	assert.Empty(t, res.Rule)

	_, err = svc.Style("nope", nil)
	assert.Error(t, err)

	attrs, err := svc.Attributes(bathnes.GritBinsID, geojson.Properties{"feature_id": "G7"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"feature_id": "G7"}, attrs)

	_, err = svc.Attributes("nope", nil)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	svc, _, _ := newRegistered(t)

	fc := geojson.NewFeatureCollection()
	owned := geojson.NewFeature(orb.Point{375000, 164000})
	owned.Properties = geojson.Properties{"feature_no": "1", "ownername": "B&NES", "unitno": "1"}
	other := geojson.NewFeature(orb.Point{375010, 164010})
	other.Properties = geojson.Properties{"feature_no": "2", "ownername": "Private"}
	fc.Append(owned)
	fc.Append(other)

	results, err := svc.Classify(bathnes.StreetLightsID, fc)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "1", results[0].ID)
	assert.True(t, results[0].Visible)
	assert.Equal(t, "owned", results[0].Style.Rule)
	assert.Equal(t, "2", results[1].ID)
	assert.Equal(t, "default", results[1].Style.Rule)
	assert.Equal(t, "Private", results[1].Style.Symbolizer.Title)
	assert.Contains(t, results[1].Attributes[bathnes.AssetDetails], "owner: Private")

	_, err = svc.Classify("nope", fc)
	assert.Error(t, err)
}

func TestClassifyRejectsNullFeatures(t *testing.T) {
	svc, _, _ := newRegistered(t)

	_, err := svc.Classify(bathnes.StreetLightsID, nil)
	assert.ErrorIs(t, err, ErrInvalidFeatures)

	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{nil}}
	_, err = svc.Classify(bathnes.StreetLightsID, fc)
	assert.ErrorIs(t, err, ErrInvalidFeatures)

	layer, ok := svc.Get(bathnes.StreetLightsID)
	require.True(t, ok)
	res := Classify(layer, nil)
	assert.Equal(t, "default", res.Style.Rule)
}

func TestEventBusSlowSubscriber(t *testing.T) {
	bus := NewEventBus(1)
	ch := bus.Subscribe()
	bus.Publish(Event{ID: "a"})
	bus.Publish(Event{ID: "b"})

	assert.Equal(t, "a", (<-ch).ID)
	assert.Equal(t, 1, bus.Subscribers())
	bus.Unsubscribe(ch)
	assert.Zero(t, bus.Subscribers())
}
