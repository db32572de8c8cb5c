package services

import (
	"context"
	"testing"

	"meetup-point-service/internal/adapters/mock"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHTML(t *testing.T) {
	tests := map[string]string{
		"Head <b>north</b> on <b>Main St</b>":                                                  "Head north on Main St",
		`Turn <b>left</b><div style="font-size:0.9em">Destination will be on the right</div>`: "Turn left Destination will be on the right",
		"Take exit &amp; merge":                                                                "Take exit & merge",
		"plain":                                                                                "plain",
		"":                                                                                     "",
	}

	for in, want := range tests {
		assert.Equal(t, want, stripHTML(in), in)
	}
}

func TestRenderRoute(t *testing.T) {
	provider := mock.NewMapsProvider()
	provider.Routes["Home|Beta address"] = &domain.Route{
		Origin:          "Home",
		Destination:     "Beta address",
		EncodedPolyline: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		Steps: []domain.RouteStep{
			{HTMLInstruction: "Head <b>north</b>", DurationSeconds: 3600},
			{HTMLInstruction: "Turn <b>right</b>", DurationSeconds: 125},
		},
	}
	scene := render.NewScene()

	r, err := RenderRoute(context.Background(), provider, scene, domain.RouteRequest{Origin: " Home ", Destination: "Beta address"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Head north", "Turn right"}, r.Instructions())
	assert.Equal(t, "Head <b>north</b>", r.Steps[0].HTMLInstruction)
	assert.Equal(t, 3725, r.TotalDurationSeconds)
	assert.Equal(t, "1 hrs 2 mins 5 secs", r.DurationText())

	require.Len(t, r.Path, 3)
	assert.InDelta(t, 38.5, r.Path[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, r.Path[0].Lng, 1e-5)
	assert.InDelta(t, 43.252, r.Path[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, r.Path[2].Lng, 1e-5)

	snap := scene.Snapshot()
	require.NotNil(t, snap.Route)
	assert.Equal(t, "Home", snap.Route.Origin)
}

func TestRenderRouteFailureKeepsPreviousRoute(t *testing.T) {
	provider := mock.NewMapsProvider()
	scene := render.NewScene()
	scene.SetRoute(&domain.Route{Origin: "previous"})

	_, err := RenderRoute(context.Background(), provider, scene, domain.RouteRequest{Origin: "A", Destination: "B"})
	require.Error(t, err)
	assert.True(t, domain.IsProviderError(err, domain.KindRouting))
	assert.Equal(t, "previous", scene.Snapshot().Route.Origin)
}

func TestRenderRouteRequiresEndpoints(t *testing.T) {
	_, err := RenderRoute(context.Background(), mock.NewMapsProvider(), render.NewScene(), domain.RouteRequest{Origin: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
