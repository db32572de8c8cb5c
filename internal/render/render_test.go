package render

import (
	"bytes"
	"strings"
	"testing"

	"meetup-point-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneRenderRemoveAndClear(t *testing.T) {
	s := NewScene()

	m := s.RenderMarker(domain.LatLng{Lat: 1, Lng: 2}, domain.IconCandidate, "Beans", "<h3>Beans</h3>")
	c := s.RenderCircle(domain.LatLng{Lat: 1, Lng: 2}, 1000)
	assert.NotEqual(t, m, c)

	require.True(t, s.Restyle(m, domain.IconWinner))
	snap := s.Snapshot()
	require.Len(t, snap.Markers, 1)
	assert.Equal(t, domain.IconWinner, snap.Markers[0].Icon)
	require.Len(t, snap.Circles, 1)

	assert.True(t, s.Remove(c))
	assert.False(t, s.Remove(c))
	assert.Empty(t, s.Snapshot().Circles)

	s.SetRoute(&domain.Route{Origin: "A"})
	s.Clear()
	assert.True(t, s.Snapshot().Empty())
}

func TestSceneSetRouteReplaces(t *testing.T) {
	s := NewScene()
	s.SetRoute(&domain.Route{Origin: "A"})
	s.SetRoute(&domain.Route{Origin: "B"})

	snap := s.Snapshot()
	require.NotNil(t, snap.Route)
	assert.Equal(t, "B", snap.Route.Origin)

	s.ClearRoute()
	assert.Nil(t, s.Snapshot().Route)
}

func TestSceneReplace(t *testing.T) {
	staging := NewScene()
	staging.RenderMarker(domain.LatLng{}, domain.IconOrigin, "A", "")

	live := NewScene()
	live.RenderMarker(domain.LatLng{}, domain.IconCandidate, "stale", "")
	live.Replace(staging.Snapshot(), 7)

	snap := live.Snapshot()
	assert.Equal(t, uint64(7), snap.Generation)
	require.Len(t, snap.Markers, 1)
	assert.Equal(t, "A", snap.Markers[0].Title)
}

func TestSnapshotRouteIsIndependentOfLiveScene(t *testing.T) {
	r := &domain.Route{
		Origin: "A",
		Steps:  []domain.RouteStep{{Instruction: "Head east"}},
		Path:   []domain.LatLng{{Lat: 1, Lng: 2}},
	}
	s := NewScene()
	s.SetRoute(r)

	snap := s.Snapshot()
	r.Steps[0].Instruction = "Turn back"
	r.Path[0] = domain.LatLng{Lat: 9, Lng: 9}

	assert.Equal(t, "Head east", snap.Route.Steps[0].Instruction)
	assert.Equal(t, domain.LatLng{Lat: 1, Lng: 2}, snap.Route.Path[0])

	snap.Route.Steps[0].Instruction = "Edited"
	live := NewScene()
	live.Replace(snap, 3)
	snap.Route.Steps[0].Instruction = "Edited again"
	assert.Equal(t, "Edited", live.Snapshot().Route.Steps[0].Instruction)
}

func TestCandidateInfoEscapesAndLists(t *testing.T) {
	c := &domain.Candidate{
		Name:    `Bob's <script>alert(1)</script> Cafe`,
		Rating:  4.5,
		Address: "1 Main St",
		Details: &domain.Details{Website: "https://bobs.example"},
		Durations: [2]domain.TravelDuration{
			{Text: "10 mins", Seconds: 600},
			{Text: "1 hour 5 mins", Seconds: 3900},
		},
	}

	got, err := CandidateInfo(c, [2]string{"Home", "Work"})
	require.NoError(t, err)

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "<h6>4.5 / 5</h6>")
	assert.Contains(t, got, `href="https://bobs.example"`)
	assert.Contains(t, got, "<p>1 Main St</p>")
	assert.Contains(t, got, "Travel duration from Home: 10 mins")
	assert.Contains(t, got, "Travel duration from Work: 1 hour 5 mins")
}

func TestCandidateInfoWithoutDetails(t *testing.T) {
	got, err := CandidateInfo(&domain.Candidate{Name: "Plain", Address: "2 Elm St"}, [2]string{"A", "B"})
	require.NoError(t, err)

	assert.NotContains(t, got, "<a ")
	assert.NotContains(t, got, "<h6>")
	assert.Contains(t, got, "2 Elm St")
}

func TestWriteKML(t *testing.T) {
	s := NewScene()
	s.RenderMarker(domain.LatLng{Lat: 40, Lng: -74}, domain.IconOrigin, "Home & Co", "")
	s.RenderMarker(domain.LatLng{Lat: 41, Lng: -73}, domain.IconWinner, "Beans", "")
	s.RenderCircle(domain.LatLng{Lat: 40.5, Lng: -73.5}, 1000)
	s.SetRoute(&domain.Route{
		Origin:      "Home",
		Destination: "Beans",
		Path:        []domain.LatLng{{Lat: 40, Lng: -74}, {Lat: 41, Lng: -73}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "meetup", s.Snapshot()))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Equal(t, 4, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "Home &amp; Co")
	assert.Contains(t, out, "<styleUrl>#winner</styleUrl>")
	assert.Contains(t, out, "<LineString>")
	assert.Contains(t, out, "<Polygon>")
}
