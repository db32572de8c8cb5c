package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTravelOptions(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		transit string
		want    TravelOptions
	}{
		{"default driving", "", "", TravelOptions{Mode: TravelModeDriving}},
		{"walking ignores transit", "walking", "BUS", TravelOptions{Mode: TravelModeWalking}},
		{"biking alias", "biking", "", TravelOptions{Mode: TravelModeBicycling}},
		{"transit bus", "TRANSIT", "bus", TravelOptions{Mode: TravelModeTransit, Transit: TransitModeBus}},
		{"transit any", "transit", "", TravelOptions{Mode: TravelModeTransit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTravelOptions(tt.mode, tt.transit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTravelOptionsRejectsUnknown(t *testing.T) {
	_, err := ParseTravelOptions("teleport", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseTravelOptions("TRANSIT", "ferry")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSearchRadiusMeters(t *testing.T) {
	cases := map[string]int{
		"":           10000,
		"small":      1000,
		"MEDIUM":     10000,
		"large":      50000,
		"very-large": 50000,
		"VERY_LARGE": 50000,
	}

	for in, want := range cases {
		r, err := ParseSearchRadius(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, r.Meters(), in)
	}

	_, err := ParseSearchRadius("huge")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "45 secs", HumanDuration(45))
	assert.Equal(t, "1 min", HumanDuration(60))
	assert.Equal(t, "12 mins", HumanDuration(12*60+10))
	assert.Equal(t, "1 hour 5 mins", HumanDuration(3900))
	assert.Equal(t, "2 hours", HumanDuration(7200))
	assert.Equal(t, "1 day 3 hours", HumanDuration(27*3600))
}

func TestFormatHMS(t *testing.T) {
	assert.Equal(t, "1 hrs 1 mins 5 secs", FormatHMS(3665))
	assert.Equal(t, "0 hrs 0 mins 0 secs", FormatHMS(0))
}

func TestMeetupRequestValidate(t *testing.T) {
	req := MeetupRequest{Origins: [2]string{"  A st ", "B st"}, Keyword: " coffee "}
	require.NoError(t, req.Validate())

	assert.Equal(t, "A st", req.Origins[0])
	assert.Equal(t, "coffee", req.Keyword)
	assert.Equal(t, RadiusMedium, req.Radius)
	assert.Equal(t, TravelModeDriving, req.Travel.Mode)

	bad := MeetupRequest{Origins: [2]string{"A", " "}, Keyword: "coffee"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRequest)
}

func TestProviderErrorMessageCarriesStatus(t *testing.T) {
	err := &ProviderError{Kind: KindResolution, Subject: "nowhere", Status: "ZERO_RESULTS"}

	assert.Equal(t, `unable to find requested location "nowhere". Error: ZERO_RESULTS`, err.Error())
	assert.True(t, IsProviderError(err, KindResolution))
	assert.False(t, IsProviderError(err, KindSearch))
}
