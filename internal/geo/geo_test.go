package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

// jobSite is a fixed reference point; the offsets below move roughly 20m and
// 50m due north of it (one degree of latitude is about 111.2 km).
var jobSite = Point{Lat: 40.712776, Lon: -74.005974}

func TestDistanceMeters(t *testing.T) {
	near := Point{Lat: jobSite.Lat + 0.00018, Lon: jobSite.Lon}
	far := Point{Lat: jobSite.Lat + 0.00045, Lon: jobSite.Lon}

	assert.InDelta(t, 20, DistanceMeters(near, jobSite), 0.5)
	assert.InDelta(t, 50, DistanceMeters(far, jobSite), 0.5)
	assert.Zero(t, DistanceMeters(jobSite, jobSite))
}

func TestWithinGeofence(t *testing.T) {
	near := Point{Lat: jobSite.Lat + 0.00018, Lon: jobSite.Lon}
	far := Point{Lat: jobSite.Lat + 0.00045, Lon: jobSite.Lon}

	inside, err := WithinGeofence(near, jobSite, 30)
	require.NoError(t, err)
	assert.True(t, inside)

	inside, err = WithinGeofence(far, jobSite, 30)
	require.NoError(t, err)
	assert.False(t, inside)
}

func TestWithinGeofenceBoundaryIsInside(t *testing.T) {
	p := Point{Lat: jobSite.Lat + 0.00030, Lon: jobSite.Lon}
	radius := DistanceMeters(p, jobSite)

	inside, err := WithinGeofence(p, jobSite, radius)
	require.NoError(t, err)
	assert.True(t, inside)
}

func TestWithinGeofenceRejectsInvalidCoordinates(t *testing.T) {
	cases := []struct {
		name  string
		point Point
	}{
		{"latitude too high", Point{Lat: 91, Lon: 0}},
		{"latitude too low", Point{Lat: -90.1, Lon: 0}},
		{"longitude too high", Point{Lat: 0, Lon: 181}},
		{"longitude too low", Point{Lat: 0, Lon: -180.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := WithinGeofence(tc.point, jobSite, 100)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err))
		})
	}
}

func TestWithinGeofenceRejectsNonPositiveRadius(t *testing.T) {
	_, err := WithinGeofence(jobSite, jobSite, 0)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}
