// Package geo validates clock-in coordinates against a job site's circular
// geofence.
package geo

import (
	"github.com/umahmood/haversine"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
)

type Point struct {
	Lat float64
	Lon float64
}

func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return domain.InvalidInput("latitude %v is out of range", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return domain.InvalidInput("longitude %v is out of range", p.Lon)
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(p, center Point) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: p.Lat, Lon: p.Lon},
		haversine.Coord{Lat: center.Lat, Lon: center.Lon},
	)
	return km * 1000
}

// WithinGeofence reports whether p lies within radiusMeters of center. A
// point exactly at the radius counts as inside. Coordinates outside valid
// lat/lon ranges are rejected as invalid input.
func WithinGeofence(p, center Point, radiusMeters float64) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := center.Validate(); err != nil {
		return false, err
	}
	if radiusMeters <= 0 {
		return false, domain.InvalidInput("geofence radius must be positive")
	}

	return DistanceMeters(p, center) <= radiusMeters, nil
}
