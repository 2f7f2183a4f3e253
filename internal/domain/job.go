package domain

import (
	"time"
)

// JobLocation is the geofence reference for a job site. Radius is in meters;
// a zero radius means the configured default applies.
type JobLocation struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Radius  float64 `json:"radius"`
	Address string  `json:"address,omitempty"`
}

type Job struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	Location    JobLocation `json:"location"`
	ColorCode   string      `json:"colorCode,omitempty"`
	Code        string      `json:"code,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Version     int32       `json:"-"`
}
