package domain

import "time"

// LocationProfile is the result of resolving a ZIP code (or falling back to
// host-local settings). It is immutable once created; projections derive a
// fresh instant on every call so repeated renders track real time.
type LocationProfile struct {
	RawZip         string `json:"raw_zip,omitempty"`
	Zip            string `json:"zip,omitempty"` // normalized code matched in the dataset, empty on local fallback
	UTCOffsetHours int    `json:"utc_offset_hours"`
	ObservesDST    bool   `json:"observes_dst"`
	Matched        bool   `json:"matched"` // true when backed by a dataset record
}

// Project shifts the given host instant into the profile's zone.
func (p LocationProfile) Project(now time.Time) ProjectedInstant {
	return Project(now, p.UTCOffsetHours, p.ObservesDST)
}

// Render projects the given instant and formats it. An empty format uses
// DefaultFormat.
func (p LocationProfile) Render(now time.Time, format string) string {
	return Render(p.Project(now), format)
}

// DSTActive reports whether DST is in effect in the profile's zone at the
// given host instant.
func (p LocationProfile) DSTActive(now time.Time) bool {
	return p.Project(now).DSTActive
}

// LocalProfile derives a profile from the host's own settings: DST-eligible
// when the host's January 1 and July 1 offsets differ, with the base offset
// stored as a standard-time baseline (one hour is removed when DST is
// currently in effect, matching how dataset offsets are stored).
func LocalProfile(now time.Time) LocationProfile {
	loc := now.Location()
	year := now.Year()

	_, janOffset := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, julOffset := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	observes := janOffset != julOffset

	_, offsetSeconds := now.Zone()
	utc := offsetSeconds / 3600

	if Project(now, utc, observes).DSTActive {
		utc--
	}

	return LocationProfile{UTCOffsetHours: utc, ObservesDST: observes}
}
