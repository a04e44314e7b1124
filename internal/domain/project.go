package domain

import (
	"fmt"
	"time"
)

// ProjectedInstant is a wall-clock time shifted into a target zone, together
// with the offset and DST state that produced it. Time carries the target
// zone's civil fields pinned to time.UTC, so field reads (and UTC-based
// directives like c and U) are deterministic regardless of the host zone.
type ProjectedInstant struct {
	Time        time.Time
	OffsetHours int // effective UTC offset including any DST adjustment
	DSTActive   bool
	Zone        string
}

// OffsetMinutes returns the effective offset in the platform convention of
// minutes to add to local time to reach UTC (positive = west).
func (p ProjectedInstant) OffsetMinutes() int {
	return p.OffsetHours * -60
}

// String renders the instant in the verbose default style,
// e.g. "Thu Jul 4 2024 12:00:00 GMT-0400 (EDT)". The zone abbreviation is
// escaped so its letters are not read as directives.
func (p ProjectedInstant) String() string {
	return Render(p, fmt.Sprintf(`D M j Y H:i:s \G\M\T%+03d00 (%s)`, p.OffsetHours, EscapeLiteral(p.Zone)))
}

// Project shifts a host instant into the zone described by a base UTC offset
// and DST eligibility. The host's own offset is first cancelled out (floored
// to whole hours, as half-hour host zones round west), the base offset is
// applied with normal calendar rollover, DST is evaluated against the shifted
// instant, and one more hour is added when it is active.
func Project(now time.Time, baseOffsetHours int, observesDST bool) ProjectedInstant {
	_, hostOffsetSeconds := now.Zone()
	hostOffsetMinutesWest := -hostOffsetSeconds / 60
	adjustment := floorDiv(hostOffsetMinutesWest, 60) + baseOffsetHours

	civil := time.Date(
		now.Year(), now.Month(), now.Day(),
		now.Hour()+adjustment, now.Minute(), now.Second(), now.Nanosecond(),
		time.UTC,
	)

	active := IsDSTActive(civil, observesDST)
	if active {
		civil = civil.Add(time.Hour)
	}

	offset := baseOffsetHours
	if active {
		offset++
	}

	return ProjectedInstant{
		Time:        civil,
		OffsetHours: offset,
		DSTActive:   active,
		Zone:        zoneAbbreviation(baseOffsetHours, observesDST),
	}
}

// zoneAbbreviation maps a base offset plus DST eligibility to a fixed
// North-American abbreviation. Only the six US offsets -5 through -10 are
// distinguished; everything else reads as Eastern. Offsets outside that band
// are a documented gap inherited from the dataset's US-only coverage.
func zoneAbbreviation(baseOffsetHours int, observesDST bool) string {
	key := baseOffsetHours
	if observesDST {
		key++
	}
	switch key {
	case -5:
		return "CDT"
	case -6:
		return "MDT"
	case -7:
		// Could be either Pacific or Mountain.
		return "PDT/MST"
	case -8:
		return "AKDT"
	case -9:
		return "HADT"
	case -10:
		return "HAST"
	default:
		return "EDT"
	}
}

// floorDiv divides rounding toward negative infinity, so eastern-hemisphere
// half-hour offsets adjust the same way the original library's Math.floor did.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
