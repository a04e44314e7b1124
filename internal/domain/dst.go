package domain

import "time"

// IsDSTActive reports whether DST is in effect at the given wall-clock
// instant under the post-2007 US rule: from 2:00 a.m. on the second Sunday of
// March (inclusive) until 2:00 a.m. on the first Sunday of November
// (exclusive). Always false when observesDST is false. The instant's location
// is irrelevant; only its civil fields are read.
func IsDSTActive(t time.Time, observesDST bool) bool {
	if !observesDST {
		return false
	}

	month, day, hour := t.Month(), t.Day(), t.Hour()
	start := secondSundayOfMarch(t.Year())
	end := firstSundayOfNovember(t.Year())

	afterStart := month > time.March ||
		(month == time.March && day > start) ||
		(month == time.March && day == start && hour >= 2)

	beforeEnd := month < time.November ||
		(month == time.November && day < end) ||
		(month == time.November && day == end && hour < 2)

	return afterStart && beforeEnd
}

// secondSundayOfMarch returns the day-of-month of the second Sunday of March,
// found by scanning forward from March 1st.
func secondSundayOfMarch(year int) int {
	sundays := 0
	d := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	for {
		if d.Weekday() == time.Sunday {
			sundays++
			if sundays == 2 {
				return d.Day()
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

// firstSundayOfNovember returns the day-of-month of the first Sunday of
// November, scanning forward from November 1st.
func firstSundayOfNovember(year int) int {
	d := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Day()
}
