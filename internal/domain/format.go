package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultFormat is used when Render is given an empty format string:
// abbreviated weekday, abbreviated month, day, year, 24-hour time.
const DefaultFormat = "D M j Y H:i:s"

// invalidInstant is the sentinel emitted for an unusable instant. Rendering
// never fails with an error.
const invalidInstant = "Invalid Date"

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// formatState accumulates output as a slice of emitted chunks rather than a
// flat builder because the S directive inspects previously emitted chunks to
// pick an ordinal suffix.
type formatState struct {
	p   ProjectedInstant
	t   time.Time
	buf []string
}

func (st *formatState) emit(s string) {
	st.buf = append(st.buf, s)
}

type directiveFunc func(*formatState)

// directives dispatches each format character to its formatting func.
// Characters absent from the table pass through literally.
var directives = map[byte]directiveFunc{
	'Y': func(st *formatState) { st.emit(strconv.Itoa(st.t.Year())) },
	'y': func(st *formatState) { st.emit(dropCentury(st.t.Year())) },
	'm': func(st *formatState) { st.emit(fmt.Sprintf("%02d", int(st.t.Month()))) },
	'n': func(st *formatState) { st.emit(strconv.Itoa(int(st.t.Month()))) },
	't': func(st *formatState) { st.emit(strconv.Itoa(daysInMonth(st.t))) },
	'd': func(st *formatState) { st.emit(fmt.Sprintf("%02d", st.t.Day())) },
	'j': func(st *formatState) { st.emit(strconv.Itoa(st.t.Day())) },
	'w': func(st *formatState) { st.emit(strconv.Itoa(int(st.t.Weekday()))) },
	'N': func(st *formatState) { st.emit(strconv.Itoa(isoWeekday(st.t))) },
	'g': func(st *formatState) { st.emit(strconv.Itoa(hour12(st.t))) },
	'G': func(st *formatState) { st.emit(strconv.Itoa(st.t.Hour())) },
	'h': func(st *formatState) { st.emit(fmt.Sprintf("%02d", hour12(st.t))) },
	'H': func(st *formatState) { st.emit(fmt.Sprintf("%02d", st.t.Hour())) },
	'i': func(st *formatState) { st.emit(fmt.Sprintf("%02d", st.t.Minute())) },
	's': func(st *formatState) { st.emit(fmt.Sprintf("%02d", st.t.Second())) },
	'L': func(st *formatState) { st.emit(leapFlag(st.t.Year())) },
	'o': func(st *formatState) { st.emit(strconv.Itoa(weekBasedYear(st.t))) },
	'B': func(st *formatState) { st.emit(strconv.Itoa(swatchBeats(st.t))) },
	'v': func(st *formatState) { st.emit(fmt.Sprintf("%03d", st.t.Nanosecond()/1e6)) },
	'Z': func(st *formatState) { st.emit(strconv.Itoa(st.p.OffsetMinutes() * 60)) },
	'U': func(st *formatState) { st.emit(strconv.FormatInt(st.t.Unix(), 10)) },
	'a': func(st *formatState) { st.emit(meridiem(st.t, "am", "pm")) },
	'A': func(st *formatState) { st.emit(meridiem(st.t, "AM", "PM")) },
	'l': func(st *formatState) { st.emit(dayNames[st.t.Weekday()]) },
	'D': func(st *formatState) { st.emit(dayNames[st.t.Weekday()][:3]) },
	'F': func(st *formatState) { st.emit(monthNames[st.t.Month()-1]) },
	'M': func(st *formatState) { st.emit(monthNames[st.t.Month()-1][:3]) },
	'c': func(st *formatState) { st.emit(st.t.Format("2006-01-02T15:04:05.000Z07:00")) },
	'S': func(st *formatState) { st.emit(ordinalSuffix(st.buf)) },
	'W': func(st *formatState) { st.emit(strconv.Itoa(weekNumber(st.t))) },
	'z': func(st *formatState) { st.emit(strconv.Itoa(dayOfYear(st.t))) },
}

// Render interprets a format string against a projected instant. An empty
// format falls back to DefaultFormat, a zero instant renders as a fixed
// sentinel, a backslash emits the following character literally, and
// characters outside the directive alphabet pass through unchanged. Render
// never fails.
func Render(p ProjectedInstant, format string) string {
	if format == "" {
		format = DefaultFormat
	}
	if p.Time.IsZero() {
		return invalidInstant
	}

	st := &formatState{p: p, t: p.Time}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '\\' {
			i++
			if i < len(format) {
				st.emit(string(format[i]))
			}
			continue
		}
		if fn, ok := directives[c]; ok {
			fn(st)
			continue
		}
		st.emit(string(c))
	}
	return strings.Join(st.buf, "")
}

// EscapeLiteral backslash-escapes every character of s so it renders verbatim
// when embedded in a format string.
func EscapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		b.WriteByte('\\')
		b.WriteByte(s[i])
	}
	return b.String()
}

// dropCentury truncates a year to its final two digits ("2024" → "24").
func dropCentury(year int) string {
	s := strconv.Itoa(year)
	if len(s) <= 2 {
		return ""
	}
	return s[2:]
}

// daysInMonth exploits Date's day-zero normalization: day 0 of the next month
// is the last day of this one.
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// hour12 converts a 24-hour value for the g/h directives. Only hours above 12
// are shifted, so midnight renders as 0 and noon as 12.
func hour12(t time.Time) int {
	h := t.Hour()
	if h > 12 {
		return h - 12
	}
	return h
}

func leapFlag(year int) string {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return "1"
	}
	return "0"
}

// weekBasedYear approximates the ISO week-numbering year: the first days of
// January belong to the previous year when they fall before the year's first
// Thursday.
func weekBasedYear(t time.Time) int {
	if t.Month() == time.January && t.Day() < 6 && t.Weekday() < time.Thursday {
		return t.Year() - 1
	}
	return t.Year()
}

// swatchBeats computes Swatch Internet Time (1000 beats per day, UTC+1).
func swatchBeats(t time.Time) int {
	u := t.UTC()
	dayFraction := float64((u.Hour()+1)%24) + float64(u.Minute())/60 + float64(u.Second())/3600
	return int(math.Floor(dayFraction * 1000 / 24))
}

func meridiem(t time.Time, am, pm string) string {
	if t.Hour() > 11 {
		return pm
	}
	return am
}

// ordinalSuffix picks st/nd/rd/th from the day digits most recently emitted
// into the buffer. A tens digit of 1 (11th-19th) always forces "th".
func ordinalSuffix(buf []string) string {
	var ones, tens byte
	if n := len(buf); n > 0 {
		last := buf[n-1]
		switch {
		case len(last) >= 2:
			ones, tens = last[len(last)-1], last[len(last)-2]
		case len(last) == 1:
			ones = last[0]
			if n > 1 && len(buf[n-2]) > 0 {
				prev := buf[n-2]
				tens = prev[len(prev)-1]
			}
		}
	}

	if tens == '1' {
		return "th"
	}
	switch ones {
	case '1':
		return "st"
	case '2':
		return "nd"
	case '3':
		return "rd"
	default:
		return "th"
	}
}

// weekNumber counts Thursdays from January 1st up to the instant's date
// extended through the following Saturday, walking day by day.
func weekNumber(t time.Time) int {
	cursor := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for end.Weekday() < time.Saturday {
		end = end.AddDate(0, 0, 1)
	}

	weeks := 0
	for cursor.Before(end) {
		if cursor.Weekday() == time.Thursday {
			weeks++
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return weeks
}

// dayOfYear counts whole days from January 1st 00:00:00 to the instant,
// walking day by day. Midnight on January 1st is day 0.
func dayOfYear(t time.Time) int {
	cursor := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for cursor.Before(t) {
		days++
		cursor = cursor.AddDate(0, 0, 1)
	}
	return days
}
