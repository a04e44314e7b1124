// Package domain implements ZIP-code time resolution and formatting.
//
// # Data Source
//
// Offsets come from a static dataset keyed by 5-digit ZIP code, served as a
// single JSON document:
//
//	{"90210": {"utc": -8, "dst": true}, ...}
//
// "utc" is the standard-time UTC offset in whole hours (negative = west),
// "dst" is whether the location observes daylight saving time at all. The
// dataset is fetched once at startup by [internal/dataset] and searched in
// memory; see [OffsetTable].
//
// # ZIP Normalization
//
// Raw codes are stripped of non-digits. Fewer than 3 or more than 9 digits
// remaining means the code is invalid and resolution falls back to the host's
// local settings. Up to 5 digits are left-padded with zeros ("730" → "00730");
// 6-9 digits (ZIP+4 style) are padded to 9 and truncated to the leading 5
// ("9021012345"[:9] → "90210"). See [NormalizeZip].
//
// # DST Rule
//
// The post-2007 US rule, fixed and not configurable: DST runs from 2:00 a.m.
// on the second Sunday of March through 2:00 a.m. on the first Sunday of
// November. Locations with "dst": false never observe it. Historical rules
// and non-US schedules are out of scope. See [IsDSTActive].
//
// # Format Language
//
// [Render] interprets a PHP date()-style format string one character at a
// time. A backslash emits the next character literally; unrecognized
// characters pass through unchanged.
//
//	Y full year        y 2-digit year     L leap year flag   o week-based year
//	m month 01-12      n month 1-12       F month name       M abbreviated month
//	d day 01-31        j day 1-31         t days in month    S ordinal suffix
//	w weekday 0-6      N ISO weekday 1-7  l weekday name     D abbreviated weekday
//	W week number      z day of year
//	H hour 00-23       G hour 0-23        h 12-hour 00-12    g 12-hour 0-12
//	i minutes          s seconds          a am/pm            A AM/PM
//	U epoch seconds    v milliseconds     B swatch beats     Z offset seconds
//	c ISO-8601
//
// The 12-hour directives keep the original library's quirk of rendering
// midnight as "0" rather than "12".
package domain
