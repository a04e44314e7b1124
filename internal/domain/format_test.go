package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// july4 is a Thursday, well inside the DST window.
func july4() ProjectedInstant {
	return ProjectedInstant{
		Time:        time.Date(2024, time.July, 4, 15, 4, 5, 123_000_000, time.UTC),
		OffsetHours: -4,
		DSTActive:   true,
		Zone:        "EDT",
	}
}

func at(t time.Time) ProjectedInstant {
	return ProjectedInstant{Time: t, OffsetHours: -5, Zone: "EDT"}
}

func TestRender_Directives(t *testing.T) {
	p := july4()

	cases := map[string]string{
		"Y":     "2024",
		"y":     "24",
		"m":     "07",
		"n":     "7",
		"t":     "31",
		"d":     "04",
		"j":     "4",
		"w":     "4",
		"N":     "4",
		"G":     "15",
		"H":     "15",
		"g":     "3",
		"h":     "03",
		"i":     "04",
		"s":     "05",
		"a":     "pm",
		"A":     "PM",
		"l":     "Thursday",
		"D":     "Thu",
		"F":     "July",
		"M":     "Jul",
		"L":     "1",
		"o":     "2024",
		"W":     "27",
		"v":     "123",
		"c":     "2024-07-04T15:04:05.123Z",
		"Y-m-d": "2024-07-04",
	}

	got := map[string]string{}
	want := map[string]string{}
	for format, expected := range cases {
		got[format] = Render(p, format)
		want[format] = expected
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DefaultFormat(t *testing.T) {
	p := july4()
	assert.Equal(t, "Thu Jul 4 2024 15:04:05", Render(p, ""))
	assert.Equal(t, Render(p, DefaultFormat), Render(p, ""))
}

func TestRender_InvalidInstant(t *testing.T) {
	assert.Equal(t, "Invalid Date", Render(ProjectedInstant{}, "Y-m-d"))
	assert.Equal(t, "Invalid Date", Render(ProjectedInstant{}, ""))
}

func TestRender_Escapes(t *testing.T) {
	p := july4()
	assert.Equal(t, "Y", Render(p, `\Y`))
	assert.Equal(t, "Year: 2024", Render(p, `\Y\e\a\r: Y`))
	assert.Equal(t, "2024", Render(p, "Y\\"), "trailing escape is dropped")
}

func TestRender_PassThrough(t *testing.T) {
	p := july4()
	assert.Equal(t, "[2024] ?!", Render(p, "[Y] ?!"))
}

func TestRender_OrdinalSuffix(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{30, "30th"},
		{31, "31st"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			p := at(time.Date(2024, time.July, tc.day, 0, 0, 0, 0, time.UTC))
			assert.Equal(t, tc.want, Render(p, "jS"))
		})
	}
}

func TestRender_LeapYearFlag(t *testing.T) {
	for year, want := range map[int]string{2024: "1", 2023: "0", 2000: "1", 1900: "0"} {
		p := at(time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, want, Render(p, "L"), "year %d", year)
	}
}

func TestRender_TwelveHourMidnightQuirk(t *testing.T) {
	// Midnight renders as 0, not 12. Kept for compatibility with the
	// original format language.
	midnight := at(time.Date(2024, time.July, 4, 0, 5, 0, 0, time.UTC))
	assert.Equal(t, "0", Render(midnight, "g"))
	assert.Equal(t, "00", Render(midnight, "h"))
	assert.Equal(t, "am", Render(midnight, "a"))

	noon := at(time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "12", Render(noon, "g"))
	assert.Equal(t, "pm", Render(noon, "a"))

	evening := at(time.Date(2024, time.July, 4, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "11", Render(evening, "g"))
}

func TestRender_WeekNumber(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC), "1"},
		{time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC), "27"},
		{time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC), "53"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Render(at(tc.date), "W"), tc.date)
	}
}

func TestRender_DayOfYear(t *testing.T) {
	assert.Equal(t, "0", Render(at(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)), "z"))
	assert.Equal(t, "60", Render(at(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), "z"))
	assert.Equal(t, "59", Render(at(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)), "z"))
}

func TestRender_WeekdayNumbers(t *testing.T) {
	sunday := at(time.Date(2024, time.July, 7, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "0", Render(sunday, "w"))
	assert.Equal(t, "7", Render(sunday, "N"))
	assert.Equal(t, "Sunday", Render(sunday, "l"))
}

func TestRender_DaysInMonth(t *testing.T) {
	assert.Equal(t, "29", Render(at(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)), "t"))
	assert.Equal(t, "28", Render(at(time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC)), "t"))
	assert.Equal(t, "30", Render(at(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)), "t"))
}

func TestRender_OffsetAndEpoch(t *testing.T) {
	p := july4()

	assert.Equal(t, "14400", Render(p, "Z"), "offset in seconds west")
	assert.Equal(t, fmt.Sprintf("%d", p.Time.Unix()), Render(p, "U"))
}

func TestRender_SwatchBeats(t *testing.T) {
	// 15:04:05 UTC: ((15+1) + 4/60 + 5/3600) * 1000/24 = 669.50...
	assert.Equal(t, "669", Render(july4(), "B"))
}

func TestRender_WeekBasedYear(t *testing.T) {
	// Jan 2 2024 is a Tuesday before the year's first Thursday.
	assert.Equal(t, "2023", Render(at(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)), "o"))
	assert.Equal(t, "2024", Render(at(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)), "o"))
}

func TestRender_RoundTrip(t *testing.T) {
	p := Project(time.Date(2024, time.July, 4, 23, 30, 0, 0, time.UTC), -5, true)

	var year, month, day int
	_, err := fmt.Sscanf(Render(p, "Y-m-d"), "%d-%d-%d", &year, &month, &day)
	require.NoError(t, err)

	assert.Equal(t, p.Time.Year(), year)
	assert.Equal(t, int(p.Time.Month()), month)
	assert.Equal(t, p.Time.Day(), day)
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `\E\D\T`, EscapeLiteral("EDT"))
	assert.Equal(t, "EDT", Render(july4(), EscapeLiteral("EDT")))
}
