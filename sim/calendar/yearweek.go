// Package calendar converts between the in-game calendar and scalar week
// counts. A game year is exactly 52 weeks; there is no week 53.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// WeeksPerYear is the fixed length of a game year.
const WeeksPerYear = 52

// MonthsPerYear is used to derive a month from a week of the year.
const MonthsPerYear = 12

// YearWeek is a point on the game calendar. Week is 1-based.
type YearWeek struct {
	Year int
	Week int
}

// New returns the YearWeek for year and week. Callers pass week in 1..52;
// no validation is performed.
func New(year, week int) YearWeek {
	return YearWeek{Year: year, Week: week}
}

// WeeksBetween returns the signed number of weeks from a to b.
func WeeksBetween(a, b YearWeek) int {
	return (b.Year-a.Year)*WeeksPerYear + (b.Week - a.Week)
}

// WeeksUntil returns the signed number of weeks from yw to other.
func (yw YearWeek) WeeksUntil(other YearWeek) int {
	return WeeksBetween(yw, other)
}

// FromWeeks returns the calendar point that lies weeks after epoch, with the
// week normalized into 1..52.
func FromWeeks(epoch YearWeek, weeks uint64) YearWeek {
	abs := uint64(epoch.Year)*WeeksPerYear + uint64(epoch.Week-1) + weeks
	return YearWeek{
		Year: int(abs / WeeksPerYear),
		Week: int(abs%WeeksPerYear) + 1,
	}
}

// Month returns the month 1..12 that contains week (1..52).
func Month(week int) int {
	return (week-1)*MonthsPerYear/WeeksPerYear + 1
}

// Month returns the month 1..12 of yw.
func (yw YearWeek) Month() int {
	return Month(yw.Week)
}

// Before reports whether yw is strictly earlier than other.
func (yw YearWeek) Before(other YearWeek) bool {
	return WeeksBetween(yw, other) > 0
}

func (yw YearWeek) String() string {
	return fmt.Sprintf("%d-W%02d", yw.Year, yw.Week)
}

// Parse reads a calendar point written as "2000-W05", "2000-w5" or "2000-5".
// Week must be in 1..52.
func Parse(s string) (YearWeek, error) {
	yearPart, weekPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return YearWeek{}, fmt.Errorf("year-week %q: want YEAR-Www", s)
	}
	weekPart = strings.TrimPrefix(strings.TrimPrefix(weekPart, "W"), "w")

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return YearWeek{}, fmt.Errorf("year-week %q: year: %w", s, err)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return YearWeek{}, fmt.Errorf("year-week %q: week: %w", s, err)
	}
	if week < 1 || week > WeeksPerYear {
		return YearWeek{}, fmt.Errorf("year-week %q: week %d outside 1..%d", s, week, WeeksPerYear)
	}
	return New(year, week), nil
}
