package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeksBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b YearWeek
		want int
	}{
		{"same week", New(2000, 1), New(2000, 1), 0},
		{"forward within year", New(2000, 1), New(2000, 10), 9},
		{"backward within year", New(2000, 10), New(2000, 1), -9},
		{"across year boundary", New(2000, 52), New(2001, 1), 1},
		{"one full year", New(2000, 5), New(2001, 5), 52},
		{"backward across years", New(2003, 2), New(2001, 50), -56},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeeksBetween(tt.a, tt.b))
			assert.Equal(t, tt.want, tt.a.WeeksUntil(tt.b))
		})
	}
}

func TestWeeksBetween_NoWeek53(t *testing.T) {
	// A year is always 52 weeks, so week 52 to week 1 of the next year is one week.
	assert.Equal(t, 1, WeeksBetween(New(2020, 52), New(2021, 1)))
}

func TestFromWeeks_NormalizesWeek(t *testing.T) {
	epoch := New(2000, 1)

	assert.Equal(t, New(2000, 1), FromWeeks(epoch, 0))
	assert.Equal(t, New(2000, 52), FromWeeks(epoch, 51))
	assert.Equal(t, New(2001, 1), FromWeeks(epoch, 52))
	assert.Equal(t, New(2002, 3), FromWeeks(epoch, 106))
	assert.Equal(t, New(2001, 2), FromWeeks(New(2000, 50), 4))
}

func TestFromWeeks_RoundTripsWithWeeksBetween(t *testing.T) {
	epoch := New(2000, 1)
	for weeks := uint64(0); weeks < 300; weeks++ {
		yw := FromWeeks(epoch, weeks)
		if yw.Week < 1 || yw.Week > WeeksPerYear {
			t.Fatalf("FromWeeks(%d) week out of range: %v", weeks, yw)
		}
		if got := WeeksBetween(epoch, yw); got != int(weeks) {
			t.Fatalf("WeeksBetween(epoch, FromWeeks(%d)) = %d", weeks, got)
		}
	}
}

func TestMonth(t *testing.T) {
	assert.Equal(t, 1, Month(1))
	assert.Equal(t, 1, Month(5))
	assert.Equal(t, 2, Month(6))
	assert.Equal(t, 12, Month(52))
	assert.Equal(t, 11, New(2000, 48).Month())
	assert.Equal(t, 12, New(2000, 49).Month())
}

func TestYearWeek_StringAndBefore(t *testing.T) {
	assert.Equal(t, "2000-W01", New(2000, 1).String())
	assert.True(t, New(2000, 1).Before(New(2000, 2)))
	assert.False(t, New(2001, 1).Before(New(2000, 52)))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    YearWeek
		wantErr bool
	}{
		{in: "2000-W01", want: New(2000, 1)},
		{in: "2003-w17", want: New(2003, 17)},
		{in: " 1999-52 ", want: New(1999, 52)},
		{in: "2000-W00", wantErr: true},
		{in: "2000-W53", wantErr: true},
		{in: "2000", wantErr: true},
		{in: "abcd-W01", wantErr: true},
		{in: "2000-Wxx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	yw := New(2042, 9)
	got, err := Parse(yw.String())
	require.NoError(t, err)
	assert.Equal(t, yw, got)
}
