// Package domain holds the immutable value types shared by every planning
// component: locations, trucks, vehicles, time-expanded graph nodes,
// commodities, and the assignments the planner produces.
package domain

import "time"

// Day is an ordinal day count, used throughout the planner instead of
// time.Time so that horizon arithmetic (successor day, difference in days,
// map keys) stays O(1) integer operations.
type Day int

// DayFromTime truncates t to a Day by counting whole days since the Unix
// epoch in UTC.
func DayFromTime(t time.Time) Day {
	return Day(t.UTC().Truncate(24 * time.Hour).Unix() / int64((24 * time.Hour).Seconds()))
}

// Time expands d back to a UTC midnight time.Time, for serialization.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*int64((24*time.Hour).Seconds()), 0).UTC()
}

// Add returns d shifted by n days (n may be negative).
func (d Day) Add(n int) Day {
	return d + Day(n)
}

// Sub returns the number of days between d and o (d - o).
func (d Day) Sub(o Day) int {
	return int(d - o)
}
