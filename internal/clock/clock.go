package clock

import "time"

// DayFormat is the storage format for day-granularity dates.
const DayFormat = "2006-01-02"

// Clock provides the current time. Engines take a Clock instead of calling
// time.Now so day boundaries can be simulated in tests.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake is a settable clock for tests.
type Fake struct {
	T time.Time
}

func NewFake(t time.Time) *Fake { return &Fake{T: t} }

func (f *Fake) Now() time.Time { return f.T }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.T = f.T.Add(d) }

// AdvanceDays moves the fake clock forward by whole calendar days.
func (f *Fake) AdvanceDays(n int) { f.T = f.T.AddDate(0, 0, n) }

// Day formats t as a day-granularity date string.
func Day(t time.Time) string { return t.Format(DayFormat) }

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
