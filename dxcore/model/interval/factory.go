/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package interval

import (
	"fmt"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model/duration"
	"github.com/rickb777/date/v2"
)

// Calendar factories. Every period they build is IncludeStartExcludeEnd,
// so consecutive days, months or years abut. A nil location means UTC.
// Out-of-range calendar inputs yield an error matching
// errors.ErrInvalidRange.

func loc(l *time.Location) *time.Location {
	if l == nil {
		return time.UTC
	}
	return l
}

func calendarError(unit string, value any) error {
	return &errors.RangeError{Notation: fmt.Sprint(value), Reason: "no such " + unit}
}

func midnight(year int, month time.Month, day int, l *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc(l))
}

// FromDay returns the day year-month-day.
func FromDay(year int, month time.Month, day int, l *time.Location) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, calendarError("month", month)
	}
	start := midnight(year, month, day, l)
	if start.Day() != day {
		return Period{}, calendarError("day", fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	}
	return New(start, start.AddDate(0, 0, 1), IncludeStartExcludeEnd)
}

// FromMonth returns the calendar month.
//
//	FromMonth(2014, time.March, nil) // [2014-03-01, 2014-04-01)
func FromMonth(year int, month time.Month, l *time.Location) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, calendarError("month", month)
	}
	start := midnight(year, month, 1, l)
	return New(start, start.AddDate(0, 1, 0), IncludeStartExcludeEnd)
}

// FromQuarter returns the quarter 1 to 4 of year.
//
//	FromQuarter(2014, 3, nil) // [2014-07-01, 2014-10-01)
func FromQuarter(year, quarter int, l *time.Location) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, calendarError("quarter", quarter)
	}
	start := midnight(year, time.Month(3*(quarter-1)+1), 1, l)
	return New(start, start.AddDate(0, 3, 0), IncludeStartExcludeEnd)
}

// FromSemester returns the semester 1 or 2 of year.
//
//	FromSemester(2014, 2, nil) // [2014-07-01, 2015-01-01)
func FromSemester(year, semester int, l *time.Location) (Period, error) {
	if semester < 1 || semester > 2 {
		return Period{}, calendarError("semester", semester)
	}
	start := midnight(year, time.Month(6*(semester-1)+1), 1, l)
	return New(start, start.AddDate(0, 6, 0), IncludeStartExcludeEnd)
}

// FromYear returns the calendar year.
func FromYear(year int, l *time.Location) (Period, error) {
	start := midnight(year, time.January, 1, l)
	return New(start, start.AddDate(1, 0, 0), IncludeStartExcludeEnd)
}

// isoWeekOneMonday returns the Monday starting ISO week 1 of year, the week
// holding January 4th.
func isoWeekOneMonday(year int, l *time.Location) time.Time {
	jan4 := date.New(year, time.January, 4)
	back := (int(jan4.Weekday()) + 6) % 7
	return midnight(year, time.January, 4-back, l)
}

// FromISOWeek returns the ISO-8601 week of year, Monday to Monday.
//
//	FromISOWeek(2014, 3, nil) // [2014-01-13, 2014-01-20)
func FromISOWeek(year, week int, l *time.Location) (Period, error) {
	_, weeks := date.New(year, time.December, 28).ISOWeek()
	if week < 1 || week > weeks {
		return Period{}, calendarError("ISO week", fmt.Sprintf("%04d-W%02d", year, week))
	}
	start := isoWeekOneMonday(year, l).AddDate(0, 0, 7*(week-1))
	return New(start, start.AddDate(0, 0, 7), IncludeStartExcludeEnd)
}

// FromISOYear returns the ISO-8601 week-numbering year: from the Monday of
// week 1 to the Monday of week 1 of the next year.
//
//	FromISOYear(2014, nil) // [2013-12-30, 2014-12-29)
func FromISOYear(year int, l *time.Location) (Period, error) {
	return New(isoWeekOneMonday(year, l), isoWeekOneMonday(year+1, l), IncludeStartExcludeEnd)
}

// FromHour returns the clock hour holding t, in the location of t.
func FromHour(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return Period{start: start, end: start.Add(time.Hour), bounds: IncludeStartExcludeEnd}
}

// DayOf returns the calendar day holding t, in the location of t.
func DayOf(t time.Time) Period {
	start := midnight(t.Year(), t.Month(), t.Day(), t.Location())
	return Period{start: start, end: start.AddDate(0, 0, 1), bounds: IncludeStartExcludeEnd}
}

// MonthOf returns the calendar month holding t, in the location of t.
func MonthOf(t time.Time) Period {
	start := midnight(t.Year(), t.Month(), 1, t.Location())
	return Period{start: start, end: start.AddDate(0, 1, 0), bounds: IncludeStartExcludeEnd}
}

// YearOf returns the calendar year holding t, in the location of t.
func YearOf(t time.Time) Period {
	start := midnight(t.Year(), time.January, 1, t.Location())
	return Period{start: start, end: start.AddDate(1, 0, 0), bounds: IncludeStartExcludeEnd}
}

// After returns the period starting at start and lasting d.
func After(start time.Time, d duration.Duration) (Period, error) {
	return New(start, d.AddTo(start), IncludeStartExcludeEnd)
}

// Before returns the period lasting d and ending at end.
func Before(end time.Time, d duration.Duration) (Period, error) {
	return New(d.SubFrom(end), end, IncludeStartExcludeEnd)
}

// Around returns the period extending d on both sides of mid.
func Around(mid time.Time, d duration.Duration) (Period, error) {
	return New(d.SubFrom(mid), d.AddTo(mid), IncludeStartExcludeEnd)
}
