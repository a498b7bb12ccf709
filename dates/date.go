// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dates implements calendar dates, inclusive date ranges, and the
// splitting of a wide date range into a sequence of narrower ranges.
package dates

import (
	"fmt"
	"time"

	"github.com/stockparfait/errors"
)

// Layout is the only accepted string format of a Date, as used by the FMP API.
const Layout = "2006-01-02"

// Date records a calendar date as year, month and day. The zero value means
// that the date is not set.
type Date struct {
	YearVal  uint16
	MonthVal uint8
	DayVal   uint8
}

// NewDate is the constructor for Date.
func NewDate(year uint16, month, day uint8) Date {
	return Date{year, month, day}
}

// NewDateFromTime creates a Date from the calendar date of t, in t's location.
func NewDateFromTime(t time.Time) Date {
	return Date{
		YearVal:  uint16(t.Year()),
		MonthVal: uint8(t.Month()),
		DayVal:   uint8(t.Day()),
	}
}

// Parse a string strictly in the YYYY-MM-DD format. Any other format is an
// error.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, errors.Annotate(err,
			"failed to parse date '%s', expected YYYY-MM-DD", s)
	}
	return NewDateFromTime(t), nil
}

// ParseOptional is like Parse, except that an empty string yields the zero
// Date.
func ParseOptional(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	return Parse(s)
}

func (d Date) Year() uint16 { return d.YearVal }
func (d Date) Month() uint8 { return d.MonthVal }
func (d Date) Day() uint8   { return d.DayVal }

// String representation of the date in YYYY-MM-DD format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// ToTime converts Date to Time at midnight UTC.
func (d Date) ToTime() time.Time {
	return time.Date(int(d.Year()), time.Month(d.Month()), int(d.Day()), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (earlier, if n < 0).
func (d Date) AddDays(n int) Date {
	return NewDateFromTime(d.ToTime().AddDate(0, 0, n))
}

// DaysTill is the number of days from d to d2, negative if d2 is before d.
func (d Date) DaysTill(d2 Date) int {
	return int(d2.ToTime().Sub(d.ToTime()).Hours() / 24)
}

func (d Date) key() int {
	return int(d.Year())*10000 + int(d.Month())*100 + int(d.Day())
}

// Before compares two dates for strict inequality, d < d2.
func (d Date) Before(d2 Date) bool {
	return d.key() < d2.key()
}

// After compares two dates for strict inequality, d > d2.
func (d Date) After(d2 Date) bool {
	return d2.Before(d)
}

// IsZero checks whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year() == 0 && d.Month() == 0 && d.Day() == 0
}

// MinDate returns the earliest of the set dates, or zero value.
func MinDate(dates ...Date) Date {
	var min Date
	for _, d := range dates {
		if min.IsZero() || (!d.IsZero() && min.After(d)) {
			min = d
		}
	}
	return min
}

// Range is an inclusive range of dates. Either bound may be unset (zero),
// meaning that the range is open on that side.
type Range struct {
	From Date
	To   Date
}

// NewRange is the constructor for Range.
func NewRange(from, to Date) Range {
	return Range{From: from, To: to}
}

// Bounded checks that both bounds are set.
func (r Range) Bounded() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Days is the number of calendar days in a bounded range, including both
// ends. It is 0 for an open or inverted range.
func (r Range) Days() int {
	if !r.Bounded() || r.From.After(r.To) {
		return 0
	}
	return r.From.DaysTill(r.To) + 1
}

// Contains checks if d is in the range. An unset bound is ignored.
func (r Range) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	if !r.From.IsZero() && r.From.After(d) {
		return false
	}
	if !r.To.IsZero() && r.To.Before(d) {
		return false
	}
	return true
}

func (r Range) String() string {
	bound := func(d Date) string {
		if d.IsZero() {
			return "*"
		}
		return d.String()
	}
	return "[" + bound(r.From) + ", " + bound(r.To) + "]"
}
