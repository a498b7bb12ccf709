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

package dates

import (
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
)

// maxWidth caps the range width in days, so that a huge interval doesn't
// overflow date arithmetic. It is well beyond any supported calendar span.
const maxWidth = 1 << 20

// Splitter lazily generates contiguous, non-overlapping ranges covering the
// original range. Each generated range spans the start date plus at most the
// interval's number of whole days.
//
// When either bound of the original range is unset, Splitter yields the
// original range once, as there is nothing to split.
type Splitter struct {
	width int // whole days added to the start of each range
	orig  Range
	next  Date // start of the next range
	done  bool
}

var _ iterator.Iterator[Range] = &Splitter{}

// Split creates a Splitter over [from, to] with the given interval in days.
// The interval may be fractional, in which case only its whole number of days
// counts; an interval below 1 yields single-day ranges. If from is after to,
// the Splitter yields nothing.
func Split(interval float64, from, to Date) *Splitter {
	width := 0
	switch {
	case math.IsNaN(interval) || interval < 0:
	case interval > maxWidth:
		width = maxWidth
	default:
		width = int(math.Floor(interval))
	}
	s := &Splitter{width: width, orig: Range{From: from, To: to}}
	s.Reset()
	return s
}

// SplitStrings is like Split, except that the dates are strings in YYYY-MM-DD
// format, and an empty string means an unset date. A malformed date is an
// error.
func SplitStrings(interval float64, from, to string) (*Splitter, error) {
	f, err := ParseOptional(from)
	if err != nil {
		return nil, errors.Annotate(err, "invalid start date")
	}
	t, err := ParseOptional(to)
	if err != nil {
		return nil, errors.Annotate(err, "invalid end date")
	}
	return Split(interval, f, t), nil
}

// Reset restarts the sequence from the beginning.
func (s *Splitter) Reset() {
	s.next = s.orig.From
	s.done = false
}

// Next implements iterator.Iterator.
func (s *Splitter) Next() (Range, bool) {
	if s.done {
		return Range{}, false
	}
	if !s.orig.Bounded() {
		s.done = true
		return s.orig, true
	}
	if s.next.After(s.orig.To) {
		s.done = true
		return Range{}, false
	}
	end := s.next.AddDays(s.width)
	if end.After(s.orig.To) {
		end = s.orig.To
	}
	r := Range{From: s.next, To: end}
	s.next = end.AddDays(1)
	return r, true
}

// Ranges returns all the remaining ranges as a slice.
func (s *Splitter) Ranges() []Range {
	return iterator.Reduce[Range, []Range](s, []Range{}, func(r Range, rs []Range) []Range {
		return append(rs, r)
	})
}
