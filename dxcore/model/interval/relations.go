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
)

// Overlaps reports whether p and o share at least one datepoint.
//
// An edge-to-edge touch counts only when both touching edges are included:
// "[a, b]" overlaps "[b, c)" while "[a, b)" does not. Overlaps is
// symmetric.
func (p Period) Overlaps(o Period) bool {
	return startsBeforeEnd(p, o) && startsBeforeEnd(o, p)
}

// startsBeforeEnd reports whether a's lower edge lies before b's upper edge,
// counting an equal datepoint only when both edges include it.
func startsBeforeEnd(a, b Period) bool {
	if a.start.Before(b.end) {
		return true
	}
	return a.start.Equal(b.end) && a.includesStart() && b.includesEnd()
}

// Abuts reports whether p and o are contiguous without overlapping: one
// ends where the other starts and exactly one of the two touching edges is
// included. "[a, b)" abuts "[b, c)"; "[a, b)" does not abut "(b, c)".
func (p Period) Abuts(o Period) bool {
	if p.Overlaps(o) {
		return false
	}
	return touches(p, o) || touches(o, p)
}

// touches reports whether a's upper edge meets b's lower edge with
// complementary inclusivity.
func touches(a, b Period) bool {
	return a.end.Equal(b.start) && a.includesEnd() != b.includesStart()
}

// Gap returns the Period lying strictly between p and o.
//
// Gap fails with errors.ErrNoGap when the periods overlap or abut. The
// edges of the gap are the complement of the input edges that face it, so
// the result always abuts both inputs:
//
//	[2021-01-01, 2021-01-05)  gap  (2021-01-08, 2021-01-10]
//	  -> [2021-01-05, 2021-01-08]
func (p Period) Gap(o Period) (Period, error) {
	if p.Overlaps(o) || p.Abuts(o) {
		return Period{}, fmt.Errorf("%w: %s and %s", errors.ErrNoGap, p, o)
	}

	first, second := p, o
	if second.end.Before(first.start) || (second.end.Equal(first.start) && !first.end.Equal(second.start)) {
		first, second = o, p
	}

	return New(first.end, second.start, boundsOf(!first.includesEnd(), !second.includesStart()))
}

// Intersect returns the Period shared by p and o.
//
// The result starts at the later start and ends at the earlier end; each
// edge keeps the inclusivity of the input that contributed it. When both
// inputs contribute the same datepoint the exclusive side wins. Intersect
// fails with errors.ErrNoOverlap when the periods share no datepoint.
func (p Period) Intersect(o Period) (Period, error) {
	if !p.Overlaps(o) {
		return Period{}, fmt.Errorf("%w: %s and %s", errors.ErrNoOverlap, p, o)
	}

	start, includeStart := laterStart(p, o)
	end, includeEnd := earlierEnd(p, o)

	return New(start, end, boundsOf(includeStart, includeEnd))
}

func laterStart(a, b Period) (time.Time, bool) {
	switch a.start.Compare(b.start) {
	case 1:
		return a.start, a.includesStart()
	case -1:
		return b.start, b.includesStart()
	default:
		return a.start, a.includesStart() && b.includesStart()
	}
}

func earlierEnd(a, b Period) (time.Time, bool) {
	switch a.end.Compare(b.end) {
	case -1:
		return a.end, a.includesEnd()
	case 1:
		return b.end, b.includesEnd()
	default:
		return a.end, a.includesEnd() && b.includesEnd()
	}
}

// Merge returns the smallest Period containing p and every period of
// others: the earliest start and the latest end, whether or not the inputs
// overlap. On equal datepoints the inclusive edge wins. Merge never fails.
func (p Period) Merge(others ...Period) Period {
	start, includeStart := p.start, p.includesStart()
	end, includeEnd := p.end, p.includesEnd()

	for _, o := range others {
		switch o.start.Compare(start) {
		case -1:
			start, includeStart = o.start, o.includesStart()
		case 0:
			includeStart = includeStart || o.includesStart()
		}
		switch o.end.Compare(end) {
		case 1:
			end, includeEnd = o.end, o.includesEnd()
		case 0:
			includeEnd = includeEnd || o.includesEnd()
		}
	}

	return Period{start: start, end: end, bounds: boundsOf(includeStart, includeEnd)}
}

// Subtract returns the parts of p not covered by o, as a Sequence of zero,
// one or two periods ordered by start.
//
//	[2021-01-01, 2021-01-31)  -  [2021-01-10, 2021-01-20)
//	  -> [2021-01-01, 2021-01-10), [2021-01-20, 2021-01-31)
//
// When p and o do not overlap the result holds p alone; when o covers p the
// result is empty.
func (p Period) Subtract(o Period) *Sequence {
	if !p.Overlaps(o) {
		return NewSequence(p)
	}

	result := NewSequence()

	if p.start.Before(o.start) ||
		(p.start.Equal(o.start) && p.includesStart() && !o.includesStart()) {
		result.Push(Period{
			start:  p.start,
			end:    o.start,
			bounds: boundsOf(p.includesStart(), !o.includesStart()),
		})
	}

	if o.end.Before(p.end) ||
		(o.end.Equal(p.end) && p.includesEnd() && !o.includesEnd()) {
		result.Push(Period{
			start:  o.end,
			end:    p.end,
			bounds: boundsOf(!o.includesEnd(), p.includesEnd()),
		})
	}

	return result
}

// Diff returns the symmetric difference of p and o: the datepoints that
// belong to exactly one of them, sorted by start.
func (p Period) Diff(o Period) *Sequence {
	if !p.Overlaps(o) {
		return NewSequence(p, o).Sorted(nil)
	}

	result := p.Subtract(o)
	result.Push(o.Subtract(p).Periods()...)
	return result.Sorted(nil)
}

// IsBefore reports whether p ends before o starts, with no shared datepoint.
func (p Period) IsBefore(o Period) bool {
	return p.end.Before(o.start) ||
		(p.end.Equal(o.start) && !(p.includesEnd() && o.includesStart()))
}

// IsAfter reports whether p starts after o ends, with no shared datepoint.
func (p Period) IsAfter(o Period) bool {
	return o.IsBefore(p)
}

// IsBeforePoint reports whether every datepoint of p precedes t.
func (p Period) IsBeforePoint(t time.Time) bool {
	return p.end.Before(t) || (p.end.Equal(t) && !p.includesEnd())
}

// IsAfterPoint reports whether every datepoint of p follows t.
func (p Period) IsAfterPoint(t time.Time) bool {
	return p.start.After(t) || (p.start.Equal(t) && !p.includesStart())
}

// IsStartedBy reports whether p and o share the same lower edge, datepoint
// and inclusivity.
func (p Period) IsStartedBy(o Period) bool {
	return p.start.Equal(o.start) && p.includesStart() == o.includesStart()
}

// IsEndedBy reports whether p and o share the same upper edge, datepoint
// and inclusivity.
func (p Period) IsEndedBy(o Period) bool {
	return p.end.Equal(o.end) && p.includesEnd() == o.includesEnd()
}

// IsDuring reports whether p lies entirely within o.
func (p Period) IsDuring(o Period) bool {
	return o.ContainsPeriod(p)
}
