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
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model/duration"
)

// StartingOn returns a copy of p whose start is t.
func (p Period) StartingOn(t time.Time) (Period, error) {
	return New(t, p.end, p.bounds)
}

// EndingOn returns a copy of p whose end is t.
func (p Period) EndingOn(t time.Time) (Period, error) {
	return New(p.start, t, p.bounds)
}

// WithBounds returns a copy of p with different bounds. Changing the bounds
// of an instant "[a, a]" to ExcludeAll fails.
func (p Period) WithBounds(b Bounds) (Period, error) {
	return New(p.start, p.end, b)
}

// WithDurationAfterStart keeps the start of p and places the end d after it.
func (p Period) WithDurationAfterStart(d duration.Duration) (Period, error) {
	return New(p.start, d.AddTo(p.start), p.bounds)
}

// WithDurationBeforeEnd keeps the end of p and places the start d before it.
func (p Period) WithDurationBeforeEnd(d duration.Duration) (Period, error) {
	return New(d.SubFrom(p.end), p.end, p.bounds)
}

// Move shifts both endpoints by d. A negative d moves the period back in
// time. Because calendar units vary in length, the moved period may be
// longer or shorter than p.
func (p Period) Move(d duration.Duration) (Period, error) {
	return New(d.AddTo(p.start), d.AddTo(p.end), p.bounds)
}

// Expand moves the start back by d and the end forward by d. A negative d
// shrinks the period and fails once the endpoints cross.
func (p Period) Expand(d duration.Duration) (Period, error) {
	return New(d.SubFrom(p.start), d.AddTo(p.end), p.bounds)
}

// Split cuts p into consecutive chunks of length d starting from the
// start. The last chunk is truncated at the end of p. Every chunk keeps the
// bounds of p.
//
// Split fails with errors.ErrInvalidRange when d does not move a datepoint
// forward.
func (p Period) Split(d duration.Duration) (*Sequence, error) {
	result := NewSequence()

	for cur := p.start; cur.Before(p.end); {
		next := d.AddTo(cur)
		if !next.After(cur) {
			return nil, &errors.RangeError{Notation: p.String(), Reason: "split step " + d.Signed() + " is not positive"}
		}
		if next.After(p.end) {
			next = p.end
		}
		result.Push(Period{start: cur, end: next, bounds: p.bounds})
		cur = next
	}

	return result, nil
}

// SplitBackwards cuts p into chunks of length d starting from the end. The
// chunks are returned from the latest to the earliest and the last one is
// truncated at the start of p.
func (p Period) SplitBackwards(d duration.Duration) (*Sequence, error) {
	result := NewSequence()

	for cur := p.end; cur.After(p.start); {
		prev := d.SubFrom(cur)
		if !prev.Before(cur) {
			return nil, &errors.RangeError{Notation: p.String(), Reason: "split step " + d.Signed() + " is not positive"}
		}
		if prev.Before(p.start) {
			prev = p.start
		}
		result.Push(Period{start: prev, end: cur, bounds: p.bounds})
		cur = prev
	}

	return result, nil
}
