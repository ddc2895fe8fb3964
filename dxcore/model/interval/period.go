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

// Package interval implements an immutable date/time interval algebra.
//
// A Period is a bounded range of two datepoints (time.Time values) together
// with a Bounds value telling which endpoints belong to the range. Period
// answers containment, ordering, adjacency, overlap and gap questions with
// boundary-aware edge comparisons, and derives new periods through
// Intersect, Gap, Merge and Subtract.
//
// A Sequence is an ordered, index-addressable bag of periods. Its set-style
// derivations (Gaps, Intersections, Unions, Subtract) always produce a new
// Sequence and never normalize the source implicitly.
//
// The package also carries the interval notation codec ("[start, end)") and
// calendar factories such as FromMonth or FromISOWeek.
package interval

import (
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model"
	"dirpx.dev/dxspan/dxcore/model/duration"
	"gopkg.in/yaml.v3"
)

// Period is an immutable bounded interval between two datepoints.
//
// Invariants, enforced by New and by every decoder:
//   - start is not after end;
//   - when start equals end, at least one endpoint is included, so the
//     fully open instant "(a, a)" is rejected;
//   - bounds is one of the four defined Bounds constants.
//
// Every operation that "changes" a Period returns a new value. The zero
// Period is the degenerate "[0001-01-01, 0001-01-01)" range; it is
// structurally well-formed but Validate rejects it so that unset fields are
// noticed at decode time.
type Period struct {
	start  time.Time
	end    time.Time
	bounds Bounds
}

// Compile-time checks that Period implements the model contracts.
var (
	_ model.Model           = (*Period)(nil)
	_ model.Ordered[Period] = Period{}
	_ duration.Span         = Period{}
)

// New returns the Period between start and end with the given bounds.
//
// New fails with an error matching errors.ErrInvalidRange when start is
// after end, when start equals end and bounds is ExcludeAll, or when bounds
// is not a defined constant.
//
//	p, err := interval.New(
//	    time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
//	    time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
//	    interval.IncludeStartExcludeEnd,
//	)
func New(start, end time.Time, bounds Bounds) (Period, error) {
	if !bounds.Valid() {
		return Period{}, &errors.RangeError{
			Notation: notation(start, end, bounds),
			Reason:   fmt.Sprintf("unknown bounds %d", int(bounds)),
		}
	}
	if start.After(end) {
		return Period{}, &errors.RangeError{
			Notation: notation(start, end, bounds),
			Reason:   "start is after end",
		}
	}
	if start.Equal(end) && bounds == ExcludeAll {
		return Period{}, &errors.RangeError{
			Notation: notation(start, end, bounds),
			Reason:   "an open range between equal datepoints is empty",
		}
	}
	return Period{start: start, end: end, bounds: bounds}, nil
}

// MustNew is like New but panics on error. Intended for tests and static
// tables.
func MustNew(start, end time.Time, bounds Bounds) Period {
	p, err := New(start, end, bounds)
	if err != nil {
		panic(err)
	}
	return p
}

// Start returns the lower datepoint.
func (p Period) Start() time.Time { return p.start }

// End returns the upper datepoint.
func (p Period) End() time.Time { return p.end }

// Bounds returns the boundary kind.
func (p Period) Bounds() Bounds { return p.bounds }

// Length returns the calendar span between start and end. The result is
// never inverted.
func (p Period) Length() duration.Duration {
	return duration.Between(p.start, p.end)
}

// TimeDuration returns the elapsed wall-clock time between start and end.
func (p Period) TimeDuration() time.Duration {
	return p.end.Sub(p.start)
}

// Contains reports whether t belongs to the period: strictly between the
// endpoints, or equal to an endpoint that the bounds include.
func (p Period) Contains(t time.Time) bool {
	if t.After(p.start) && t.Before(p.end) {
		return true
	}
	if t.Equal(p.start) && p.bounds.IncludesStart() {
		return true
	}
	return t.Equal(p.end) && p.bounds.IncludesEnd()
}

// includesStart reports whether the start datepoint belongs to p. A
// degenerate period such as "[a, a)" holds its single datepoint, so both of
// its edges count as included when compared with another period.
func (p Period) includesStart() bool {
	return p.bounds.IncludesStart() || p.start.Equal(p.end)
}

// includesEnd is the upper-edge counterpart of includesStart.
func (p Period) includesEnd() bool {
	return p.bounds.IncludesEnd() || p.start.Equal(p.end)
}

// ContainsPeriod reports whether every datepoint of o belongs to p.
//
// Edges are compared with each side's own inclusivity: "[a, b)" contains
// "(a, b)" and "[a, b)" but not "[a, b]".
func (p Period) ContainsPeriod(o Period) bool {
	lower := o.start.After(p.start) ||
		(o.start.Equal(p.start) && (p.includesStart() || !o.includesStart()))
	upper := o.end.Before(p.end) ||
		(o.end.Equal(p.end) && (p.includesEnd() || !o.includesEnd()))
	return lower && upper
}

// Compare orders periods by start, then end, then Bounds value. It returns
// -1, 0 or +1 and is suitable for slices.SortStableFunc.
func (p Period) Compare(o Period) int {
	if c := p.start.Compare(o.start); c != 0 {
		return c
	}
	if c := p.end.Compare(o.end); c != 0 {
		return c
	}
	switch {
	case p.bounds < o.bounds:
		return -1
	case p.bounds > o.bounds:
		return 1
	default:
		return 0
	}
}

// Equal reports whether other is a Period (or *Period) with the same
// instants and the same bounds. Locations are not compared.
func (p Period) Equal(other any) bool {
	switch v := other.(type) {
	case Period:
		return p.Compare(v) == 0
	case *Period:
		if v == nil {
			return false
		}
		return p.Compare(*v) == 0
	default:
		return false
	}
}

// String returns the interval notation of p with RFC 3339 endpoints, for
// example "[2021-01-01T00:00:00Z, 2021-01-10T00:00:00Z)".
func (p Period) String() string {
	return notation(p.start, p.end, p.bounds)
}

// Redacted returns the same representation as String.
func (p Period) Redacted() string {
	return p.String()
}

// TypeName returns "Period".
func (p Period) TypeName() string {
	return "Period"
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool {
	return p.start.IsZero() && p.end.IsZero() && p.bounds == IncludeStartExcludeEnd
}

// Validate checks the Period invariants. The zero Period is rejected.
func (p Period) Validate() error {
	if p.IsZero() {
		return &errors.ValidationError{Type: "Period", Reason: "zero value"}
	}
	_, err := New(p.start, p.end, p.bounds)
	return err
}

// periodWire is the interchange form of a Period: the two endpoints in
// RFC 3339 with nanoseconds plus the bracket pair.
type periodWire struct {
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
	Bounds    Bounds `json:"bounds" yaml:"bounds"`
}

func (p Period) wire() periodWire {
	return periodWire{
		StartDate: p.start.Format(time.RFC3339Nano),
		EndDate:   p.end.Format(time.RFC3339Nano),
		Bounds:    p.bounds,
	}
}

func (w periodWire) period() (Period, error) {
	start, err := time.Parse(time.RFC3339Nano, w.StartDate)
	if err != nil {
		return Period{}, &errors.UnmarshalError{Type: "Period", Data: []byte(w.StartDate), Reason: "startDate: " + err.Error()}
	}
	end, err := time.Parse(time.RFC3339Nano, w.EndDate)
	if err != nil {
		return Period{}, &errors.UnmarshalError{Type: "Period", Data: []byte(w.EndDate), Reason: "endDate: " + err.Error()}
	}
	return New(start, end, w.Bounds)
}

// MarshalJSON implements json.Marshaler for Period.
//
// The output is {"startDate": "...", "endDate": "...", "bounds": "[)"}.
// Invalid periods are rejected.
func (p Period) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid Period: %w", err)
	}
	return json.Marshal(p.wire())
}

// UnmarshalJSON implements json.Unmarshaler for Period. The decoded
// endpoints are validated through New.
func (p *Period) UnmarshalJSON(data []byte) error {
	var w periodWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &errors.UnmarshalError{Type: "Period", Data: data, Reason: err.Error()}
	}
	decoded, err := w.period()
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler for Period using the same shape as
// MarshalJSON.
func (p Period) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid Period: %w", err)
	}
	return p.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Period.
//
// Besides the mapping produced by MarshalYAML, a plain scalar holding the
// interval notation ("[2021-01-01, 2021-02-01)") is accepted so that
// hand-written files stay short.
func (p *Period) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		decoded, err := ParseNotation(node.Value)
		if err != nil {
			return err
		}
		*p = decoded
		return nil
	}

	var w periodWire
	if err := node.Decode(&w); err != nil {
		return &errors.UnmarshalError{Type: "Period", Data: []byte(node.Value), Reason: err.Error()}
	}
	decoded, err := w.period()
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// notation renders the bracketed RFC 3339 form used by String and by
// RangeError diagnostics.
func notation(start, end time.Time, bounds Bounds) string {
	open, closing := byte('['), byte(')')
	if bounds.Valid() {
		open, closing = bounds.StartBracket(), bounds.EndBracket()
	}
	return string(open) + start.Format(time.RFC3339Nano) + ", " + end.Format(time.RFC3339Nano) + string(closing)
}
