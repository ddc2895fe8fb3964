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
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Sequence is an ordered, index-addressable collection of periods.
//
// A Sequence is a bag, not a normalized partition: duplicates are allowed,
// elements may overlap or leave gaps, and insertion order is kept until a
// caller explicitly asks for a derived Sequence (Sorted, Gaps,
// Intersections, Unions, Subtract, Filter). Derivations never touch the
// receiver.
//
// Unlike Period, a Sequence is mutable through Push, Unshift, Insert, Set,
// Remove and Clear. A Sequence shared between goroutines MUST NOT be
// mutated without external synchronization. A nil *Sequence behaves as an
// empty one for every read operation.
type Sequence struct {
	periods []Period
}

// Compile-time check that Sequence implements model.Model interface.
var _ model.Model = (*Sequence)(nil)

// NewSequence returns a Sequence holding a copy of periods, in order.
func NewSequence(periods ...Period) *Sequence {
	return &Sequence{periods: slices.Clone(periods)}
}

// Len returns the number of periods.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.periods)
}

// resolve maps a possibly negative index onto [0, Len()). Negative indexes
// count from the end: -1 is the last period.
func (s *Sequence) resolve(i int) (int, error) {
	n := s.Len()
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, &errors.IndexError{Index: i, Len: n}
	}
	return idx, nil
}

// At returns the period at index i. Negative indexes count from the end.
// An index outside the sequence yields an error matching errors.ErrIndex.
func (s *Sequence) At(i int) (Period, error) {
	idx, err := s.resolve(i)
	if err != nil {
		return Period{}, err
	}
	return s.periods[idx], nil
}

// Periods returns a copy of the periods, in sequence order.
func (s *Sequence) Periods() []Period {
	if s.Len() == 0 {
		return []Period{}
	}
	return slices.Clone(s.periods)
}

// All returns an iterator over index and period pairs.
//
//	for i, p := range seq.All() {
//	    fmt.Println(i, p)
//	}
func (s *Sequence) All() iter.Seq2[int, Period] {
	return func(yield func(int, Period) bool) {
		if s == nil {
			return
		}
		for i, p := range s.periods {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Push appends periods at the end.
func (s *Sequence) Push(periods ...Period) {
	s.periods = append(s.periods, periods...)
}

// Unshift prepends periods at the beginning, keeping their order.
func (s *Sequence) Unshift(periods ...Period) {
	s.periods = slices.Insert(s.periods, 0, periods...)
}

// Insert inserts periods before index i. i may equal Len() to append, and
// negative values count from the end.
func (s *Sequence) Insert(i int, periods ...Period) error {
	if i == s.Len() {
		s.Push(periods...)
		return nil
	}
	idx, err := s.resolve(i)
	if err != nil {
		return err
	}
	s.periods = slices.Insert(s.periods, idx, periods...)
	return nil
}

// Set replaces the period at index i.
func (s *Sequence) Set(i int, p Period) error {
	idx, err := s.resolve(i)
	if err != nil {
		return err
	}
	s.periods[idx] = p
	return nil
}

// Remove deletes and returns the period at index i.
func (s *Sequence) Remove(i int) (Period, error) {
	idx, err := s.resolve(i)
	if err != nil {
		return Period{}, err
	}
	removed := s.periods[idx]
	s.periods = slices.Delete(s.periods, idx, idx+1)
	return removed, nil
}

// Clear removes every period.
func (s *Sequence) Clear() {
	s.periods = nil
}

// Sorted returns a new Sequence sorted with cmp. The sort is stable; a nil
// cmp sorts with Period.Compare.
func (s *Sequence) Sorted(cmp func(a, b Period) int) *Sequence {
	if cmp == nil {
		cmp = Period.Compare
	}
	sorted := s.Periods()
	slices.SortStableFunc(sorted, cmp)
	return &Sequence{periods: sorted}
}

// byLowerEdge orders periods by start datepoint, an included start before an
// excluded one on the same datepoint, then by Period.Compare. Sweeps that
// grow a running envelope rely on it: no later period reaches below the
// envelope's lower edge.
func byLowerEdge(a, b Period) int {
	if c := a.start.Compare(b.start); c != 0 {
		return c
	}
	switch ai, bi := a.includesStart(), b.includesStart(); {
	case ai && !bi:
		return -1
	case !ai && bi:
		return 1
	}
	return a.Compare(b)
}

// Filter returns a new Sequence with the periods for which keep returns
// true, in sequence order.
func (s *Sequence) Filter(keep func(Period) bool) *Sequence {
	result := NewSequence()
	for _, p := range s.All() {
		if keep(p) {
			result.Push(p)
		}
	}
	return result
}

// Gaps returns the periods not covered by any element but lying between
// the earliest start and the latest end, sorted by start.
//
// Gaps walks the periods in lower-edge order with a running envelope. A period nested in
// the envelope contributes nothing, one that overlaps or abuts it extends
// the envelope, and any other period is separated from the envelope by a
// gap. An empty or single-period Sequence has no gaps.
func (s *Sequence) Gaps() *Sequence {
	result := NewSequence()
	if s.Len() < 2 {
		return result
	}

	sorted := s.Sorted(byLowerEdge).periods
	acc := sorted[0]
	for _, p := range sorted[1:] {
		switch {
		case acc.ContainsPeriod(p):
			// nested
		case acc.Overlaps(p) || acc.Abuts(p):
			acc = acc.Merge(p)
		default:
			if gap, err := acc.Gap(p); err == nil {
				result.Push(gap)
			}
			acc = p
		}
	}

	return result
}

// Intersections returns the intersection of every overlapping pair of
// periods, in sorted pair order. Pairs that do not overlap are skipped and
// identical intersections are all kept.
//
// Once sorted by start, the scan for partners of a period stops at the first
// candidate starting after its end.
func (s *Sequence) Intersections() *Sequence {
	result := NewSequence()
	sorted := s.Sorted(nil).periods

	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].start.After(sorted[i].end) {
				break
			}
			if shared, err := sorted[i].Intersect(sorted[j]); err == nil {
				result.Push(shared)
			}
		}
	}

	return result
}

// Unions returns the minimal set of disjoint, non-abutting periods covering
// the same datepoints as the Sequence, sorted by start.
func (s *Sequence) Unions() *Sequence {
	result := NewSequence()
	if s.Len() == 0 {
		return result
	}

	sorted := s.Sorted(byLowerEdge).periods
	acc := sorted[0]
	for _, p := range sorted[1:] {
		if acc.Overlaps(p) || acc.Abuts(p) || acc.ContainsPeriod(p) {
			acc = acc.Merge(p)
			continue
		}
		result.Push(acc)
		acc = p
	}
	result.Push(acc)

	return result
}

// Subtract removes from every period of s the datepoints covered by other.
// Each source period yields zero or more pieces, emitted in source order;
// source periods are not merged with one another.
func (s *Sequence) Subtract(other *Sequence) *Sequence {
	result := NewSequence()
	for _, p := range s.All() {
		pieces := []Period{p}
		for _, o := range other.All() {
			var next []Period
			for _, piece := range pieces {
				next = append(next, piece.Subtract(o).periods...)
			}
			pieces = next
		}
		result.Push(pieces...)
	}
	return result
}

// Boundaries returns the smallest Period containing every element, or false
// when the Sequence is empty.
func (s *Sequence) Boundaries() (Period, bool) {
	if s.Len() == 0 {
		return Period{}, false
	}
	return s.periods[0].Merge(s.periods[1:]...), true
}

// TotalTimeDuration returns the sum of the elapsed time of every period.
// Overlapping periods are counted once per element.
func (s *Sequence) TotalTimeDuration() time.Duration {
	var total time.Duration
	for _, p := range s.All() {
		total += p.TimeDuration()
	}
	return total
}

// IndexOf returns the index of the first period equal to p, or -1.
func (s *Sequence) IndexOf(p Period) int {
	for i, q := range s.All() {
		if q.Equal(p) {
			return i
		}
	}
	return -1
}

// Contains reports whether every given period is an element of s.
func (s *Sequence) Contains(periods ...Period) bool {
	for _, p := range periods {
		if s.IndexOf(p) < 0 {
			return false
		}
	}
	return true
}

// Equal reports whether other is a Sequence with equal periods in the same
// order.
func (s *Sequence) Equal(other any) bool {
	o, ok := other.(*Sequence)
	if !ok {
		return false
	}
	return slices.EqualFunc(s.Periods(), o.Periods(), func(a, b Period) bool { return a.Equal(b) })
}

// String returns the periods in notation form between braces, for example
// "{[2021-01-01T00:00:00Z, 2021-01-02T00:00:00Z), ...}".
func (s *Sequence) String() string {
	parts := make([]string, 0, s.Len())
	for _, p := range s.All() {
		parts = append(parts, p.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Redacted returns the same representation as String.
func (s *Sequence) Redacted() string {
	return s.String()
}

// TypeName returns "Sequence".
func (s *Sequence) TypeName() string {
	return "Sequence"
}

// IsZero reports whether the Sequence is empty.
func (s *Sequence) IsZero() bool {
	return s.Len() == 0
}

// Validate validates every period and reports all failures at once. An
// empty Sequence is valid.
func (s *Sequence) Validate() error {
	if err := model.ValidateAll(s.Periods()); err != nil {
		return fmt.Errorf("invalid Sequence: %w", err)
	}
	return nil
}

// MarshalJSON encodes the Sequence as a JSON array of periods.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s.Periods())
}

// UnmarshalJSON decodes a JSON array of periods. Each element is validated
// by Period.UnmarshalJSON.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var periods []Period
	if err := json.Unmarshal(data, &periods); err != nil {
		return err
	}
	s.periods = periods
	return nil
}

// MarshalYAML encodes the Sequence as a YAML sequence of periods.
func (s *Sequence) MarshalYAML() (any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.Periods(), nil
}

// UnmarshalYAML decodes a YAML sequence whose items are period mappings or
// notation scalars.
func (s *Sequence) UnmarshalYAML(node *yaml.Node) error {
	var periods []Period
	if err := node.Decode(&periods); err != nil {
		return err
	}
	s.periods = periods
	return nil
}
